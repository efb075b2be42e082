package logicgate

import (
	"strconv"
	"unicode/utf8"
)

// tokenKind identifies the lexical class of a token.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenLeftParen
	tokenRightParen
	tokenTerminal
	tokenGate
)

// token is the smallest lexical unit of an expression.
// Terminal tokens carry their parsed index; gate tokens carry their Gate.
type token struct {
	kind  tokenKind
	gate  Gate
	index int
	pos   int    // byte offset of the first character
	text  string // lexeme as written, empty for EOF
}

// String returns the lexeme, or a class name for EOF.
func (t token) String() string {
	if t.kind == tokenEOF {
		return "end of input"
	}
	return t.text
}

// scanner produces tokens in a single forward pass over the source.
// It is not restartable; after the first EOF every call returns EOF.
type scanner struct {
	src string
	off int
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

// next returns the next token, skipping ASCII whitespace.
// The zero-value EOF token marks end of input.
func (s *scanner) next() (token, error) {
	s.skipWhitespace()
	if s.off >= len(s.src) {
		return token{kind: tokenEOF, pos: s.off}, nil
	}

	start := s.off
	switch c := s.src[s.off]; {
	case c == '(':
		s.off++
		return token{kind: tokenLeftParen, pos: start, text: "("}, nil
	case c == ')':
		s.off++
		return token{kind: tokenRightParen, pos: start, text: ")"}, nil
	case isDigit(c):
		s.advanceWhile(isDigit)
		lexeme := s.src[start:s.off]
		index, err := strconv.Atoi(lexeme)
		if err != nil || index < 0 {
			return token{}, &SyntaxError{Pos: start, Token: lexeme, Err: ErrInvalidNumber}
		}
		return token{kind: tokenTerminal, index: index, pos: start, text: lexeme}, nil
	case isLetter(c):
		s.advanceWhile(isLetter)
		lexeme := s.src[start:s.off]
		gate, ok := GateFromKeyword(lexeme)
		if !ok {
			// A maximal letter run that is not exactly a keyword never
			// matches a gate, so "ANDROID" fails here rather than
			// lexing as AND followed by garbage.
			return token{}, &SyntaxError{Pos: start, Token: lexeme, Err: ErrUnexpectedToken}
		}
		return token{kind: tokenGate, gate: gate, pos: start, text: lexeme}, nil
	default:
		// Decode the whole rune so multibyte characters show up intact
		// in the diagnostic instead of as a mangled lead byte.
		r, size := utf8.DecodeRuneInString(s.src[s.off:])
		s.off += size
		return token{}, &SyntaxError{Pos: start, Token: string(r), Err: ErrUnexpectedChar}
	}
}

func (s *scanner) skipWhitespace() {
	for s.off < len(s.src) {
		switch s.src[s.off] {
		case ' ', '\t', '\n', '\r':
			s.off++
		default:
			return
		}
	}
}

func (s *scanner) advanceWhile(pred func(byte) bool) {
	for s.off < len(s.src) && pred(s.src[s.off]) {
		s.off++
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

package logicgate

import (
	"errors"
	"fmt"
)

// Sentinel errors for tokenizing.
var (
	// ErrUnexpectedChar indicates a character outside the expression alphabet.
	ErrUnexpectedChar = errors.New("unexpected character")

	// ErrInvalidNumber indicates a terminal index that overflows int.
	ErrInvalidNumber = errors.New("invalid terminal index")
)

// Sentinel errors for parsing.
var (
	// ErrEmptyExpression indicates the input contained no tokens.
	ErrEmptyExpression = errors.New("empty expression")

	// ErrUnbalancedParens indicates missing or extra parentheses.
	ErrUnbalancedParens = errors.New("unbalanced parentheses")

	// ErrUnexpectedToken indicates a token that cannot start or continue
	// an expression at its position.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrArityMismatch indicates a gate applied to the wrong number of
	// operands, e.g. a binary gate with one operand before ')'.
	ErrArityMismatch = errors.New("gate arity mismatch")

	// ErrTrailingInput indicates tokens remained after a complete expression.
	ErrTrailingInput = errors.New("trailing input after expression")

	// ErrTooDeep indicates the expression exceeded the nesting depth limit.
	ErrTooDeep = errors.New("expression nesting too deep")
)

// Sentinel errors for evaluation.
var (
	// ErrMissingTerminal indicates the tree references an index absent
	// from the truth mapping.
	ErrMissingTerminal = errors.New("missing terminal truth value")
)

// SyntaxError reports a tokenize or parse failure with source position.
// Position is a zero-based byte offset into the expression string.
type SyntaxError struct {
	// Pos is the byte offset of the offending input.
	Pos int
	// Token is the offending lexeme, if any.
	Token string
	// Err is the sentinel describing what went wrong.
	Err error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("parse error at offset %d: %v: %q", e.Pos, e.Err, e.Token)
	}
	return fmt.Sprintf("parse error at offset %d: %v", e.Pos, e.Err)
}

// Unwrap returns the sentinel for errors.Is support.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// MissingTerminalError reports which terminal index had no truth value.
type MissingTerminalError struct {
	// Index is the terminal index absent from the mapping.
	Index int
}

// Error implements the error interface.
func (e *MissingTerminalError) Error() string {
	return fmt.Sprintf("terminal %d has no truth value", e.Index)
}

// Unwrap returns ErrMissingTerminal for errors.Is support.
func (e *MissingTerminalError) Unwrap() error {
	return ErrMissingTerminal
}

package logicgate

// DefaultMaxDepth is the parenthesis nesting limit applied by Parse
// unless overridden with WithMaxDepth. Deeply nested input is rejected
// with ErrTooDeep instead of risking stack exhaustion.
const DefaultMaxDepth = 512

// ParseOption configures Parse behavior.
type ParseOption func(*parser)

// WithMaxDepth sets the maximum parenthesis nesting depth.
// Values below 1 are ignored.
func WithMaxDepth(n int) ParseOption {
	return func(p *parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// Parse tokenizes and parses an expression string into an expression tree.
//
// The grammar requires parentheses around every gate application:
//
//	"2"                  a bare terminal
//	"(NOT 0)"            unary prefix NOT
//	"((0 AND 1) OR 2)"   binary gates, one pair of parens each
//
// Redundant parentheses around a complete expression are accepted.
// On failure the error is a *SyntaxError wrapping one of the parse
// sentinels; no partial tree is ever returned.
func Parse(input string, opts ...ParseOption) (Expr, error) {
	p := &parser{sc: newScanner(input), maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokenEOF {
		return nil, &SyntaxError{Pos: p.tok.pos, Err: ErrEmptyExpression}
	}

	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenEOF {
		return nil, &SyntaxError{Pos: p.tok.pos, Token: p.tok.text, Err: ErrTrailingInput}
	}
	return expr, nil
}

// MustParse is like Parse but panics on error.
// Intended for expressions known at compile time, e.g. in tests.
func MustParse(input string, opts ...ParseOption) Expr {
	expr, err := Parse(input, opts...)
	if err != nil {
		panic("logicgate: " + err.Error())
	}
	return expr
}

// parser is a recursive-descent parser with one token of lookahead.
type parser struct {
	sc       *scanner
	tok      token
	maxDepth int
}

// advance moves the lookahead to the next token.
func (p *parser) advance() error {
	tok, err := p.sc.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// parseExpr parses: expr := terminal | '(' inner ')'.
func (p *parser) parseExpr(depth int) (Expr, error) {
	switch p.tok.kind {
	case tokenTerminal:
		t := Terminal{Index: p.tok.index}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return t, nil

	case tokenLeftParen:
		if depth+1 > p.maxDepth {
			return nil, &SyntaxError{Pos: p.tok.pos, Token: p.tok.text, Err: ErrTooDeep}
		}
		open := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseInner(depth + 1)
		if err != nil {
			return nil, err
		}
		switch p.tok.kind {
		case tokenRightParen:
			if err := p.advance(); err != nil {
				return nil, err
			}
			return inner, nil
		case tokenEOF:
			return nil, &SyntaxError{Pos: open.pos, Token: open.text, Err: ErrUnbalancedParens}
		default:
			return nil, &SyntaxError{Pos: p.tok.pos, Token: p.tok.text, Err: ErrUnexpectedToken}
		}

	case tokenRightParen:
		return nil, &SyntaxError{Pos: p.tok.pos, Token: p.tok.text, Err: ErrUnbalancedParens}

	case tokenEOF:
		// Mid-expression end of input, e.g. "(NOT" or "(0 AND".
		return nil, &SyntaxError{Pos: p.tok.pos, Err: ErrUnbalancedParens}

	default:
		return nil, &SyntaxError{Pos: p.tok.pos, Token: p.tok.text, Err: ErrUnexpectedToken}
	}
}

// parseInner parses the body of a parenthesized expression:
// inner := NOT expr | expr binaryGate expr | expr.
// The trailing bare-expr form permits redundant parentheses.
func (p *parser) parseInner(depth int) (Expr, error) {
	if p.tok.kind == tokenRightParen {
		// Empty group "()".
		return nil, &SyntaxError{Pos: p.tok.pos, Token: p.tok.text, Err: ErrUnexpectedToken}
	}
	if p.tok.kind == tokenGate && p.tok.gate == Not {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseExpr(depth)
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokenRightParen && p.tok.kind != tokenEOF {
			// Anything between the operand and ')' means NOT was
			// given more than one operand.
			return nil, &SyntaxError{Pos: p.tok.pos, Token: p.tok.text, Err: ErrArityMismatch}
		}
		return NotExpr{Operand: operand}, nil
	}

	left, err := p.parseExpr(depth)
	if err != nil {
		return nil, err
	}

	switch p.tok.kind {
	case tokenGate:
		if p.tok.gate == Not {
			// NOT is prefix only.
			return nil, &SyntaxError{Pos: p.tok.pos, Token: p.tok.text, Err: ErrUnexpectedToken}
		}
		op := p.tok.gate
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokenRightParen {
			return nil, &SyntaxError{Pos: p.tok.pos, Token: p.tok.text, Err: ErrArityMismatch}
		}
		right, err := p.parseExpr(depth)
		if err != nil {
			return nil, err
		}
		return GateExpr{Op: op, Left: left, Right: right}, nil

	case tokenRightParen, tokenEOF:
		// Redundant parentheses around a complete expression;
		// the caller validates the closing paren.
		return left, nil

	default:
		// Two expressions with no gate between them, e.g. "(0 1)".
		return nil, &SyntaxError{Pos: p.tok.pos, Token: p.tok.text, Err: ErrUnexpectedToken}
	}
}

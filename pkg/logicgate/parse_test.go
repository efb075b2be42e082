package logicgate

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_Shape(t *testing.T) {
	// The rendered tree must match the written parenthesization exactly;
	// no precedence reordering occurs.
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"bare terminal", "2", "2"},
		{"unary not", "(NOT 0)", "(NOT 0)"},
		{"binary and", "(0 AND 1)", "(0 AND 1)"},
		{"nested left", "((0 AND 1) OR 2)", "((0 AND 1) OR 2)"},
		{"nested right", "(0 AND (1 OR 2))", "(0 AND (1 OR 2))"},
		{"nested both sides", "((0 XOR 1) NAND (2 NOR 3))", "((0 XOR 1) NAND (2 NOR 3))"},
		{"not of gate", "(NOT (0 AND 1))", "(NOT (0 AND 1))"},
		{"double not", "(NOT (NOT 0))", "(NOT (NOT 0))"},
		{"lowercase keywords", "(0 and (not 1))", "(0 AND (NOT 1))"},
		{"no whitespace", "(0AND1)", "(0 AND 1)"},
		{"redundant parens dropped", "((0))", "0"},
		{"redundant parens around gate", "((0 OR 1))", "(0 OR 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q): unexpected error: %v", tt.src, err)
			}
			if got := expr.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"empty input", "", ErrEmptyExpression},
		{"whitespace only", "  \t ", ErrEmptyExpression},
		{"binary gate missing right operand", "(0 AND)", ErrArityMismatch},
		{"binary gate missing both operands", "(AND)", ErrUnexpectedToken},
		{"missing outer parens", "0 AND 1", ErrTrailingInput},
		{"unbalanced open", "((0)", ErrUnbalancedParens},
		{"unbalanced close", "0)", ErrTrailingInput},
		{"bare close paren", ")", ErrUnbalancedParens},
		{"empty parens", "()", ErrUnexpectedToken},
		{"not with two operands", "(NOT 0 1)", ErrArityMismatch},
		{"not with trailing gate", "(NOT 0 AND 1)", ErrArityMismatch},
		{"infix not", "(0 NOT 1)", ErrUnexpectedToken},
		{"two terminals no gate", "(0 1)", ErrUnexpectedToken},
		{"chained gates without parens", "(0 AND 1 OR 2)", ErrUnexpectedToken},
		{"dangling open", "(0 AND", ErrUnbalancedParens},
		{"dangling not", "(NOT", ErrUnbalancedParens},
		{"leading gate", "AND 1", ErrUnexpectedToken},
		{"garbage character", "(0 # 1)", ErrUnexpectedChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.src)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse(%q): got error %v, want %v", tt.src, err, tt.wantErr)
			}
			if expr != nil {
				t.Errorf("Parse(%q): got non-nil tree alongside error", tt.src)
			}
		})
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := Parse("(0 AND 1) OR 2")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if !errors.Is(err, ErrTrailingInput) {
		t.Fatalf("expected ErrTrailingInput, got %v", err)
	}
	if syntaxErr.Pos != 10 || syntaxErr.Token != "OR" {
		t.Errorf("got pos=%d token=%q, want pos=10 token=\"OR\"", syntaxErr.Pos, syntaxErr.Token)
	}
}

func TestParse_DepthLimit(t *testing.T) {
	// Just under the limit parses, one past it fails closed.
	deep := func(n int) string {
		return strings.Repeat("(NOT ", n) + "0" + strings.Repeat(")", n)
	}

	if _, err := Parse(deep(8), WithMaxDepth(8)); err != nil {
		t.Fatalf("depth at limit: unexpected error: %v", err)
	}
	if _, err := Parse(deep(9), WithMaxDepth(8)); !errors.Is(err, ErrTooDeep) {
		t.Fatalf("depth past limit: got %v, want ErrTooDeep", err)
	}

	// The default limit holds without options.
	if _, err := Parse(deep(DefaultMaxDepth + 1)); !errors.Is(err, ErrTooDeep) {
		t.Fatalf("default depth limit: got %v, want ErrTooDeep", err)
	}
}

func TestMustParse(t *testing.T) {
	expr := MustParse("(0 OR 1)")
	if expr.String() != "(0 OR 1)" {
		t.Errorf("MustParse returned %q", expr.String())
	}

	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on malformed input")
		}
	}()
	MustParse("(0 AND)")
}

func TestTerminals(t *testing.T) {
	tests := []struct {
		src  string
		want []int
	}{
		{"0", []int{0}},
		{"(7 AND (NOT 3))", []int{3, 7}},
		{"((0 AND 1) OR (0 AND 2))", []int{0, 1, 2}},
		{"((5 XOR 5) NOR 5)", []int{5}},
	}

	for _, tt := range tests {
		got := Terminals(MustParse(tt.src))
		if len(got) != len(tt.want) {
			t.Fatalf("Terminals(%q) = %v, want %v", tt.src, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Terminals(%q) = %v, want %v", tt.src, got, tt.want)
				break
			}
		}
	}
}

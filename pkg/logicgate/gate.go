package logicgate

import "strings"

// Gate identifies a boolean operator.
// And, Or, Xor, Nand and Nor are binary; Not is unary and written prefix.
type Gate int

const (
	And Gate = iota
	Or
	Xor
	Nand
	Nor
	Not
)

// Keyword strings as they appear in expressions. Matching is
// case-insensitive; String always returns the canonical upper-case form.
const (
	kwAnd  = "AND"
	kwOr   = "OR"
	kwXor  = "XOR"
	kwNand = "NAND"
	kwNor  = "NOR"
	kwNot  = "NOT"
)

// gateKeywords is the closed keyword table. Lookup keys are upper-case.
var gateKeywords = map[string]Gate{
	kwAnd:  And,
	kwOr:   Or,
	kwXor:  Xor,
	kwNand: Nand,
	kwNor:  Nor,
	kwNot:  Not,
}

// GateFromKeyword returns the gate for a keyword, matched case-insensitively
// as a whole word. The second return is false for unknown keywords, including
// longer identifiers that merely start with one ("ANDROID" is not AND).
func GateFromKeyword(word string) (Gate, bool) {
	g, ok := gateKeywords[strings.ToUpper(word)]
	return g, ok
}

// String returns the canonical keyword for the gate.
func (g Gate) String() string {
	switch g {
	case And:
		return kwAnd
	case Or:
		return kwOr
	case Xor:
		return kwXor
	case Nand:
		return kwNand
	case Nor:
		return kwNor
	case Not:
		return kwNot
	default:
		return "UNKNOWN"
	}
}

// Arity returns the number of operands the gate takes: 1 for Not, 2 otherwise.
func (g Gate) Arity() int {
	if g == Not {
		return 1
	}
	return 2
}

// apply reduces two operand values. Only valid for binary gates.
func (g Gate) apply(left, right bool) bool {
	switch g {
	case And:
		return left && right
	case Or:
		return left || right
	case Xor:
		return left != right
	case Nand:
		return !(left && right)
	case Nor:
		return !(left || right)
	default:
		return false
	}
}

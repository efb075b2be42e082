package logicgate

import (
	"sort"
	"strconv"
)

// Expr is a node in a parsed expression tree.
// Trees are immutable after Parse and own their children exclusively,
// so an Expr can be cached and evaluated against many truth mappings.
type Expr interface {
	isExpr()
	// String renders the node back to canonical expression syntax.
	String() string
}

// Terminal is a leaf referencing one externally resolved boolean by index.
type Terminal struct {
	Index int
}

func (Terminal) isExpr() {}
func (t Terminal) String() string {
	return strconv.Itoa(t.Index)
}

// NotExpr is the unary NOT gate applied to one operand.
type NotExpr struct {
	Operand Expr
}

func (NotExpr) isExpr() {}
func (e NotExpr) String() string {
	return "(" + kwNot + " " + e.Operand.String() + ")"
}

// GateExpr is a binary gate applied to two operands.
// Op is never Not; unary negation is NotExpr.
type GateExpr struct {
	Op    Gate
	Left  Expr
	Right Expr
}

func (GateExpr) isExpr() {}
func (e GateExpr) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// Terminals returns the sorted, deduplicated terminal indices referenced
// by the tree. Resolvers use this to verify a truth mapping is complete
// before evaluation begins.
func Terminals(expr Expr) []int {
	seen := make(map[int]struct{})
	collectTerminals(expr, seen)

	indices := make([]int, 0, len(seen))
	for i := range seen {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

func collectTerminals(expr Expr, seen map[int]struct{}) {
	switch e := expr.(type) {
	case Terminal:
		seen[e.Index] = struct{}{}
	case NotExpr:
		collectTerminals(e.Operand, seen)
	case GateExpr:
		collectTerminals(e.Left, seen)
		collectTerminals(e.Right, seen)
	}
}

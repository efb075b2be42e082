package logicgate

// Truths maps terminal indices to resolved boolean values.
// A mapping may be sparse and may contain indices the tree never
// references; those entries are ignored. The evaluator treats the
// mapping as an immutable snapshot and never modifies it.
type Truths map[int]bool

// Evaluate walks the tree and reduces it to a single boolean.
//
// Evaluation is pure: it mutates neither the tree nor the mapping, and
// evaluating the same tree against the same mapping always yields the
// same result. The only failure mode is a terminal index absent from
// the mapping, reported as a *MissingTerminalError.
func Evaluate(expr Expr, truths Truths) (bool, error) {
	switch e := expr.(type) {
	case Terminal:
		value, ok := truths[e.Index]
		if !ok {
			return false, &MissingTerminalError{Index: e.Index}
		}
		return value, nil
	case NotExpr:
		value, err := Evaluate(e.Operand, truths)
		if err != nil {
			return false, err
		}
		return !value, nil
	case GateExpr:
		left, err := Evaluate(e.Left, truths)
		if err != nil {
			return false, err
		}
		right, err := Evaluate(e.Right, truths)
		if err != nil {
			return false, err
		}
		return e.Op.apply(left, right), nil
	default:
		// Unreachable: the Expr interface is sealed by its unexported
		// marker method.
		panic("logicgate: unknown expression node")
	}
}

// Eval parses an expression and evaluates it in one call.
// Prefer Parse + Evaluate when the same expression is evaluated against
// successive truth mappings.
func Eval(input string, truths Truths, opts ...ParseOption) (bool, error) {
	expr, err := Parse(input, opts...)
	if err != nil {
		return false, err
	}
	return Evaluate(expr, truths)
}

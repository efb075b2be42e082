package resolver

import "context"

// Requirement is a single gating check that resolves to a boolean.
//
// Implementations typically query an external system (an HTTP API, a
// chain node, a database) and should hold whatever client they need as
// a field; clients are expensive and meant to be reused across checks.
// Check must honor ctx cancellation and deadlines.
//
// A Requirement must be safe for concurrent use: the resolver may run
// many checks, including retries of the same check, in parallel.
type Requirement interface {
	Check(ctx context.Context) (bool, error)
}

// Func adapts an ordinary function to the Requirement interface.
type Func func(ctx context.Context) (bool, error)

// Check implements Requirement.
func (f Func) Check(ctx context.Context) (bool, error) {
	return f(ctx)
}

// Static returns a requirement that always resolves to value.
// Useful for free gates and for tests.
func Static(value bool) Requirement {
	return Func(func(context.Context) (bool, error) {
		return value, nil
	})
}

// Failing returns a requirement whose check always fails with err.
// Useful for tests and for representing known-broken slots.
func Failing(err error) Requirement {
	return Func(func(context.Context) (bool, error) {
		return false, err
	})
}

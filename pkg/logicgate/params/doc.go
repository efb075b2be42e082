// Package params provides typed access to requirement parameter maps.
//
// Requirement definitions in gating documents carry a free-form params
// block ("address", "min_balance", "timeout", ...). Params wraps that
// map with type-safe accessors so requirement factories never type-assert
// by hand. All accessors return a caller-supplied default when the key is
// missing or the value cannot be converted.
//
//	p := params.New(def.Params)
//	address := p.String("address", "")
//	minimum := p.Float("min_balance", 0)
//	timeout := p.Duration("timeout", 5*time.Second)
package params

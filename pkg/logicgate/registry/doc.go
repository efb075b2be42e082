// Package registry maps requirement type names to factories.
//
// Gating documents describe requirements by type name plus a parameter
// block. The document loader looks each type name up here and calls the
// registered factory to build the concrete Requirement.
//
// # Basic Usage
//
// Register factories once at startup:
//
//	reg := registry.New()
//	reg.Register("free", func(params.Params) (resolver.Requirement, error) {
//	    return resolver.Static(true), nil
//	})
//	reg.Register("min_balance", newMinBalanceRequirement)
//
// Build a requirement from a document definition:
//
//	req, err := reg.Build("min_balance", params.New(def.Params))
//
// # Default Registry
//
// A process-wide default registry is available through the package-level
// Register and Build functions, in the manner of database/sql drivers.
// Libraries should prefer an explicit Registry; applications usually
// want the default.
package registry

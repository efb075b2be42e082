/*
Package logicgate parses and evaluates boolean gating expressions.

# Overview

logicgate is a Go library for deciding whether a gate should open based on
a compact boolean-logic expression whose leaves reference externally
resolved truth values by integer index. Callers own the "requirements"
(ownership checks, membership checks, balance thresholds) that produce
those truth values; logicgate owns the expression language that combines
them into a single verdict.

The library has two layers with no shared mutable state:

  - Parser: tokenizes and parses a logic string into an immutable
    expression tree. Pure function of the string.
  - Evaluator: walks the tree against a caller-supplied mapping from
    terminal index to boolean and reduces gates with standard semantics.

# Expression Syntax

	<expr>   := <terminal> | '(' <inner> ')'
	<inner>  := 'NOT' <expr>
	          | <expr> <gate> <expr>
	<gate>   := 'AND' | 'OR' | 'XOR' | 'NAND' | 'NOR'
	<terminal> := digit+

Parentheses are mandatory around every gate application, so the tree shape
is exactly the parenthesization the author wrote. There is no precedence
table to learn. A bare terminal is a complete expression. Gate keywords are
matched case-insensitively.

# Basic Usage

Parse once, evaluate against as many truth mappings as you like:

	expr, err := logicgate.Parse("((0 AND 1) OR 2)")
	if err != nil {
	    log.Fatal(err)
	}

	ok, err := logicgate.Evaluate(expr, logicgate.Truths{0: true, 1: false, 2: true})
	// ok == true

Or compose both steps:

	ok, err := logicgate.Eval("(NOT 0)", logicgate.Truths{0: false})
	// ok == true

# Terminal Indices

Terminal indices are zero-based and conventionally correspond to the
position of a requirement in an externally maintained list (see the
document and resolver subpackages). Sparse mappings are fine: indices
present in the mapping but unreferenced by the tree are ignored, and
evaluation fails with a MissingTerminalError if the tree references an
index the mapping lacks.

# Concurrent Requirement Resolution

The resolver subpackage fans out requirement checks concurrently and
hands the evaluator a completed mapping. The gatekeeper subpackage ties
an expression and its requirements together into a single Decide call
with tracing, metrics, and an optional decision audit log.

# Adversarial Input

Pathologically deep nesting is rejected at parse time. The default cap is
512 levels; tune it with WithMaxDepth.
*/
package logicgate

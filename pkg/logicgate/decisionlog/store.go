// Package decisionlog provides optional audit storage for gating decisions.
//
// The parser and evaluator are persistence-free; hosts that need an audit
// trail of verdicts attach a Store to the gatekeeper. Append failures are
// surfaced to the caller as log noise, never as decision failures.
package decisionlog

import (
	"errors"
	"time"

	"github.com/randalmurphal/logicgate/pkg/logicgate"
)

// Record is one gating decision as stored in the audit log.
type Record struct {
	// DecisionID uniquely identifies the decision.
	DecisionID string
	// Expression is the logic string the verdict was computed from.
	Expression string
	// Allowed is the verdict.
	Allowed bool
	// Truths is the resolved truth mapping the verdict was computed from.
	Truths logicgate.Truths
	// Duration is how long resolution plus evaluation took.
	Duration time.Duration
	// DecidedAt is when the verdict was produced.
	DecidedAt time.Time
}

// Store persists decision records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append stores a record. DecisionIDs are unique; appending the same
	// ID twice overwrites the earlier record.
	Append(rec Record) error

	// Get retrieves a record by decision ID.
	// Returns ErrNotFound if the record doesn't exist.
	Get(decisionID string) (Record, error)

	// List returns all records for an expression, ordered by decision time.
	// Returns an empty slice (not an error) if the expression has none.
	List(expression string) ([]Record, error)

	// Delete removes a record. Returns nil if the record doesn't exist.
	Delete(decisionID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for decision log operations.
var (
	// ErrNotFound indicates a record doesn't exist.
	ErrNotFound = errors.New("decision record not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("decision log closed")
)

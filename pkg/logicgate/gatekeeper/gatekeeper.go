// Package gatekeeper runs full gating decisions.
//
// A Gatekeeper binds a parsed logic expression to the requirement checks
// that back its terminal indices. Decide resolves the referenced checks
// concurrently, evaluates the expression against the resolved truth
// mapping, and returns a Verdict. Observability (structured logging,
// tracing, metrics) and audit storage are attached via options.
package gatekeeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/logicgate/pkg/logicgate"
	"github.com/randalmurphal/logicgate/pkg/logicgate/decisionlog"
	"github.com/randalmurphal/logicgate/pkg/logicgate/observability"
	"github.com/randalmurphal/logicgate/pkg/logicgate/resolver"
)

// ErrUncoveredTerminal indicates the expression references a terminal index
// with no backing requirement.
var ErrUncoveredTerminal = errors.New("terminal index has no backing requirement")

// Verdict is the outcome of one gating decision.
type Verdict struct {
	// DecisionID uniquely identifies this decision.
	DecisionID string
	// Allowed is the evaluated result of the expression.
	Allowed bool
	// Truths is the truth mapping the verdict was computed from.
	Truths logicgate.Truths
	// Duration is how long resolution plus evaluation took.
	Duration time.Duration
	// DecidedAt is when the verdict was produced.
	DecidedAt time.Time
}

// Gatekeeper evaluates a fixed logic expression against live requirement
// checks. It is immutable after construction and safe for concurrent use.
type Gatekeeper struct {
	expr         logicgate.Expr
	expression   string
	requirements []resolver.Requirement
	resolverOpts []resolver.Option
	logger       *slog.Logger
	spans        observability.SpanManager
	metrics      observability.MetricsRecorder
	store        decisionlog.Store
}

// New parses logic and binds it to the given requirement checks.
// Requirement i backs terminal index i. Every terminal index the
// expression references must be covered by a requirement.
func New(logic string, requirements []resolver.Requirement, opts ...Option) (*Gatekeeper, error) {
	cfg := applyOptions(opts)

	expr, err := logicgate.Parse(logic, cfg.parseOpts...)
	if err != nil {
		return nil, err
	}
	return fromExpr(expr, requirements, cfg)
}

// FromExpr binds an already parsed expression to requirement checks.
// Useful when the same expression tree drives several gatekeepers.
func FromExpr(expr logicgate.Expr, requirements []resolver.Requirement, opts ...Option) (*Gatekeeper, error) {
	return fromExpr(expr, requirements, applyOptions(opts))
}

func fromExpr(expr logicgate.Expr, requirements []resolver.Requirement, cfg config) (*Gatekeeper, error) {
	for _, idx := range logicgate.Terminals(expr) {
		if idx >= len(requirements) {
			return nil, fmt.Errorf("terminal %d with %d requirements: %w",
				idx, len(requirements), ErrUncoveredTerminal)
		}
	}

	return &Gatekeeper{
		expr:         expr,
		expression:   expr.String(),
		requirements: requirements,
		resolverOpts: cfg.resolverOpts,
		logger:       cfg.logger,
		spans:        cfg.spans,
		metrics:      cfg.metrics,
		store:        cfg.store,
	}, nil
}

// Expression returns the canonical form of the bound expression.
func (g *Gatekeeper) Expression() string {
	return g.expression
}

// Expr returns the bound expression tree.
func (g *Gatekeeper) Expr() logicgate.Expr {
	return g.expr
}

// Decide resolves the referenced requirement checks and evaluates the
// expression. Only checks whose indices appear in the expression run.
// A failing check aborts the decision; the error identifies the check.
func (g *Gatekeeper) Decide(ctx context.Context) (Verdict, error) {
	decisionID := uuid.New().String()
	start := time.Now()

	ctx, span := g.spans.StartDecisionSpan(ctx, g.expression, decisionID)
	logger := observability.EnrichLogger(g.logger, decisionID, g.expression)
	observability.LogDecisionStart(logger, decisionID, len(g.requirements))

	opts := append([]resolver.Option{
		resolver.WithLogger(logger),
		resolver.WithSpanManager(g.spans),
		resolver.WithMetrics(g.metrics),
	}, g.resolverOpts...)
	res := resolver.New(g.requirements, opts...)

	truths, err := res.ResolveFor(ctx, g.expr)
	if err != nil {
		duration := time.Since(start)
		g.spans.EndSpanWithError(span, err)
		g.metrics.RecordDecisionError(ctx, duration)
		observability.LogDecisionError(logger, decisionID, err, float64(duration.Milliseconds()))
		return Verdict{}, err
	}

	allowed, err := logicgate.Evaluate(g.expr, truths)
	if err != nil {
		duration := time.Since(start)
		g.spans.EndSpanWithError(span, err)
		g.metrics.RecordDecisionError(ctx, duration)
		observability.LogDecisionError(logger, decisionID, err, float64(duration.Milliseconds()))
		return Verdict{}, err
	}

	g.spans.AddSpanEvent(ctx, "expression.evaluated",
		attribute.Bool("allowed", allowed),
		attribute.Int("checks", len(truths)),
	)

	duration := time.Since(start)
	verdict := Verdict{
		DecisionID: decisionID,
		Allowed:    allowed,
		Truths:     truths,
		Duration:   duration,
		DecidedAt:  start,
	}

	g.record(logger, verdict)
	g.spans.EndSpanWithError(span, nil)
	g.metrics.RecordDecision(ctx, allowed, duration)
	observability.LogDecisionComplete(logger, decisionID, allowed, float64(duration.Milliseconds()))
	return verdict, nil
}

// record appends the verdict to the audit store if one is attached.
// Storage failures never fail the decision.
func (g *Gatekeeper) record(logger *slog.Logger, v Verdict) {
	if g.store == nil {
		return
	}

	err := g.store.Append(decisionlog.Record{
		DecisionID: v.DecisionID,
		Expression: g.expression,
		Allowed:    v.Allowed,
		Truths:     v.Truths,
		Duration:   v.Duration,
		DecidedAt:  v.DecidedAt,
	})
	if err != nil {
		observability.LogDecisionRecordError(logger, v.DecisionID, err)
		return
	}
	observability.LogDecisionRecorded(logger, v.DecisionID, len(v.Truths))
}

// Package resolver fans out requirement checks and assembles truth mappings.
//
// A Resolver owns an ordered list of requirements. Resolve runs every
// check concurrently (bounded by WithMaxConcurrency), retries transient
// failures, and returns a completed logicgate.Truths keyed by requirement
// position. The evaluator is never handed a partial mapping: if any check
// fails permanently, Resolve returns an error instead.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/randalmurphal/logicgate/pkg/logicgate"
	lgerrors "github.com/randalmurphal/logicgate/pkg/logicgate/errors"
	"github.com/randalmurphal/logicgate/pkg/logicgate/observability"
)

// Resolver executes requirement checks and collects their results.
// It is immutable after New and safe for concurrent use.
type Resolver struct {
	requirements   []Requirement
	maxConcurrency int
	checkTimeout   time.Duration
	retry          lgerrors.RetryConfig
	logger         *slog.Logger
	spans          observability.SpanManager
	metrics        observability.MetricsRecorder
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxConcurrency bounds the number of checks running at once.
// Zero or negative means unbounded (one goroutine per requirement).
func WithMaxConcurrency(n int) Option {
	return func(r *Resolver) {
		r.maxConcurrency = n
	}
}

// WithCheckTimeout applies a per-check deadline.
// Zero means no per-check deadline beyond the caller's context.
func WithCheckTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.checkTimeout = d
	}
}

// WithRetry sets the retry policy for transient check failures.
// Default: lgerrors.DefaultRetry.
func WithRetry(cfg lgerrors.RetryConfig) Option {
	return func(r *Resolver) {
		r.retry = cfg
	}
}

// WithLogger sets the logger. Nil disables logging.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithSpanManager sets the span manager. Use observability.NewSpanManager
// to emit a span per requirement check.
func WithSpanManager(spans observability.SpanManager) Option {
	return func(r *Resolver) {
		if spans != nil {
			r.spans = spans
		}
	}
}

// WithMetrics sets the metrics recorder for per-check executions,
// latency, and errors.
func WithMetrics(metrics observability.MetricsRecorder) Option {
	return func(r *Resolver) {
		if metrics != nil {
			r.metrics = metrics
		}
	}
}

// New creates a Resolver over an ordered requirement list.
// The requirement at position i supplies the truth value for terminal i.
func New(requirements []Requirement, opts ...Option) *Resolver {
	r := &Resolver{
		requirements: requirements,
		retry:        lgerrors.DefaultRetry,
		logger:       slog.Default(),
		spans:        observability.NoopSpanManager{},
		metrics:      observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Len returns the number of requirements.
func (r *Resolver) Len() int {
	return len(r.requirements)
}

// checkResult carries one requirement's outcome across the fan-out boundary.
type checkResult struct {
	index    int
	value    bool
	err      error
	duration time.Duration
}

// Resolve runs every requirement check concurrently and returns a
// completed truth mapping keyed by requirement position.
//
// The mapping is a finished, immutable snapshot: Resolve only returns it
// once every check has produced a definite boolean. The first permanent
// failure (or retry exhaustion) aborts the round with a *CheckError
// identifying the failed slot.
func (r *Resolver) Resolve(ctx context.Context) (logicgate.Truths, error) {
	indices := make([]int, len(r.requirements))
	for i := range indices {
		indices[i] = i
	}
	return r.resolve(ctx, indices)
}

// ResolveFor resolves only the requirements the expression references.
// It fails up front if the expression references a terminal index with
// no corresponding requirement, before any check runs.
func (r *Resolver) ResolveFor(ctx context.Context, expr logicgate.Expr) (logicgate.Truths, error) {
	indices := logicgate.Terminals(expr)
	for _, i := range indices {
		if i >= len(r.requirements) {
			return nil, fmt.Errorf("expression references terminal %d but only %d requirements are defined",
				i, len(r.requirements))
		}
	}
	return r.resolve(ctx, indices)
}

func (r *Resolver) resolve(ctx context.Context, indices []int) (logicgate.Truths, error) {
	start := time.Now()

	var sem chan struct{}
	if r.maxConcurrency > 0 {
		sem = make(chan struct{}, r.maxConcurrency)
	}

	results := make(chan checkResult, len(indices))
	var wg sync.WaitGroup

	for _, i := range indices {
		wg.Add(1)
		go func(index int, req Requirement) {
			defer wg.Done()

			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					results <- checkResult{index: index, err: ctx.Err()}
					return
				}
			}

			results <- r.runCheck(ctx, index, req)
		}(i, r.requirements[i])
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	truths := make(logicgate.Truths, len(indices))
	var firstErr error

	for result := range results {
		if result.err != nil {
			if firstErr == nil {
				firstErr = &lgerrors.CheckError{Index: result.index, Op: "check", Err: result.err}
			}
			continue
		}
		truths[result.index] = result.value
	}

	if firstErr != nil {
		return nil, firstErr
	}

	if r.logger != nil {
		r.logger.Debug("requirement round resolved",
			slog.Int("requirements", len(indices)),
			slog.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
		)
	}
	return truths, nil
}

// runCheck executes one requirement with per-check timeout and retry,
// emitting a span, metrics, and a log line for the check.
func (r *Resolver) runCheck(ctx context.Context, index int, req Requirement) checkResult {
	start := time.Now()
	ctx, span := r.spans.StartCheckSpan(ctx, index)

	result := lgerrors.WithRetryContext(ctx, r.retry, func(ctx context.Context) (bool, error) {
		if r.checkTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.checkTimeout)
			defer cancel()
		}
		return req.Check(ctx)
	})

	duration := time.Since(start)
	r.spans.EndSpanWithError(span, result.Err)
	r.metrics.RecordCheck(ctx, index, duration, result.Err)

	if result.Err != nil {
		observability.LogCheckError(r.logger, index, result.Attempts, result.Err)
		return checkResult{index: index, err: result.Err, duration: duration}
	}

	observability.LogCheckComplete(r.logger, index, result.Value, result.Attempts,
		float64(duration.Microseconds())/1000)
	return checkResult{index: index, value: result.Value, duration: duration}
}

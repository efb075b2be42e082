package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records gating metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCheck records one requirement check with its duration and
	// error status.
	RecordCheck(ctx context.Context, index int, duration time.Duration, err error)

	// RecordDecision records a completed gating decision and its verdict.
	RecordDecision(ctx context.Context, allowed bool, duration time.Duration)

	// RecordDecisionError records a decision that failed to produce a verdict.
	RecordDecisionError(ctx context.Context, duration time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	checks          metric.Int64Counter
	checkLatency    metric.Float64Histogram
	checkErrors     metric.Int64Counter
	decisions       metric.Int64Counter
	decisionLatency metric.Float64Histogram
	decisionErrors  metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("logicgate")

	checks, err := meter.Int64Counter("logicgate.check.executions",
		metric.WithDescription("Number of requirement checks"),
	)
	if err != nil {
		return nil, err
	}

	checkLatency, err := meter.Float64Histogram("logicgate.check.latency_ms",
		metric.WithDescription("Requirement check latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	checkErrors, err := meter.Int64Counter("logicgate.check.errors",
		metric.WithDescription("Number of requirement check errors"),
	)
	if err != nil {
		return nil, err
	}

	decisions, err := meter.Int64Counter("logicgate.decisions",
		metric.WithDescription("Number of gating decisions by verdict"),
	)
	if err != nil {
		return nil, err
	}

	decisionLatency, err := meter.Float64Histogram("logicgate.decision.latency_ms",
		metric.WithDescription("Gating decision latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	decisionErrors, err := meter.Int64Counter("logicgate.decision.errors",
		metric.WithDescription("Number of gating decisions that failed"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		checks:          checks,
		checkLatency:    checkLatency,
		checkErrors:     checkErrors,
		decisions:       decisions,
		decisionLatency: decisionLatency,
		decisionErrors:  decisionErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCheck records one requirement check.
func (m *otelMetrics) RecordCheck(ctx context.Context, index int, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Int("requirement_index", index),
	}

	m.checks.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.checkLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.checkErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordDecision records a completed gating decision.
func (m *otelMetrics) RecordDecision(ctx context.Context, allowed bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Bool("allowed", allowed),
	}
	m.decisions.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.decisionLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordDecisionError records a decision that produced no verdict.
func (m *otelMetrics) RecordDecisionError(ctx context.Context, duration time.Duration) {
	m.decisionErrors.Add(ctx, 1)
	m.decisionLatency.Record(ctx, float64(duration.Milliseconds()))
}

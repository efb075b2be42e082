package observability

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the logicgate tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("logicgate")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartDecisionSpan starts a span for an entire gating decision.
	// Returns the context with span and the span itself.
	StartDecisionSpan(ctx context.Context, expression, decisionID string) (context.Context, trace.Span)

	// StartCheckSpan starts a span for one requirement check.
	// The check span should be a child of the decision span.
	StartCheckSpan(ctx context.Context, index int) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartDecisionSpan starts a span for an entire gating decision.
func (m *otelSpanManager) StartDecisionSpan(ctx context.Context, expression, decisionID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "logicgate.decide",
		trace.WithAttributes(
			attribute.String("gate.expression", expression),
			attribute.String("decision.id", decisionID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartCheckSpan starts a span for one requirement check.
func (m *otelSpanManager) StartCheckSpan(ctx context.Context, index int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "logicgate.check."+strconv.Itoa(index),
		trace.WithAttributes(
			attribute.Int("requirement.index", index),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

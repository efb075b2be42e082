package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("logicgate")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestStartDecisionSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("creates span with correct name and attributes", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartDecisionSpan(ctx, "(0 AND 1)", "dec-123")
		require.NotNil(t, span)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "logicgate.decide", s.Name)

		var expression, decisionID string
		for _, attr := range s.Attributes {
			switch attr.Key {
			case "gate.expression":
				expression = attr.Value.AsString()
			case "decision.id":
				decisionID = attr.Value.AsString()
			}
		}
		assert.Equal(t, "(0 AND 1)", expression)
		assert.Equal(t, "dec-123", decisionID)
	})
}

func TestStartCheckSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	ctx, parent := sm.StartDecisionSpan(context.Background(), "(NOT 0)", "dec-456")
	_, child := sm.StartCheckSpan(ctx, 0)
	child.End()
	parent.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	// Child span is exported first.
	assert.Equal(t, "logicgate.check.0", spans[0].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())

	var index int64 = -1
	for _, attr := range spans[0].Attributes {
		if attr.Key == "requirement.index" {
			index = attr.Value.AsInt64()
		}
	}
	assert.Equal(t, int64(0), index)
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("records error status", func(t *testing.T) {
		exporter.Reset()
		_, span := sm.StartCheckSpan(context.Background(), 3)
		sm.EndSpanWithError(span, errors.New("rate limited"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		require.Len(t, spans[0].Events, 1)
		assert.Equal(t, "exception", spans[0].Events[0].Name)
	})

	t.Run("records ok status", func(t *testing.T) {
		exporter.Reset()
		_, span := sm.StartCheckSpan(context.Background(), 3)
		sm.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("tolerates nil span", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, errors.New("x"))
		})
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	ctx, span := sm.StartDecisionSpan(context.Background(), "0", "dec-789")
	sm.AddSpanEvent(ctx, "verdict", attribute.Bool("allowed", true))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "verdict", spans[0].Events[0].Name)
}

package gatekeeper_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/logicgate/pkg/logicgate/gatekeeper"
	"github.com/randalmurphal/logicgate/pkg/logicgate/observability"
	"github.com/randalmurphal/logicgate/pkg/logicgate/resolver"
)

func TestDecide_EmitsCheckSpansAndMetrics(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prevTracer := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTracer)
		_ = tp.Shutdown(context.Background())
	})

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	prevMeter := otel.GetMeterProvider()
	otel.SetMeterProvider(mp)
	t.Cleanup(func() {
		otel.SetMeterProvider(prevMeter)
		_ = mp.Shutdown(context.Background())
	})

	gk, err := gatekeeper.New("(0 AND 1)",
		[]resolver.Requirement{resolver.Static(true), resolver.Static(true)},
		gatekeeper.WithSpanManager(observability.NewSpanManager()),
		gatekeeper.WithMetrics(observability.NewMetricsRecorder()),
	)
	require.NoError(t, err)

	verdict, err := gk.Decide(context.Background())
	require.NoError(t, err)
	assert.True(t, verdict.Allowed)

	spans := exporter.GetSpans()
	names := make([]string, 0, len(spans))
	for _, span := range spans {
		names = append(names, span.Name)
	}
	assert.Contains(t, names, "logicgate.decide")
	assert.Contains(t, names, "logicgate.check.0")
	assert.Contains(t, names, "logicgate.check.1")

	// Check spans carry the requirement index and parent into the decision span.
	var decideSpanID trace.SpanID
	for _, span := range spans {
		if span.Name == "logicgate.decide" {
			decideSpanID = span.SpanContext.SpanID()
		}
	}
	for _, span := range spans {
		if span.Name == "logicgate.check.0" || span.Name == "logicgate.check.1" {
			assert.Equal(t, decideSpanID, span.Parent.SpanID())
		}
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	found := make(map[string]bool)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = true
		}
	}
	assert.True(t, found["logicgate.check.executions"], "check executions counter missing")
	assert.True(t, found["logicgate.check.latency_ms"], "check latency histogram missing")
	assert.True(t, found["logicgate.decisions"], "decisions counter missing")
}

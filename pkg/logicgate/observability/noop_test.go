package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordCheck(ctx, 0, time.Millisecond, nil)
		m.RecordCheck(ctx, 1, time.Millisecond, errors.New("boom"))
		m.RecordDecision(ctx, true, time.Millisecond)
		m.RecordDecisionError(ctx, time.Millisecond)
	})
}

func TestNoopSpanManager(t *testing.T) {
	sm := NoopSpanManager{}
	ctx := context.Background()

	newCtx, span := sm.StartDecisionSpan(ctx, "(0 AND 1)", "dec-1")
	assert.Equal(t, ctx, newCtx, "noop must not derive a new context")
	assert.NotNil(t, span)

	_, checkSpan := sm.StartCheckSpan(ctx, 0)
	assert.NotNil(t, checkSpan)

	assert.NotPanics(t, func() {
		sm.EndSpanWithError(span, errors.New("x"))
		sm.EndSpanWithError(nil, nil)
		sm.AddSpanEvent(ctx, "event", attribute.Bool("allowed", false))
	})
}

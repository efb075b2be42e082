package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger returns a debug-level logger writing JSON lines to buf.
func captureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestEnrichLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := captureLogger(&buf)

	enriched := EnrichLogger(logger, "dec-123", "(0 AND 1)")
	require.NotNil(t, enriched)
	enriched.Info("hello")

	out := buf.String()
	assert.Contains(t, out, `"decision_id":"dec-123"`)
	assert.Contains(t, out, `"expression":"(0 AND 1)"`)
}

func TestEnrichLogger_Nil(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "dec-1", "0"))
}

func TestDecisionLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := captureLogger(&buf)

	LogDecisionStart(logger, "dec-1", 3)
	LogDecisionComplete(logger, "dec-1", true, 12.5)
	LogDecisionError(logger, "dec-2", errors.New("check failed"), 3.1)
	LogCheckComplete(logger, 0, true, 1, 1.2)
	LogCheckError(logger, 1, 3, errors.New("rate limited"))
	LogDecisionRecorded(logger, "dec-1", 3)
	LogDecisionRecordError(logger, "dec-1", errors.New("store closed"))

	out := buf.String()
	assert.Contains(t, out, "gating decision starting")
	assert.Contains(t, out, "gating decision completed")
	assert.Contains(t, out, "gating decision failed")
	assert.Contains(t, out, "requirement check completed")
	assert.Contains(t, out, "requirement check failed")
	assert.Contains(t, out, "decision recorded")
	assert.Contains(t, out, "decision record failed")
}

func TestLogging_NilLoggerSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		LogDecisionStart(nil, "dec-1", 0)
		LogDecisionComplete(nil, "dec-1", false, 0)
		LogDecisionError(nil, "dec-1", errors.New("x"), 0)
		LogCheckComplete(nil, 0, false, 0, 0)
		LogCheckError(nil, 0, 0, errors.New("x"))
		LogDecisionRecorded(nil, "dec-1", 0)
		LogDecisionRecordError(nil, "dec-1", errors.New("x"))
	})
}

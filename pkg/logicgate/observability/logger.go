// Package observability provides structured logging, metrics, and
// distributed tracing for gating decisions.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
)

// EnrichLogger adds decision context to a logger.
// Returns a new logger with decision_id and expression fields.
func EnrichLogger(logger *slog.Logger, decisionID, expression string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("decision_id", decisionID),
		slog.String("expression", expression),
	)
}

// LogDecisionStart logs the start of a gating decision.
func LogDecisionStart(logger *slog.Logger, decisionID string, requirements int) {
	if logger == nil {
		return
	}
	logger.Info("gating decision starting",
		slog.String("decision_id", decisionID),
		slog.Int("requirements", requirements),
	)
}

// LogDecisionComplete logs a completed gating decision.
func LogDecisionComplete(logger *slog.Logger, decisionID string, allowed bool, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("gating decision completed",
		slog.String("decision_id", decisionID),
		slog.Bool("allowed", allowed),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDecisionError logs a failed gating decision.
func LogDecisionError(logger *slog.Logger, decisionID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("gating decision failed",
		slog.String("decision_id", decisionID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCheckComplete logs one requirement check result.
func LogCheckComplete(logger *slog.Logger, index int, value bool, attempts int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("requirement check completed",
		slog.Int("index", index),
		slog.Bool("value", value),
		slog.Int("attempts", attempts),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCheckError logs a failed requirement check.
func LogCheckError(logger *slog.Logger, index int, attempts int, err error) {
	if logger == nil {
		return
	}
	logger.Warn("requirement check failed",
		slog.Int("index", index),
		slog.Int("attempts", attempts),
		slog.String("error", err.Error()),
	)
}

// LogDecisionRecorded logs an audit log append.
func LogDecisionRecorded(logger *slog.Logger, decisionID string, checks int) {
	if logger == nil {
		return
	}
	logger.Debug("decision recorded",
		slog.String("decision_id", decisionID),
		slog.Int("checks", checks),
	)
}

// LogDecisionRecordError logs an audit log failure (non-fatal).
func LogDecisionRecordError(logger *slog.Logger, decisionID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("decision record failed",
		slog.String("decision_id", decisionID),
		slog.String("error", err.Error()),
	)
}

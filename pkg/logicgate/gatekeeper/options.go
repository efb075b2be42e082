package gatekeeper

import (
	"log/slog"

	"github.com/randalmurphal/logicgate/pkg/logicgate"
	"github.com/randalmurphal/logicgate/pkg/logicgate/decisionlog"
	"github.com/randalmurphal/logicgate/pkg/logicgate/observability"
	"github.com/randalmurphal/logicgate/pkg/logicgate/resolver"
)

type config struct {
	parseOpts    []logicgate.ParseOption
	resolverOpts []resolver.Option
	logger       *slog.Logger
	spans        observability.SpanManager
	metrics      observability.MetricsRecorder
	store        decisionlog.Store
}

// Option configures a Gatekeeper.
type Option func(*config)

func applyOptions(opts []Option) config {
	cfg := config{
		spans:   observability.NoopSpanManager{},
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithParseOptions sets options for parsing the logic string.
func WithParseOptions(opts ...logicgate.ParseOption) Option {
	return func(c *config) {
		c.parseOpts = append(c.parseOpts, opts...)
	}
}

// WithResolverOptions sets options for the requirement resolver,
// such as concurrency limits, per-check timeouts, and retry policy.
func WithResolverOptions(opts ...resolver.Option) Option {
	return func(c *config) {
		c.resolverOpts = append(c.resolverOpts, opts...)
	}
}

// WithLogger sets the structured logger. Nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithSpanManager sets the span manager. Use observability.NewSpanManager
// to emit OpenTelemetry spans for decisions and checks.
func WithSpanManager(spans observability.SpanManager) Option {
	return func(c *config) {
		if spans != nil {
			c.spans = spans
		}
	}
}

// WithMetrics sets the metrics recorder. Use observability.NewMetricsRecorder
// to emit OpenTelemetry metrics.
func WithMetrics(metrics observability.MetricsRecorder) Option {
	return func(c *config) {
		if metrics != nil {
			c.metrics = metrics
		}
	}
}

// WithStore attaches an audit store. Every verdict is appended to it.
// Append failures are logged but never fail the decision.
func WithStore(store decisionlog.Store) Option {
	return func(c *config) {
		c.store = store
	}
}

// Package ratelimit provides sliding-window admission control for the
// remote summarization calls issued by the DocSummary pipeline. Two
// independent windows are tracked: request count and estimated token
// usage. Admission never fails hard; a caller is delayed until both
// windows have room.
package ratelimit

import (
	"log/slog"
	"time"

	"github.com/localrivet/docsummary/internal/telemetry"
)

const (
	// DefaultWindow is the default sliding-window duration.
	DefaultWindow = 60 * time.Second

	// DefaultMaxRequests is the default request ceiling per window.
	DefaultMaxRequests = 200

	// DefaultMaxTokens is the default token ceiling per window.
	DefaultMaxTokens = 150000

	// DefaultSlack is the default safety margin added to every
	// computed wait, covering clock skew against the remote quota.
	DefaultSlack = time.Second
)

// requestRecord marks one admitted request.
type requestRecord struct {
	at time.Time
}

// tokenRecord marks the estimated token usage of one admitted request.
type tokenRecord struct {
	at     time.Time
	tokens int
}

// GovernorConfig holds configuration for a Governor.
type GovernorConfig struct {
	Window      time.Duration
	MaxRequests int
	MaxTokens   int
	Slack       time.Duration
}

// Governor tracks request and token usage over trailing windows and
// blocks callers until a new call fits under both ceilings.
//
// Records are never deleted eagerly; every check filters the histories
// down to events younger than the window. The governor assumes a single
// sequential caller: the check-then-append sequence in Admit is not
// internally synchronized.
type Governor struct {
	window      time.Duration
	maxRequests int
	maxTokens   int
	slack       time.Duration

	requests []requestRecord
	tokens   []tokenRecord

	logger  *slog.Logger
	metrics *telemetry.MetricsCollector

	// now and sleep are injectable for tests with a simulated clock.
	now   func() time.Time
	sleep func(time.Duration)
}

// NewGovernor creates a Governor from config, substituting defaults for
// unset fields.
func NewGovernor(config GovernorConfig, logger *slog.Logger, metrics *telemetry.MetricsCollector) *Governor {
	if config.Window <= 0 {
		config.Window = DefaultWindow
	}
	if config.MaxRequests <= 0 {
		config.MaxRequests = DefaultMaxRequests
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	if config.Slack <= 0 {
		config.Slack = DefaultSlack
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = telemetry.NewMetricsCollector()
	}

	return &Governor{
		window:      config.Window,
		maxRequests: config.MaxRequests,
		maxTokens:   config.MaxTokens,
		slack:       config.Slack,
		logger:      logger,
		metrics:     metrics,
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// Admit blocks until one more request with the given estimated token
// cost fits under both window ceilings, then records the admission.
// Admission is always eventually granted; rate pressure only delays, it
// never rejects.
func (g *Governor) Admit(estimatedTokens int) {
	if estimatedTokens < 0 {
		estimatedTokens = 0
	}

	g.pruneRequests()
	if len(g.requests) >= g.maxRequests {
		wait := g.window - g.now().Sub(g.requests[0].at) + g.slack
		g.delay(wait, "requests")
	}

	// Usage may have aged out during the request wait, so re-filter
	// before the token check.
	g.pruneTokens()
	if g.tokenSum()+estimatedTokens > g.maxTokens {
		if len(g.tokens) > 0 {
			wait := g.window - g.now().Sub(g.tokens[0].at) + g.slack
			g.delay(wait, "tokens")
		} else {
			// The estimate alone exceeds the ceiling; waiting cannot
			// make it fit, so admit immediately.
			g.logger.Warn("estimated tokens exceed the window ceiling",
				"estimated_tokens", estimatedTokens,
				"max_tokens", g.maxTokens)
		}
	}

	now := g.now()
	g.requests = append(g.requests, requestRecord{at: now})
	g.tokens = append(g.tokens, tokenRecord{at: now, tokens: estimatedTokens})
}

// delay sleeps for the computed wait when it is positive. Negative
// waits mean the oldest record is about to age out and are treated as
// zero.
func (g *Governor) delay(wait time.Duration, dimension string) {
	if wait <= 0 {
		return
	}
	g.logger.Info("rate limit reached, waiting",
		"dimension", dimension,
		"wait_ms", wait.Milliseconds())
	g.metrics.IncrementCounter(telemetry.MetricRateLimitWaits, 1)
	g.metrics.RecordTimer(telemetry.MetricRateLimitWaitTime, wait)
	g.sleep(wait)
}

// pruneRequests drops request records older than the window.
func (g *Governor) pruneRequests() {
	now := g.now()
	kept := g.requests[:0]
	for _, record := range g.requests {
		if now.Sub(record.at) < g.window {
			kept = append(kept, record)
		}
	}
	g.requests = kept
}

// pruneTokens drops token records older than the window.
func (g *Governor) pruneTokens() {
	now := g.now()
	kept := g.tokens[:0]
	for _, record := range g.tokens {
		if now.Sub(record.at) < g.window {
			kept = append(kept, record)
		}
	}
	g.tokens = kept
}

// tokenSum returns the summed token usage of the retained records.
func (g *Governor) tokenSum() int {
	total := 0
	for _, record := range g.tokens {
		total += record.tokens
	}
	return total
}

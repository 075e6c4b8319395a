package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/localrivet/docsummary/internal/summarizer/providers"
	"github.com/localrivet/docsummary/internal/telemetry"
)

const (
	// DefaultMaxOutputTokens bounds the completion size requested from
	// the provider for each call.
	DefaultMaxOutputTokens = 1024

	// DefaultCallTimeout bounds one remote call when the caller's
	// context carries no deadline of its own.
	DefaultCallTimeout = 120 * time.Second
)

// AISummarizer implements the Summarizer interface using one configured
// LLM provider. There are no retries, no fallback providers, and no
// caching at this boundary: the rate governor upstream is the sole
// throttling mechanism, and failures propagate to the pipeline.
type AISummarizer struct {
	provider        providers.LLMProvider
	maxOutputTokens int
	callTimeout     time.Duration
	metrics         *telemetry.MetricsCollector
}

// AISummarizerConfig holds configuration for an AISummarizer.
type AISummarizerConfig struct {
	MaxOutputTokens int
	CallTimeout     time.Duration
	Metrics         *telemetry.MetricsCollector
}

// NewAISummarizer creates an AISummarizer backed by the given provider.
func NewAISummarizer(provider providers.LLMProvider, config AISummarizerConfig) *AISummarizer {
	if config.MaxOutputTokens <= 0 {
		config.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if config.CallTimeout <= 0 {
		config.CallTimeout = DefaultCallTimeout
	}
	if config.Metrics == nil {
		config.Metrics = telemetry.NewMetricsCollector()
	}

	return &AISummarizer{
		provider:        provider,
		maxOutputTokens: config.MaxOutputTokens,
		callTimeout:     config.CallTimeout,
		metrics:         config.Metrics,
	}
}

// Provider returns the backing LLM provider.
func (s *AISummarizer) Provider() providers.LLMProvider {
	return s.provider
}

// MapSummarize summarizes one chunk of the source document.
func (s *AISummarizer) MapSummarize(ctx context.Context, chunkText string, directive Directive) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the following section of a larger document. %s\n\n%s",
		directive.Instruction(), chunkText)

	start := time.Now()
	summary, err := s.complete(ctx, prompt)
	s.metrics.RecordTimer(telemetry.MetricMapTime, time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricCallsFailure, 1)
		return "", fmt.Errorf("map call failed: %w", err)
	}
	s.metrics.IncrementCounter(telemetry.MetricCallsSuccess, 1)
	return summary, nil
}

// CombineSummarize merges the ordered partial summaries into the final
// summary.
func (s *AISummarizer) CombineSummarize(ctx context.Context, partials []string, directive Directive) (string, error) {
	var prompt strings.Builder
	fmt.Fprintf(&prompt,
		"The following are partial summaries of consecutive sections of one document, in order. "+
			"Merge them into a single coherent summary of the whole document. %s\n",
		directive.Instruction())
	for i, partial := range partials {
		fmt.Fprintf(&prompt, "\nSection %d:\n%s\n", i+1, partial)
	}

	start := time.Now()
	summary, err := s.complete(ctx, prompt.String())
	s.metrics.RecordTimer(telemetry.MetricCombineTime, time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricCallsFailure, 1)
		return "", fmt.Errorf("combine call failed: %w", err)
	}
	s.metrics.IncrementCounter(telemetry.MetricCallsSuccess, 1)
	return summary, nil
}

func (s *AISummarizer) complete(ctx context.Context, prompt string) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}
	return s.provider.Complete(ctx, prompt, s.maxOutputTokens)
}

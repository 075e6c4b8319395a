// Package pipeline drives the chunked map-reduce summarization run:
// normalize, split, rate-governed map calls in document order, one
// rate-governed combine call, final summary out.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/localrivet/docsummary/internal/chunker"
	"github.com/localrivet/docsummary/internal/errortypes"
	"github.com/localrivet/docsummary/internal/progress"
	"github.com/localrivet/docsummary/internal/summarizer"
	"github.com/localrivet/docsummary/internal/telemetry"
	"github.com/localrivet/docsummary/internal/tokens"
)

// Governor is the admission control the pipeline consults before every
// remote call.
type Governor interface {
	// Admit blocks until one more call with the given estimated token
	// cost is safe, then records it.
	Admit(estimatedTokens int)
}

// Options holds the collaborators and tunables for a Pipeline.
type Options struct {
	Summarizer summarizer.Summarizer
	Governor   Governor
	Estimator  tokens.Estimator

	MaxChunkSize int
	Overlap      int

	Logger  *slog.Logger
	Metrics *telemetry.MetricsCollector
}

// Pipeline orchestrates one summarization run at a time. Chunks are
// mapped strictly one after another and the combine call runs only
// after every map call has completed; the pipeline never issues
// overlapping requests.
type Pipeline struct {
	summarizer summarizer.Summarizer
	governor   Governor
	estimator  tokens.Estimator

	maxChunkSize int
	overlap      int

	logger  *slog.Logger
	metrics *telemetry.MetricsCollector
}

// New creates a Pipeline from options, substituting defaults for unset
// tunables. Summarizer and Governor are required.
func New(opts Options) (*Pipeline, error) {
	if opts.Summarizer == nil {
		return nil, errortypes.ConfigError(errors.New("summarizer is nil"), "pipeline requires a summarizer")
	}
	if opts.Governor == nil {
		return nil, errortypes.ConfigError(errors.New("governor is nil"), "pipeline requires a rate governor")
	}
	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = chunker.DefaultMaxChunkSize
	}
	if opts.Overlap < 0 {
		opts.Overlap = chunker.DefaultOverlap
	}
	if opts.Overlap >= opts.MaxChunkSize {
		return nil, errortypes.ConfigError(
			fmt.Errorf("overlap %d must be smaller than max chunk size %d", opts.Overlap, opts.MaxChunkSize),
			"invalid pipeline configuration")
	}
	if opts.Estimator == nil {
		opts.Estimator = tokens.NewBudgetEstimator(opts.MaxChunkSize, tokens.DefaultCharsPerToken)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = telemetry.NewMetricsCollector()
	}

	return &Pipeline{
		summarizer:   opts.Summarizer,
		governor:     opts.Governor,
		estimator:    opts.Estimator,
		maxChunkSize: opts.MaxChunkSize,
		overlap:      opts.Overlap,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
	}, nil
}

// Run summarizes rawText at the verbosity selected by lengthSpec and
// returns the final summary. It fails with an input error when the
// normalized text is empty, and with a summarization error carrying the
// chunk index and phase when a remote call fails. There is no partial
// output: the run either completes or aborts.
func (p *Pipeline) Run(ctx context.Context, rawText, lengthSpec string) (string, error) {
	started := time.Now()

	text := chunker.Normalize(rawText)
	if text == "" {
		return "", errortypes.InputError(
			errors.New("document is empty after normalization"),
			"no content to summarize")
	}

	directive := summarizer.ResolveDirective(lengthSpec)

	chunks, err := chunker.Split(text, p.maxChunkSize, p.overlap)
	if err != nil {
		return "", err
	}

	documentChars := utf8.RuneCountInString(text)
	p.metrics.SetGauge(telemetry.MetricChunks, float64(len(chunks)))
	p.metrics.SetGauge(telemetry.MetricDocumentLength, float64(documentChars))
	p.logger.Info("starting summarization run",
		"chunks", len(chunks),
		"document_chars", documentChars)

	tracker := progress.NewTracker(len(chunks)+2, p.logger)
	tracker.Step("setup complete")

	partials := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		estimate := p.estimator.Estimate(chunk.Text)
		p.metrics.IncrementCounter(telemetry.MetricEstimatedTokens, int64(estimate))
		p.governor.Admit(estimate)

		p.metrics.IncrementCounter(telemetry.MetricMapCalls, 1)
		partial, err := p.summarizer.MapSummarize(ctx, chunk.Text, directive)
		if err != nil {
			return "", errortypes.SummarizationError(err, "map call failed").
				WithField("chunk", chunk.Index).
				WithField("phase", "map")
		}
		partials = append(partials, partial)

		// Progress is reported on call completion, not admission.
		tracker.Step(fmt.Sprintf("chunk %d of %d summarized", chunk.Index+1, len(chunks)))
	}

	combineEstimate := p.estimator.Estimate(strings.Join(partials, "\n"))
	p.metrics.IncrementCounter(telemetry.MetricEstimatedTokens, int64(combineEstimate))
	p.governor.Admit(combineEstimate)

	p.metrics.IncrementCounter(telemetry.MetricCombineCalls, 1)
	final, err := p.summarizer.CombineSummarize(ctx, partials, directive)
	if err != nil {
		return "", errortypes.SummarizationError(err, "combine call failed").
			WithField("chunks", len(chunks)).
			WithField("phase", "combine")
	}

	tracker.Step("processing complete")
	tracker.Complete()
	p.metrics.RecordTimer(telemetry.MetricTotalTime, time.Since(started))

	return final, nil
}

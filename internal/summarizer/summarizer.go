// Package summarizer provides the remote summarization boundary for the
// DocSummary pipeline: the map call applied to each chunk and the
// combine call applied to the collected partial summaries.
package summarizer

import "context"

// Summarizer is the external collaborator that performs remote
// text-generation calls. Failures are not retried at this boundary;
// they propagate to the caller.
type Summarizer interface {
	// MapSummarize summarizes one chunk of the source document,
	// shaped by the length directive.
	MapSummarize(ctx context.Context, chunkText string, directive Directive) (string, error)

	// CombineSummarize merges the ordered partial summaries into the
	// final summary, shaped by the same length directive.
	CombineSummarize(ctx context.Context, partials []string, directive Directive) (string, error)
}

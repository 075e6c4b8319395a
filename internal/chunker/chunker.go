// Package chunker provides text normalization and deterministic splitting
// of large documents into bounded, overlapping chunks for the DocSummary
// pipeline.
package chunker

import (
	"fmt"

	"github.com/localrivet/docsummary/internal/errortypes"
)

const (
	// DefaultMaxChunkSize is the default maximum chunk size in characters.
	// Chosen conservatively below typical model token ceilings, assuming
	// roughly 4 characters per token.
	DefaultMaxChunkSize = 30000

	// DefaultOverlap is the default number of characters shared between
	// adjacent chunks to preserve cross-boundary context.
	DefaultOverlap = 1000

	// boundaryLookbackDivisor bounds how far back from the size limit the
	// splitter searches for a natural break (maxChunkSize / divisor).
	boundaryLookbackDivisor = 10
)

// Chunk is one bounded slice of the normalized document. Chunks are
// produced in document order; each chunk after the first begins Overlap
// characters before the end of its predecessor.
type Chunk struct {
	// Index is the zero-based position of the chunk in the sequence.
	Index int

	// Text is the chunk content.
	Text string

	// Length is the chunk length in characters (Unicode code points).
	Length int
}

// Split partitions text into an ordered sequence of overlapping chunks of
// at most maxChunkSize characters each. Sizes are measured in Unicode
// code points, so a chunk boundary never falls inside a multi-byte rune.
//
// The splitter prefers breaking at natural boundaries near the size
// limit: paragraph break first, then sentence end, then word break, and
// hard cut as a last resort. Same input and parameters always yield the
// same chunk sequence.
//
// Split returns a configuration error when overlap >= maxChunkSize. An
// empty input yields an empty sequence; callers are expected to reject
// empty documents before splitting.
func Split(text string, maxChunkSize, overlap int) ([]Chunk, error) {
	if maxChunkSize <= 0 {
		return nil, errortypes.ConfigError(
			fmt.Errorf("max chunk size must be positive, got %d", maxChunkSize),
			"invalid splitter configuration")
	}
	if overlap < 0 || overlap >= maxChunkSize {
		return nil, errortypes.ConfigError(
			fmt.Errorf("overlap %d must be non-negative and smaller than max chunk size %d", overlap, maxChunkSize),
			"invalid splitter configuration")
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	var chunks []Chunk
	start := 0
	for {
		end := start + maxChunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = breakPoint(runes, start, end, overlap)
		}

		chunkText := string(runes[start:end])
		chunks = append(chunks, Chunk{
			Index:  len(chunks),
			Text:   chunkText,
			Length: end - start,
		})

		if end == len(runes) {
			return chunks, nil
		}
		start = end - overlap
	}
}

// breakPoint picks the cut position for a chunk spanning [start, limit).
// It scans backward from the size limit, within a bounded lookback
// window, for the natural boundary closest to the limit: a paragraph
// break wins over a sentence end, which wins over a word break. When no
// boundary is found, or the boundary would stall forward progress, the
// chunk is hard-cut at the limit.
func breakPoint(runes []rune, start, limit, overlap int) int {
	lookback := (limit - start) / boundaryLookbackDivisor
	floor := limit - lookback
	// The next chunk starts overlap characters before this cut, so the
	// cut must stay ahead of start+overlap to advance.
	if floor <= start+overlap {
		floor = start + overlap + 1
	}

	sentence := -1
	word := -1
	for i := limit - 1; i >= floor; i-- {
		switch runes[i] {
		case '\n':
			if i > 0 && runes[i-1] == '\n' {
				return i + 1
			}
		case '.', '!', '?':
			if sentence < 0 && i+1 < limit && isSpace(runes[i+1]) {
				sentence = i + 2
			}
		case ' ', '\t':
			if word < 0 {
				word = i + 1
			}
		}
	}

	if sentence >= 0 {
		return sentence
	}
	if word >= 0 {
		return word
	}
	return limit
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

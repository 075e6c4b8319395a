// Package tokens provides token-count estimation for sizing remote
// summarization calls against the rate governor's token window.
package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// DefaultCharsPerToken is the conservative characters-per-token
	// ratio used by the heuristic estimators.
	DefaultCharsPerToken = 4

	// DefaultEncoding is the BPE encoding used by the tiktoken
	// estimator when none is configured.
	DefaultEncoding = "cl100k_base"
)

// Estimator estimates the token cost of sending text to the remote
// summarization service.
type Estimator interface {
	// Estimate returns the estimated token count for text.
	Estimate(text string) int
}

// BudgetEstimator ignores the actual text and always reports the full
// chunk budget (maxChunkSize / charsPerToken). Deliberately
// conservative: every admission reserves the worst case, leaving
// headroom under the combine call's own cost.
type BudgetEstimator struct {
	budget int
}

// NewBudgetEstimator creates a BudgetEstimator for the given maximum
// chunk size and characters-per-token ratio.
func NewBudgetEstimator(maxChunkSize, charsPerToken int) *BudgetEstimator {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	return &BudgetEstimator{budget: maxChunkSize / charsPerToken}
}

// Estimate returns the fixed chunk budget regardless of text.
func (e *BudgetEstimator) Estimate(_ string) int {
	return e.budget
}

// HeuristicEstimator estimates tokens from actual text length using a
// characters-per-token ratio.
type HeuristicEstimator struct {
	charsPerToken int
}

// NewHeuristicEstimator creates a HeuristicEstimator with the given
// ratio, substituting the default for non-positive values.
func NewHeuristicEstimator(charsPerToken int) *HeuristicEstimator {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	return &HeuristicEstimator{charsPerToken: charsPerToken}
}

// Estimate returns len(text)/ratio, with a minimum of 1 for non-empty
// text.
func (e *HeuristicEstimator) Estimate(text string) int {
	if len(text) == 0 {
		return 0
	}
	estimate := len(text) / e.charsPerToken
	if estimate == 0 {
		estimate = 1
	}
	return estimate
}

// TiktokenEstimator counts tokens exactly using a BPE encoding. More
// accurate than the heuristics, at the cost of loading the encoding
// tables.
type TiktokenEstimator struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenEstimator creates a TiktokenEstimator for the named
// encoding (DefaultEncoding when empty).
func NewTiktokenEstimator(encodingName string) (*TiktokenEstimator, error) {
	if encodingName == "" {
		encodingName = DefaultEncoding
	}
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load encoding %q: %w", encodingName, err)
	}
	return &TiktokenEstimator{encoding: encoding}, nil
}

// Estimate returns the exact token count of text under the configured
// encoding.
func (e *TiktokenEstimator) Estimate(text string) int {
	return len(e.encoding.Encode(text, nil, nil))
}

package tokens

import (
	"strings"
	"testing"
)

func TestBudgetEstimator(t *testing.T) {
	tests := []struct {
		name          string
		maxChunkSize  int
		charsPerToken int
		want          int
	}{
		{name: "reference configuration", maxChunkSize: 30000, charsPerToken: 4, want: 7500},
		{name: "zero ratio uses default", maxChunkSize: 8000, charsPerToken: 0, want: 2000},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			estimator := NewBudgetEstimator(test.maxChunkSize, test.charsPerToken)
			// The budget ignores the text entirely.
			for _, text := range []string{"", "short", strings.Repeat("x", 100000)} {
				if got := estimator.Estimate(text); got != test.want {
					t.Errorf("Estimate(len %d) = %d, want %d", len(text), got, test.want)
				}
			}
		})
	}
}

func TestHeuristicEstimator(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty text", text: "", want: 0},
		{name: "short text rounds up to one", text: "ab", want: 1},
		{name: "exact multiple", text: strings.Repeat("a", 400), want: 100},
		{name: "truncating division", text: strings.Repeat("a", 403), want: 100},
	}

	estimator := NewHeuristicEstimator(4)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := estimator.Estimate(test.text); got != test.want {
				t.Errorf("Estimate(%q...) = %d, want %d", truncate(test.text), got, test.want)
			}
		})
	}
}

func truncate(s string) string {
	if len(s) > 12 {
		return s[:12]
	}
	return s
}

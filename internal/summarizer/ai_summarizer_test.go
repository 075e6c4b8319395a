package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/localrivet/docsummary/internal/summarizer/providers"
)

func TestAISummarizer_MapSummarize(t *testing.T) {
	provider := providers.NewCapturingProvider("test", "partial summary", nil)
	summ := NewAISummarizer(provider, AISummarizerConfig{})

	got, err := summ.MapSummarize(context.Background(), "chunk body text", ResolveDirective("short"))
	if err != nil {
		t.Fatalf("MapSummarize() error = %v, want nil", err)
	}
	if got != "partial summary" {
		t.Errorf("MapSummarize() = %q, want %q", got, "partial summary")
	}

	prompts := provider.CapturedPrompts()
	if len(prompts) != 1 {
		t.Fatalf("provider received %d prompts, want 1", len(prompts))
	}
	if !strings.Contains(prompts[0], "chunk body text") {
		t.Error("map prompt does not include the chunk text")
	}
	if !strings.Contains(prompts[0], ResolveDirective("short").Instruction()) {
		t.Error("map prompt does not include the length instruction")
	}
}

func TestAISummarizer_CombineSummarize(t *testing.T) {
	provider := providers.NewCapturingProvider("test", "final summary", nil)
	summ := NewAISummarizer(provider, AISummarizerConfig{})

	partials := []string{"first part", "second part", "third part"}
	got, err := summ.CombineSummarize(context.Background(), partials, ResolveDirective("medium"))
	if err != nil {
		t.Fatalf("CombineSummarize() error = %v, want nil", err)
	}
	if got != "final summary" {
		t.Errorf("CombineSummarize() = %q, want %q", got, "final summary")
	}

	prompts := provider.CapturedPrompts()
	if len(prompts) != 1 {
		t.Fatalf("provider received %d prompts, want 1", len(prompts))
	}
	// The combine prompt must preserve document order.
	prompt := prompts[0]
	first := strings.Index(prompt, "first part")
	second := strings.Index(prompt, "second part")
	third := strings.Index(prompt, "third part")
	if first < 0 || second < 0 || third < 0 {
		t.Fatal("combine prompt is missing partial summaries")
	}
	if !(first < second && second < third) {
		t.Error("combine prompt does not preserve partial summary order")
	}
}

func TestAISummarizer_ErrorsPropagate(t *testing.T) {
	providerErr := errors.New("service unavailable")
	provider := providers.NewTestProvider("test", "", providerErr)
	summ := NewAISummarizer(provider, AISummarizerConfig{})

	if _, err := summ.MapSummarize(context.Background(), "text", Directive{}); !errors.Is(err, providerErr) {
		t.Errorf("MapSummarize() error = %v, want wrapped provider error", err)
	}
	if _, err := summ.CombineSummarize(context.Background(), []string{"a"}, Directive{}); !errors.Is(err, providerErr) {
		t.Errorf("CombineSummarize() error = %v, want wrapped provider error", err)
	}
}

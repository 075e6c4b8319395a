// Package providers contains implementations of different LLM providers
// used for remote text generation.
package providers

import (
	"context"
	"time"
)

const (
	// Provider constants
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGoogle    = "google"
	ProviderXAI       = "xai"

	// DefaultTimeout bounds one HTTP round trip to a provider.
	DefaultTimeout = 120 * time.Second
)

// LLMProvider defines the interface for different LLM service providers.
type LLMProvider interface {
	// Complete sends a prompt to the provider and returns the
	// generated completion text.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)

	// Name returns the provider name
	Name() string
}

// Config holds common configuration for LLM providers
type Config struct {
	APIKey  string
	ModelID string
}

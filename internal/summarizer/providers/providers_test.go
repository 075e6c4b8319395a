package providers

import (
	"context"
	"strings"
	"testing"
)

func TestAnthropicProvider_Complete(t *testing.T) {
	server := MockServer(t, MockResponseConfig{
		StatusCode: 200,
		ResponseBody: AnthropicResponse{
			Content: []struct {
				Text string `json:"text"`
			}{{Text: "  a generated summary  "}},
		},
	})
	defer server.Close()

	provider := NewAnthropicProvider(Config{APIKey: "test-key"})
	provider.apiURL = server.URL

	got, err := provider.Complete(context.Background(), "summarize this", 256)
	if err != nil {
		t.Fatalf("Complete() error = %v, want nil", err)
	}
	if got != "a generated summary" {
		t.Errorf("Complete() = %q, want trimmed summary text", got)
	}
}

func TestAnthropicProvider_APIError(t *testing.T) {
	server := MockServer(t, MockResponseConfig{
		StatusCode:   400,
		ResponseBody: `{"error":{"type":"invalid_request_error","message":"bad request"}}`,
	})
	defer server.Close()

	provider := NewAnthropicProvider(Config{APIKey: "test-key"})
	provider.apiURL = server.URL

	_, err := provider.Complete(context.Background(), "summarize this", 256)
	if err == nil {
		t.Fatal("Complete() error = nil, want API error")
	}
	if !strings.Contains(err.Error(), "bad request") {
		t.Errorf("Complete() error = %v, want it to include the API message", err)
	}
}

func TestAnthropicProvider_MissingAPIKey(t *testing.T) {
	provider := NewAnthropicProvider(Config{})
	_, err := provider.Complete(context.Background(), "text", 10)
	if err == nil {
		t.Fatal("Complete() error = nil, want missing key error")
	}
}

func TestOpenAIProvider_Complete(t *testing.T) {
	body := `{"choices":[{"message":{"content":"short summary"}}]}`
	server := MockServer(t, MockResponseConfig{StatusCode: 200, ResponseBody: body})
	defer server.Close()

	provider := NewOpenAIProvider(Config{APIKey: "test-key", ModelID: "gpt-4o-mini"})
	provider.apiURL = server.URL

	got, err := provider.Complete(context.Background(), "summarize this", 128)
	if err != nil {
		t.Fatalf("Complete() error = %v, want nil", err)
	}
	if got != "short summary" {
		t.Errorf("Complete() = %q, want %q", got, "short summary")
	}
}

func TestOpenAIProvider_EmptyChoices(t *testing.T) {
	server := MockServer(t, MockResponseConfig{StatusCode: 200, ResponseBody: `{"choices":[]}`})
	defer server.Close()

	provider := NewOpenAIProvider(Config{APIKey: "test-key"})
	provider.apiURL = server.URL

	_, err := provider.Complete(context.Background(), "summarize this", 128)
	if err == nil {
		t.Fatal("Complete() error = nil, want empty choices error")
	}
}

func TestXAIProvider_Complete(t *testing.T) {
	body := `{"choices":[{"message":{"content":"grok summary"}}]}`
	server := MockServer(t, MockResponseConfig{StatusCode: 200, ResponseBody: body})
	defer server.Close()

	provider := NewXAIProvider(Config{APIKey: "test-key"})
	provider.apiURL = server.URL

	got, err := provider.Complete(context.Background(), "summarize this", 128)
	if err != nil {
		t.Fatalf("Complete() error = %v, want nil", err)
	}
	if got != "grok summary" {
		t.Errorf("Complete() = %q, want %q", got, "grok summary")
	}
}

func TestGoogleProvider_Complete(t *testing.T) {
	body := `{"candidates":[{"content":{"parts":[{"text":"gemini summary"}]}}]}`
	server := MockServer(t, MockResponseConfig{StatusCode: 200, ResponseBody: body})
	defer server.Close()

	provider := NewGoogleProvider(Config{APIKey: "test-key"})
	provider.apiURL = server.URL

	got, err := provider.Complete(context.Background(), "summarize this", 128)
	if err != nil {
		t.Fatalf("Complete() error = %v, want nil", err)
	}
	if got != "gemini summary" {
		t.Errorf("Complete() = %q, want %q", got, "gemini summary")
	}
}

func TestProviderFactory(t *testing.T) {
	factory := NewProviderFactory(map[string]Config{
		ProviderAnthropic: {APIKey: "key-a"},
		ProviderOpenAI:    {APIKey: ""},
	})

	provider, err := factory.GetProvider(ProviderAnthropic)
	if err != nil {
		t.Fatalf("GetProvider(anthropic) error = %v, want nil", err)
	}
	if provider.Name() != ProviderAnthropic {
		t.Errorf("provider name = %q, want %q", provider.Name(), ProviderAnthropic)
	}

	if _, err := factory.GetProvider("unknown"); err == nil {
		t.Error("GetProvider(unknown) error = nil, want error")
	}

	available := factory.Available()
	if len(available) != 1 || available[0] != ProviderAnthropic {
		t.Errorf("Available() = %v, want [anthropic]", available)
	}
}

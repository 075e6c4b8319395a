package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// MockResponseConfig holds configuration for mock API responses
type MockResponseConfig struct {
	StatusCode   int
	ResponseBody interface{}
	Headers      map[string]string
}

// MockServer creates a test server that returns the configured response
func MockServer(t *testing.T, config MockResponseConfig) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range config.Headers {
			w.Header().Set(k, v)
		}

		if _, exists := config.Headers["Content-Type"]; !exists {
			w.Header().Set("Content-Type", "application/json")
		}

		w.WriteHeader(config.StatusCode)

		if config.ResponseBody != nil {
			var respBytes []byte
			var err error

			switch body := config.ResponseBody.(type) {
			case string:
				respBytes = []byte(body)
			case []byte:
				respBytes = body
			default:
				respBytes, err = json.Marshal(body)
				if err != nil {
					t.Fatalf("Failed to marshal mock response: %v", err)
				}
			}

			if _, err := w.Write(respBytes); err != nil {
				t.Fatalf("Failed to write response body: %v", err)
			}
		}
	}))
}

// TestProvider is a simple implementation of LLMProvider for testing
type TestProvider struct {
	name         string
	returnError  error
	returnString string
}

// NewTestProvider creates a new TestProvider
func NewTestProvider(name string, returnString string, returnError error) *TestProvider {
	return &TestProvider{
		name:         name,
		returnString: returnString,
		returnError:  returnError,
	}
}

// Name returns the provider name
func (p *TestProvider) Name() string {
	return p.name
}

// Complete returns the configured string or error
func (p *TestProvider) Complete(_ context.Context, _ string, _ int) (string, error) {
	return p.returnString, p.returnError
}

// CapturingProvider is a provider that captures the inputs for testing
type CapturingProvider struct {
	name            string
	returnError     error
	returnString    string
	capturedPrompts []string
	capturedMax     int
}

// NewCapturingProvider creates a new CapturingProvider
func NewCapturingProvider(name, returnString string, returnError error) *CapturingProvider {
	return &CapturingProvider{
		name:         name,
		returnString: returnString,
		returnError:  returnError,
	}
}

// Name returns the provider name
func (p *CapturingProvider) Name() string {
	return p.name
}

// Complete captures inputs and returns the configured response
func (p *CapturingProvider) Complete(_ context.Context, prompt string, maxTokens int) (string, error) {
	p.capturedPrompts = append(p.capturedPrompts, prompt)
	p.capturedMax = maxTokens
	return p.returnString, p.returnError
}

// CapturedPrompts returns the prompts passed to Complete, in order
func (p *CapturingProvider) CapturedPrompts() []string {
	return p.capturedPrompts
}

// CapturedMaxTokens returns the maxTokens of the most recent call
func (p *CapturingProvider) CapturedMaxTokens() int {
	return p.capturedMax
}

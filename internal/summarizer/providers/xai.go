package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	xaiAPIURL = "https://api.x.ai/v1/chat/completions"
)

// XAIProvider implements the LLMProvider interface for X.AI's Grok
type XAIProvider struct {
	Config
	httpClient *http.Client
	apiURL     string
}

// XAIMessage represents a message in X.AI's chat format (OpenAI compatible)
type XAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// XAIRequest represents a request to X.AI's API (OpenAI compatible)
type XAIRequest struct {
	Model     string       `json:"model"`
	Messages  []XAIMessage `json:"messages"`
	MaxTokens int          `json:"max_tokens"`
}

// XAIResponse represents a response from X.AI's API (OpenAI compatible)
type XAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewXAIProvider creates a new instance of the X.AI provider
func NewXAIProvider(config Config) *XAIProvider {
	return &XAIProvider{
		Config: config,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		apiURL: xaiAPIURL,
	}
}

// Name returns the provider name
func (p *XAIProvider) Name() string {
	return ProviderXAI
}

// Complete implements the LLMProvider interface for X.AI
func (p *XAIProvider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if p.APIKey == "" {
		return "", fmt.Errorf("X.AI API key not provided")
	}

	// Default to Grok 2 if no model specified
	model := p.ModelID
	if model == "" {
		model = "grok-2-latest"
	}

	reqBody := XAIRequest{
		Model: model,
		Messages: []XAIMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: maxTokens,
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %v", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.apiURL,
		strings.NewReader(string(reqJSON)),
	)
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request to X.AI API: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %v", err)
	}

	var xaiResp XAIResponse
	if err := json.Unmarshal(respBody, &xaiResp); err != nil {
		return "", fmt.Errorf("error parsing response: %v", err)
	}

	if xaiResp.Error != nil {
		return "", fmt.Errorf("X.AI API error: %s (%s)",
			xaiResp.Error.Message, xaiResp.Error.Type)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("X.AI API returned status %d", resp.StatusCode)
	}

	if len(xaiResp.Choices) == 0 {
		return "", fmt.Errorf("X.AI API returned no choices")
	}

	return strings.TrimSpace(xaiResp.Choices[0].Message.Content), nil
}

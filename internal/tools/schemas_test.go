package tools

import (
	"encoding/json"
	"testing"
)

func TestSummarizeTextRequestMarshaling(t *testing.T) {
	req := SummarizeTextRequest{
		Text:   "A long document that needs summarizing",
		Length: "short",
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Failed to marshal SummarizeTextRequest: %v", err)
	}

	var jsonMap map[string]interface{}
	if err := json.Unmarshal(data, &jsonMap); err != nil {
		t.Fatalf("Failed to unmarshal JSON into map: %v", err)
	}

	if text, ok := jsonMap["text"].(string); !ok || text != req.Text {
		t.Errorf("Expected text='%s', got '%v'", req.Text, jsonMap["text"])
	}
	if length, ok := jsonMap["length"].(string); !ok || length != req.Length {
		t.Errorf("Expected length='%s', got '%v'", req.Length, jsonMap["length"])
	}

	var unmarshaledReq SummarizeTextRequest
	if err := json.Unmarshal(data, &unmarshaledReq); err != nil {
		t.Fatalf("Failed to unmarshal SummarizeTextRequest: %v", err)
	}
	if unmarshaledReq != req {
		t.Errorf("Expected %+v, got %+v", req, unmarshaledReq)
	}
}

func TestSummarizeTextResponseOmitsEmptyError(t *testing.T) {
	resp := SummarizeTextResponse{
		Status:  "success",
		Summary: "A short summary",
		Chunks:  3,
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal SummarizeTextResponse: %v", err)
	}

	var jsonMap map[string]interface{}
	if err := json.Unmarshal(data, &jsonMap); err != nil {
		t.Fatalf("Failed to unmarshal JSON into map: %v", err)
	}

	if _, present := jsonMap["error"]; present {
		t.Error("Expected error field to be omitted when empty")
	}
	if status, ok := jsonMap["status"].(string); !ok || status != "success" {
		t.Errorf("Expected status='success', got '%v'", jsonMap["status"])
	}
	if chunks, ok := jsonMap["chunks"].(float64); !ok || int(chunks) != resp.Chunks {
		t.Errorf("Expected chunks=%d, got '%v'", resp.Chunks, jsonMap["chunks"])
	}
}

func TestCheckHealthResponseMarshaling(t *testing.T) {
	resp := CheckHealthResponse{
		Status:    "success",
		Provider:  "anthropic",
		Healthy:   true,
		LatencyMs: 42,
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal CheckHealthResponse: %v", err)
	}

	var unmarshaledResp CheckHealthResponse
	if err := json.Unmarshal(data, &unmarshaledResp); err != nil {
		t.Fatalf("Failed to unmarshal CheckHealthResponse: %v", err)
	}
	if unmarshaledResp != resp {
		t.Errorf("Expected %+v, got %+v", resp, unmarshaledResp)
	}
}

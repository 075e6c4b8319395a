// Package tools defines the MCP tool schemas for the DocSummary service.
package tools

// Tool names as registered with the MCP server.
const (
	ToolSummarizeText = "summarize_text"
	ToolSummarizeFile = "summarize_file"
	ToolCheckHealth   = "check_health"
)

// SummarizeTextRequest represents the parameters for the summarize_text tool.
type SummarizeTextRequest struct {
	Text   string `json:"text"`
	Length string `json:"length,omitempty"`
}

// SummarizeTextResponse represents the response from the summarize_text tool.
type SummarizeTextResponse struct {
	Status  string `json:"status"`
	Summary string `json:"summary,omitempty"`
	Chunks  int    `json:"chunks,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SummarizeFileRequest represents the parameters for the summarize_file tool.
type SummarizeFileRequest struct {
	Path   string `json:"path"`
	Length string `json:"length,omitempty"`
}

// SummarizeFileResponse represents the response from the summarize_file tool.
type SummarizeFileResponse struct {
	Status  string `json:"status"`
	Summary string `json:"summary,omitempty"`
	Chunks  int    `json:"chunks,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CheckHealthRequest represents the parameters for the check_health tool.
type CheckHealthRequest struct{}

// CheckHealthResponse represents the response from the check_health tool.
type CheckHealthResponse struct {
	Status    string `json:"status"`
	Provider  string `json:"provider,omitempty"`
	Healthy   bool   `json:"healthy"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

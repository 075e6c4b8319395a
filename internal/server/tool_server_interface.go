package server

// SummaryToolServer defines the interface for a server exposing
// summarization tools over MCP.
type SummaryToolServer interface {
	// Initialize initializes the server with dependencies and configurations.
	Initialize() error

	// Start starts the server on the configured transport.
	Start() error

	// Stop gracefully shuts down the server.
	Stop() error
}

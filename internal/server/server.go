// Package server provides the MCP server implementation for the DocSummary service.
package server

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/localrivet/gomcp/server"

	"github.com/localrivet/docsummary/internal/errortypes"
	"github.com/localrivet/docsummary/internal/summarizer"
	"github.com/localrivet/docsummary/internal/telemetry"
	"github.com/localrivet/docsummary/internal/tools"
)

// maxSummarizeFileBytes caps the size of files accepted by the
// summarize_file tool.
const maxSummarizeFileBytes = 10 << 20

// Runner executes a full summarization run over raw text.
type Runner interface {
	Run(ctx context.Context, rawText, lengthSpec string) (string, error)
}

// HealthChecker reports on the health of the summarization boundary.
type HealthChecker interface {
	CheckHealth(ctx context.Context) *summarizer.HealthReport
}

// MCPSummaryToolServer implements the SummaryToolServer interface
// for handling MCP tool calls related to document summarization.
type MCPSummaryToolServer struct {
	pipeline  Runner
	health    HealthChecker
	metrics   *telemetry.MetricsCollector
	mcpServer server.Server
}

// NewSummaryToolServer creates a new MCPSummaryToolServer instance.
func NewSummaryToolServer(pipeline Runner, health HealthChecker, metrics *telemetry.MetricsCollector) *MCPSummaryToolServer {
	return &MCPSummaryToolServer{
		pipeline: pipeline,
		health:   health,
		metrics:  metrics,
	}
}

// Initialize initializes the server with dependencies and configurations.
func (s *MCPSummaryToolServer) Initialize() error {
	slog.Info("Initializing MCP Summary Tool Server")

	if s.pipeline == nil || s.health == nil {
		return errortypes.ConfigError(errors.New("missing dependencies"), "server initialization failed")
	}
	if s.metrics == nil {
		s.metrics = telemetry.NewMetricsCollector()
	}

	// Create the MCP server
	srv := server.NewServer("docsummary")

	// Register summarize_text tool
	srv = srv.Tool(tools.ToolSummarizeText, "Summarize a block of text into a condensed overview",
		s.handleSummarizeText)

	// Register summarize_file tool
	srv = srv.Tool(tools.ToolSummarizeFile, "Summarize the contents of a text file on disk",
		s.handleSummarizeFile)

	// Register check_health tool
	srv = srv.Tool(tools.ToolCheckHealth, "Check the health of the summarization provider",
		s.handleCheckHealth)

	s.mcpServer = srv
	slog.Info("MCP Summary Tool Server initialized successfully", "tool_count", 3)
	return nil
}

// Start starts the MCP server on the stdio transport.
func (s *MCPSummaryToolServer) Start() error {
	if s.mcpServer == nil {
		return errortypes.ConfigError(errors.New("server not initialized"), "cannot start server")
	}

	slog.Info("Starting MCP Summary Tool Server")

	stdioServer := s.mcpServer.AsStdio()
	return stdioServer.Run()
}

// Stop gracefully shuts down the MCP server.
func (s *MCPSummaryToolServer) Stop() error {
	slog.Info("Stopping MCP Summary Tool Server")
	// The server will exit when stdin is closed
	return nil
}

// handleSummarizeText handles the summarize_text MCP tool call.
func (s *MCPSummaryToolServer) handleSummarizeText(ctx *server.Context, req tools.SummarizeTextRequest) (tools.SummarizeTextResponse, error) {
	slog.Info("Processing summarize_text request", "text_length", len(req.Text), "length", req.Length)

	response := tools.SummarizeTextResponse{
		Status: "success",
	}

	summary, err := s.pipeline.Run(context.Background(), req.Text, req.Length)
	if err != nil {
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	response.Summary = summary
	response.Chunks = int(s.metrics.GetGauge(telemetry.MetricChunks))
	return response, nil
}

// handleSummarizeFile handles the summarize_file MCP tool call.
func (s *MCPSummaryToolServer) handleSummarizeFile(ctx *server.Context, req tools.SummarizeFileRequest) (tools.SummarizeFileResponse, error) {
	slog.Info("Processing summarize_file request", "path", req.Path, "length", req.Length)

	response := tools.SummarizeFileResponse{
		Status: "success",
	}

	info, err := os.Stat(req.Path)
	if err != nil {
		err = errortypes.InputError(err, "failed to stat input file").
			WithField("path", req.Path)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}
	if info.Size() > maxSummarizeFileBytes {
		err = errortypes.InputError(errors.New("file too large"), "input file exceeds size limit").
			WithField("path", req.Path).
			WithField("size", info.Size())
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		err = errortypes.InputError(err, "failed to read input file").
			WithField("path", req.Path)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	summary, err := s.pipeline.Run(context.Background(), string(data), req.Length)
	if err != nil {
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	response.Summary = summary
	response.Chunks = int(s.metrics.GetGauge(telemetry.MetricChunks))
	return response, nil
}

// handleCheckHealth handles the check_health MCP tool call.
func (s *MCPSummaryToolServer) handleCheckHealth(ctx *server.Context, req tools.CheckHealthRequest) (tools.CheckHealthResponse, error) {
	slog.Info("Processing check_health request")

	started := time.Now()
	report := s.health.CheckHealth(context.Background())
	latency := time.Since(started)

	response := tools.CheckHealthResponse{
		Status:    "success",
		Provider:  report.Provider,
		Healthy:   report.Status == summarizer.StatusHealthy,
		LatencyMs: latency.Milliseconds(),
	}
	if report.CheckError != "" {
		response.Error = report.CheckError
	}
	return response, nil
}

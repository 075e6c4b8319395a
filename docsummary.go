package docsummary

import (
	"context"
	"log/slog"
	"os"

	"github.com/localrivet/docsummary/internal/config"
	"github.com/localrivet/docsummary/internal/errortypes"
	"github.com/localrivet/docsummary/internal/pipeline"
	"github.com/localrivet/docsummary/internal/ratelimit"
	"github.com/localrivet/docsummary/internal/server"
	"github.com/localrivet/docsummary/internal/summarizer"
	"github.com/localrivet/docsummary/internal/summarizer/providers"
	"github.com/localrivet/docsummary/internal/telemetry"
	"github.com/localrivet/docsummary/internal/tokens"
)

// Config represents the configuration for the DocSummary service.
type Config = config.Config

// apiKeyEnvVars maps provider names to the environment variables
// consulted when the config carries no API key.
var apiKeyEnvVars = map[string]string{
	providers.ProviderAnthropic: "ANTHROPIC_API_KEY",
	providers.ProviderOpenAI:    "OPENAI_API_KEY",
	providers.ProviderGoogle:    "GOOGLE_API_KEY",
	providers.ProviderXAI:       "XAI_API_KEY",
}

// Service represents the DocSummary service.
type Service struct {
	config     *config.Config
	pipeline   *pipeline.Pipeline
	summarizer *summarizer.AISummarizer
	metrics    *telemetry.MetricsCollector
	toolServer server.SummaryToolServer
	logger     *slog.Logger
}

// ServiceOptions defines the options for creating a new Service.
type ServiceOptions struct {
	Config     *Config      // Pre-filled config. If nil, ConfigPath is used.
	ConfigPath string       // Path to config file. Used if Config is nil. If both are empty, DefaultConfig() is used.
	Logger     *slog.Logger // External logger. If nil, slog.Default() is used.
}

// NewService creates a new DocSummary Service with the given options.
// If opts.Config is provided, it will be used directly.
// Otherwise, if opts.ConfigPath is provided, configuration will be loaded from that path.
// If neither is provided, DefaultConfig() will be used.
// If opts.Logger is nil, slog.Default() will be used.
func NewService(opts ServiceOptions) (*Service, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var cfg *Config
	var err error

	if opts.Config != nil {
		cfg = opts.Config
		logger.Info("Using provided Config object for service initialization")
	} else if opts.ConfigPath != "" {
		logger.Info("Loading configuration for service initialization", "path", opts.ConfigPath)
		cfg, err = config.LoadConfigWithPath(opts.ConfigPath)
		if err != nil {
			logger.Error("Failed to load configuration from path", "path", opts.ConfigPath, "error", err)
			return nil, errortypes.ConfigError(err, "Failed to load configuration from path: "+opts.ConfigPath)
		}
	} else {
		logger.Info("No Config object or ConfigPath provided, using default configuration")
		cfg = DefaultConfig()
	}

	pipe, sum, metrics, err := CreateComponents(cfg, logger)
	if err != nil {
		logger.Error("Failed to create components during service initialization", "error", err)
		return nil, err
	}

	logger.Info("Initializing summary tool server component")
	mcpServer := server.NewSummaryToolServer(pipe, sum, metrics)
	err = mcpServer.Initialize()
	if err != nil {
		logger.Error("Failed to initialize MCP summary tool server component", "error", err)
		return nil, errortypes.ConfigError(err, "Failed to initialize MCP summary tool server component")
	}

	logger.Info("DocSummary service successfully initialized")
	return &Service{
		config:     cfg,
		pipeline:   pipe,
		summarizer: sum,
		metrics:    metrics,
		toolServer: mcpServer,
		logger:     logger,
	}, nil
}

// DefaultConfig returns the default configuration for the DocSummary service.
func DefaultConfig() *Config {
	return config.NewConfig()
}

// Start starts the DocSummary service on the MCP stdio transport.
func (s *Service) Start() error {
	s.logger.Info("Starting DocSummary service")
	return s.toolServer.Start()
}

// Stop stops the DocSummary service.
func (s *Service) Stop() error {
	s.logger.Info("Stopping DocSummary service")
	err := s.toolServer.Stop()
	if err != nil {
		s.logger.Error("Error stopping tool server", "error", err)
		return err
	}

	s.logger.Info("DocSummary service stopped")
	return nil
}

// Summarize runs the full summarization pipeline over the given text.
// The length spec is interpreted the same way as the CLI --length flag:
// "short", "medium", "long", or a positive character count.
func (s *Service) Summarize(ctx context.Context, text, lengthSpec string) (string, error) {
	return s.pipeline.Run(ctx, text, lengthSpec)
}

// SummarizeFile reads the file at path and runs the summarization
// pipeline over its contents.
func (s *Service) SummarizeFile(ctx context.Context, path, lengthSpec string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errortypes.InputError(err, "failed to read input file").WithField("path", path)
	}
	return s.pipeline.Run(ctx, string(data), lengthSpec)
}

// CheckHealth reports on the health of the summarization provider.
func (s *Service) CheckHealth(ctx context.Context) *summarizer.HealthReport {
	return s.summarizer.CheckHealth(ctx)
}

// GetMetrics returns the metrics collector used by the service.
func (s *Service) GetMetrics() *telemetry.MetricsCollector {
	return s.metrics
}

// GetPipeline returns the pipeline instance used by the service.
func (s *Service) GetPipeline() *pipeline.Pipeline {
	return s.pipeline
}

// CreateComponents creates and initializes the components of the DocSummary
// service without creating a service instance. This is useful for callers
// that need direct access to the pipeline and summarizer.
func CreateComponents(cfg *Config, logger *slog.Logger) (*pipeline.Pipeline, *summarizer.AISummarizer, *telemetry.MetricsCollector, error) {
	if logger == nil {
		logger = slog.Default()
	}

	metrics := telemetry.NewMetricsCollector()

	// Resolve the LLM provider
	providerName := cfg.Summarizer.Provider
	if providerName == "" {
		providerName = config.DefaultProvider
	}
	apiKey := cfg.Summarizer.ApiKey
	if apiKey == "" {
		if envVar, ok := apiKeyEnvVars[providerName]; ok {
			apiKey = os.Getenv(envVar)
		}
	}

	logger.Info("Initializing LLM provider", "provider", providerName, "model", cfg.Summarizer.ModelID)
	factory := providers.NewProviderFactory(map[string]providers.Config{
		providerName: {
			APIKey:  apiKey,
			ModelID: cfg.Summarizer.ModelID,
		},
	})
	provider, err := factory.GetProvider(providerName)
	if err != nil {
		logger.Error("Failed to initialize LLM provider", "provider", providerName, "error", err)
		return nil, nil, nil, errortypes.ConfigError(err, "Failed to initialize LLM provider")
	}

	sum := summarizer.NewAISummarizer(provider, summarizer.AISummarizerConfig{
		Metrics: metrics,
	})

	// Initialize the token estimator
	var estimator tokens.Estimator
	switch cfg.Tokens.Estimator {
	case "budget", "":
		estimator = tokens.NewBudgetEstimator(cfg.Chunker.MaxChunkSize, cfg.Tokens.CharsPerToken)
	case "heuristic":
		estimator = tokens.NewHeuristicEstimator(cfg.Tokens.CharsPerToken)
	case "tiktoken":
		estimator, err = tokens.NewTiktokenEstimator(cfg.Tokens.Encoding)
		if err != nil {
			logger.Error("Failed to initialize tiktoken estimator", "encoding", cfg.Tokens.Encoding, "error", err)
			return nil, nil, nil, errortypes.ConfigError(err, "Failed to initialize tiktoken estimator")
		}
	default:
		logger.Warn("Unknown token estimator, using budget estimator", "estimator", cfg.Tokens.Estimator)
		estimator = tokens.NewBudgetEstimator(cfg.Chunker.MaxChunkSize, cfg.Tokens.CharsPerToken)
	}

	// Initialize the rate governor
	governor := ratelimit.NewGovernor(ratelimit.GovernorConfig{
		Window:      cfg.Window(),
		MaxRequests: cfg.RateLimit.MaxRequests,
		MaxTokens:   cfg.RateLimit.MaxTokens,
		Slack:       cfg.Slack(),
	}, logger, metrics)

	pipe, err := pipeline.New(pipeline.Options{
		Summarizer:   sum,
		Governor:     governor,
		Estimator:    estimator,
		MaxChunkSize: cfg.Chunker.MaxChunkSize,
		Overlap:      cfg.Chunker.Overlap,
		Logger:       logger,
		Metrics:      metrics,
	})
	if err != nil {
		logger.Error("Failed to construct summarization pipeline", "error", err)
		return nil, nil, nil, err
	}

	logger.Info("Components successfully initialized")
	return pipe, sum, metrics, nil
}

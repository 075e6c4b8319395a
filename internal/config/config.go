// Package config provides configuration loading for the DocSummary
// service.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/localrivet/configurator"
)

// Global configuration instance
var (
	// Global is the global configuration instance
	Global *Config
	// initOnce ensures initialization happens only once
	initOnce sync.Once
)

// InitGlobal initializes the global configuration
func InitGlobal(configPath string) (*Config, error) {
	var err error
	initOnce.Do(func() {
		Global, err = LoadConfigWithPath(configPath)
	})
	return Global, err
}

// Config represents the DocSummary configuration
type Config struct {
	// Chunker contains text-splitting configuration.
	Chunker struct {
		// MaxChunkSize is the maximum chunk size in characters.
		MaxChunkSize int `json:"max_chunk_size" env:"MAX_CHUNK_SIZE" validate:"min:1"`

		// Overlap is the number of characters shared between adjacent chunks.
		Overlap int `json:"overlap" env:"CHUNK_OVERLAP"`
	} `json:"chunker"`

	// RateLimit contains sliding-window admission control configuration.
	RateLimit struct {
		// WindowMs is the sliding-window duration in milliseconds.
		WindowMs int `json:"window_ms" env:"RATE_WINDOW_MS" validate:"min:1"`

		// MaxRequests is the request ceiling per window.
		MaxRequests int `json:"max_requests" env:"MAX_REQUESTS_PER_WINDOW" validate:"min:1"`

		// MaxTokens is the token ceiling per window.
		MaxTokens int `json:"max_tokens" env:"MAX_TOKENS_PER_WINDOW" validate:"min:1"`

		// SlackMs is the safety margin added to computed waits, in milliseconds.
		SlackMs int `json:"slack_ms" env:"RATE_LIMIT_SLACK_MS"`
	} `json:"rate_limit"`

	// Tokens contains token-estimation configuration.
	Tokens struct {
		// CharsPerToken is the characters-per-token ratio for the
		// heuristic estimators.
		CharsPerToken int `json:"chars_per_token" env:"CHARS_PER_TOKEN"`

		// Estimator selects the estimation strategy ("budget",
		// "heuristic", or "tiktoken").
		Estimator string `json:"estimator" env:"TOKEN_ESTIMATOR"`

		// Encoding is the BPE encoding name for the tiktoken estimator.
		Encoding string `json:"encoding" env:"TOKEN_ENCODING"`
	} `json:"tokens"`

	// Summarizer contains remote-provider configuration.
	Summarizer struct {
		// Provider is the name of the summarization provider to use.
		Provider string `json:"provider" env:"SUMMARIZER_PROVIDER"`

		// ModelID is the provider-specific model identifier.
		ModelID string `json:"model_id" env:"SUMMARIZER_MODEL_ID"`

		// ApiKey is the API key for the summarization provider.
		ApiKey string `json:"api_key" env:"SUMMARIZER_API_KEY"`
	} `json:"summarizer"`

	// Logging contains logging-related configuration.
	Logging struct {
		// Level is the minimum log level to display ("debug", "info", "warn", "error").
		Level string `json:"level" env:"LOG_LEVEL" validate:"required"`

		// Format is the log format to use ("text", "json").
		Format string `json:"format" env:"LOG_FORMAT"`
	} `json:"logging"`

	// Internal state (not saved to config file)
	configPath     string       `json:"-"`
	mutex          sync.RWMutex `json:"-"`
	lastModifiedAt time.Time    `json:"-"`
}

// Default configuration values
const (
	DefaultConfigFilename = ".docsummaryconfig"
	DefaultMaxChunkSize   = 30000
	DefaultOverlap        = 1000
	DefaultWindowMs       = 60000
	DefaultMaxRequests    = 200
	DefaultMaxTokens      = 150000
	DefaultSlackMs        = 1000
	DefaultCharsPerToken  = 4
	DefaultEstimator      = "budget"
	DefaultProvider       = "anthropic"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// NewConfig creates a new Config instance with default values
func NewConfig() *Config {
	config := &Config{}
	config.Chunker.MaxChunkSize = DefaultMaxChunkSize
	config.Chunker.Overlap = DefaultOverlap
	config.RateLimit.WindowMs = DefaultWindowMs
	config.RateLimit.MaxRequests = DefaultMaxRequests
	config.RateLimit.MaxTokens = DefaultMaxTokens
	config.RateLimit.SlackMs = DefaultSlackMs
	config.Tokens.CharsPerToken = DefaultCharsPerToken
	config.Tokens.Estimator = DefaultEstimator
	config.Summarizer.Provider = DefaultProvider
	config.Logging.Level = DefaultLogLevel
	config.Logging.Format = DefaultLogFormat
	return config
}

// LoadConfig loads the configuration from the default path
func LoadConfig() (*Config, error) {
	return LoadConfigWithPath(DefaultConfigFilename)
}

// LoadConfigWithPath loads the configuration from a specific path
func LoadConfigWithPath(configPath string) (*Config, error) {
	// Create a default logger for configuration loading
	stdLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Create default configuration
	cfg := NewConfig()

	// Try to find config file if path is default
	if configPath == DefaultConfigFilename {
		foundPath, err := configurator.FindConfigFile(configPath)
		if err == nil {
			configPath = foundPath
			stdLogger.Debug("Found config file at " + foundPath)
		}
	}

	// Check if the file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// File doesn't exist, return default config
		stdLogger.Info("Config file not found, using default configuration", "path", configPath)
		cfg.configPath = configPath
		cfg.lastModifiedAt = time.Now()
		return cfg, nil
	}

	stdLogger.Info("Loading configuration", "path", configPath)

	// Create configurator instance
	config := configurator.New(stdLogger).
		WithProvider(configurator.NewDefaultProvider()).
		WithProvider(configurator.NewFileProvider(configPath)).
		WithProvider(configurator.NewEnvProvider("DOCSUMMARY")).
		WithValidator(configurator.NewDefaultValidator())

	// Load configuration
	ctx := context.Background()
	if err := config.Load(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Store the config path for future operations
	cfg.configPath = configPath
	cfg.lastModifiedAt = time.Now()

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file
func (c *Config) SaveToFile(path string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Create directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Save using configurator's SaveToFile function
	if err := configurator.SaveToFile(c, path, configurator.FormatJSON); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Update internal state
	c.configPath = path
	c.lastModifiedAt = time.Now()

	return nil
}

// Save saves the configuration to the last used file path
func (c *Config) Save() error {
	if c.configPath == "" {
		c.configPath = DefaultConfigFilename
	}
	return c.SaveToFile(c.configPath)
}

// GetConfigPath returns the path of the currently loaded configuration file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// Window returns the rate window as a time.Duration
func (c *Config) Window() time.Duration {
	return time.Duration(c.RateLimit.WindowMs) * time.Millisecond
}

// Slack returns the rate slack as a time.Duration
func (c *Config) Slack() time.Duration {
	return time.Duration(c.RateLimit.SlackMs) * time.Millisecond
}

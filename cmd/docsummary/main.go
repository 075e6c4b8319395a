package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/localrivet/docsummary"
	"github.com/localrivet/docsummary/internal/config"
	"github.com/localrivet/docsummary/internal/errortypes"
)

func main() {
	// A missing .env file is fine; environment variables may be set
	// directly.
	_ = godotenv.Load()

	filePath := flag.String("file", "testdata/sample.txt", "path to the text file to summarize")
	length := flag.String("length", "medium", "summary length: short, medium, long, or a character count")
	configPath := flag.String("config", "", "path to the configuration file")
	serve := flag.Bool("serve", false, "run as an MCP server on stdio instead of summarizing a file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		errortypes.LogError(nil, err)
		os.Exit(1)
	}

	logger := setupLogging(cfg)
	slog.SetDefault(logger)

	service, err := docsummary.NewService(docsummary.ServiceOptions{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		errortypes.LogError(logger, err)
		os.Exit(1)
	}

	if *serve {
		runServer(service, logger)
		return
	}

	logger.Info("Summarizing file", "path", *filePath, "length", *length)
	summary, err := service.SummarizeFile(context.Background(), *filePath, *length)
	if err != nil {
		errortypes.LogError(logger, err)
		os.Exit(1)
	}

	fmt.Println(summary)
	fmt.Fprintln(os.Stderr, "\nUsage: docsummary --file=<path> [--length=short|medium|long|<chars>] [--config=<path>] [--serve]")
}

// loadConfig loads configuration from the given path, falling back to the
// default config file location when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadConfig()
	}
	return config.LoadConfigWithPath(path)
}

// setupLogging builds a slog logger from the logging section of the
// configuration. Logs go to stderr so stdout carries only the summary.
func setupLogging(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.Logging.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// runServer starts the MCP server and blocks until it exits or a
// termination signal arrives.
func runServer(service *docsummary.Service, logger *slog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("Received signal, shutting down", "signal", sig.String())
		if err := service.Stop(); err != nil {
			errortypes.LogError(logger, err)
		}
		os.Exit(0)
	}()

	logger.Info("Starting MCP server on stdio")
	if err := service.Start(); err != nil {
		errortypes.LogError(logger, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"lingodesk/internal/config"
	"lingodesk/internal/detect"
	"lingodesk/internal/llm"
	"lingodesk/internal/pipeline"
	"lingodesk/internal/reply"
	"lingodesk/internal/storage"
	"lingodesk/internal/translate"
	"lingodesk/internal/web"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		// Not fatal: config can come from the real environment.
		fmt.Fprintf(os.Stderr, "warning: .env file not found: %v\n", err)
	}

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("invalid log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Provider == llm.ProviderOpenAI && cfg.APIKey == "" {
		key, err := promptSecret("Enter LLM API key: ")
		if err != nil {
			logger.WithError(err).Fatal("failed to read api key")
		}
		if key == "" {
			logger.Fatal("llm api key required")
		}
		cfg.APIKey = key
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to create llm client")
	}

	recorder, err := storage.NewCSVRecorder(cfg.CSVLogPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to init interaction log")
	}

	detector := detect.New(logger)
	translator := translate.New(client, logger)
	replier := reply.New(client, logger)
	handler := pipeline.New(detector, translator, replier, recorder, logger)

	server := web.NewServer(handler, recorder, cfg.HTTPPort, logger)

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		logger.Info("shutting down")
		if err := server.Stop(); err != nil {
			logger.WithError(err).Error("shutdown failed")
		}
	}()

	if err := server.Start(); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}

// promptSecret reads a secret from the terminal without echoing it.
func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

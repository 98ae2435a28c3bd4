package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// LLM settings
	Provider string `env:"LLM_PROVIDER" envDefault:"openai"`
	APIKey   string `env:"LLM_API_KEY"`
	BaseURL  string `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	Model    string `env:"LLM_MODEL" envDefault:"llama-3.1-8b-instant"`

	YandexOAuthToken string `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Storage
	CSVLogPath string `env:"CSV_LOG_PATH" envDefault:"data/translations.csv"`

	// Web surface
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

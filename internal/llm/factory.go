package llm

import (
	"fmt"

	"lingodesk/internal/config"
)

const (
	ProviderOpenAI = "openai"
	ProviderYandex = "yandex"
)

// NewClient creates the completion client selected by cfg.Provider.
func NewClient(cfg *config.Config) (Client, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.OpenRouterReferrer, cfg.OpenRouterTitle), nil
	case ProviderYandex:
		return NewYandex(cfg.YandexOAuthToken, cfg.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}

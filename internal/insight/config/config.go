package config

import (
	"time"

	"review-insight/pkg/config"
)

// Classifier selects the sentiment classifier backend.
type Classifier struct {
	Provider string `mapstructure:"provider"` // "huggingface", "gemini", or "vader"
}

// HuggingFace holds the configuration for the Hugging Face inference API.
type HuggingFace struct {
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Analyzer holds tuning knobs for the aspect-sentiment aggregator.
type Analyzer struct {
	MaxConcurrentReviews int           `mapstructure:"max_concurrent_reviews"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl"`
}

// Telegram holds configuration for the operational notifier. An empty bot
// token disables it.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the API service.
type Config struct {
	App         config.App      `mapstructure:"app"`
	Logger      config.Logger   `mapstructure:"logger"`
	Database    config.Database `mapstructure:"database"`
	Redis       config.Redis    `mapstructure:"redis"`
	API         config.API      `mapstructure:"api"`
	Classifier  Classifier      `mapstructure:"classifier"`
	HuggingFace HuggingFace     `mapstructure:"huggingface"`
	Gemini      Gemini          `mapstructure:"gemini"`
	Analyzer    Analyzer        `mapstructure:"analyzer"`
	Telegram    Telegram        `mapstructure:"telegram"`
}

// Load loads the API service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

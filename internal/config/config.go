package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/roseyAI/mara-baraha-app2026/internal/domain"
)

const (
	defaultImagesURL = "https://cdn.jsdelivr.net/gh/ekelen/tarot-api/static/images/cards"
	customImagesURL  = "https://cdn.jsdelivr.net/gh/roseyAI/mara-baraha-app2026@main/components"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// DBPath is the SQLite file holding the persisted user state. Empty
	// selects the in-memory store (state lost on restart).
	DBPath string `env:"DB_PATH" envDefault:"data/mara.db"`

	OpenRouterAPIKey  string        `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string        `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	LLMModel          string        `env:"LLM_MODEL" envDefault:"google/gemini-2.5-flash"`
	LLMFallbackModels []string      `env:"LLM_FALLBACK_MODELS"`
	LLMTimeout        time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`

	DeckImageMode    string `env:"DECK_IMAGE_MODE" envDefault:"custom"`
	DeckImageBaseURL string `env:"DECK_IMAGE_BASE_URL"`

	// ShuffleDelay is the cosmetic pause between submitting a question and
	// the cards becoming revealable.
	ShuffleDelay time.Duration `env:"SHUFFLE_DELAY" envDefault:"2s"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.OpenRouterAPIKey == "" {
		return Config{}, fmt.Errorf("OPENROUTER_API_KEY is required")
	}

	switch domain.ImageMode(cfg.DeckImageMode) {
	case domain.ImageModeDefault, domain.ImageModeCustom:
	default:
		return Config{}, fmt.Errorf("invalid DECK_IMAGE_MODE %q", cfg.DeckImageMode)
	}

	return cfg, nil
}

// Images resolves the card artwork source, falling back to the well-known
// base URL for the configured mode.
func (c Config) Images() domain.ImageSource {
	src := domain.ImageSource{
		Mode:    domain.ImageMode(c.DeckImageMode),
		BaseURL: c.DeckImageBaseURL,
	}
	if src.BaseURL == "" {
		if src.Mode == domain.ImageModeCustom {
			src.BaseURL = customImagesURL
		} else {
			src.BaseURL = defaultImagesURL
		}
	}
	return src
}

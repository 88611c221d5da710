package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	// Optional external predictor. Leaving the key empty disables it.
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" default:"gpt-4o-mini"`

	// Path to a JSON training corpus; the built-in seed corpus is used
	// when empty.
	TrainingDataPath string `env:"TRAINING_DATA_PATH"`

	CacheTTL        time.Duration `env:"CACHE_TTL" default:"1h"`
	CacheCapacity   int           `env:"CACHE_CAPACITY" default:"10000"`
	SweepInterval   time.Duration `env:"CACHE_SWEEP_INTERVAL" default:"5m"`
	AnalysisTimeout time.Duration `env:"ANALYSIS_TIMEOUT" default:"30s"`

	BreakerThreshold int           `env:"BREAKER_FAILURE_THRESHOLD" default:"5"`
	BreakerCooldown  time.Duration `env:"BREAKER_COOLDOWN" default:"60s"`

	RateLimitPerSecond float64 `env:"RATE_LIMIT_PER_SECOND" default:"20"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" default:"40"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ExternalPredictorEnabled reports whether an LLM predictor should be wired.
func (c *Config) ExternalPredictorEnabled() bool {
	return c.OpenAIAPIKey != ""
}

func validate(cfg *Config) error {
	if cfg.CacheCapacity <= 0 {
		return fmt.Errorf("CACHE_CAPACITY must be positive, got %d", cfg.CacheCapacity)
	}
	if cfg.BreakerThreshold <= 0 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be positive, got %d", cfg.BreakerThreshold)
	}
	if cfg.CacheTTL <= 0 || cfg.SweepInterval <= 0 {
		return fmt.Errorf("cache TTL and sweep interval must be positive")
	}
	if cfg.AnalysisTimeout <= 0 {
		return fmt.Errorf("ANALYSIS_TIMEOUT must be positive, got %s", cfg.AnalysisTimeout)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	LLMProvider       string        `env:"LLM_PROVIDER" envDefault:"gemini"`
	LLMModel          string        `env:"LLM_MODEL"`
	LLMFallbackModels []string      `env:"LLM_FALLBACK_MODELS" envSeparator:","`
	LLMTimeout        time.Duration `env:"LLM_TIMEOUT" envDefault:"20s"`
	LLMTemperature    float64       `env:"LLM_TEMPERATURE" envDefault:"0.8"`

	// API_KEY is the name the original web build read the Gemini key from.
	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
	LegacyAPIKey      string `env:"API_KEY"`
	GeminiBaseURL     string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	OpenRouterAPIKey  string `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`

	Breaker BreakerConfig `envPrefix:"BREAKER_"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

type BreakerConfig struct {
	Enabled      bool          `env:"ENABLED" envDefault:"true"`
	MaxRequests  uint32        `env:"MAX_REQUESTS" envDefault:"1"`
	Interval     time.Duration `env:"INTERVAL" envDefault:"60s"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"30s"`
	FailureRatio float64       `env:"FAILURE_RATIO" envDefault:"0.6"`
	MinRequests  uint32        `env:"MIN_REQUESTS" envDefault:"3"`
}

// Load reads an optional .env file from the working directory, then the
// process environment. A missing LLM key is not an error: comments fall
// back to fixed text.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return parse(env.Options{})
}

func parse(opts env.Options) (Config, error) {
	c, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	c.LLMProvider = strings.ToLower(strings.TrimSpace(c.LLMProvider))
	switch c.LLMProvider {
	case ProviderGemini:
		if c.LLMModel == "" {
			c.LLMModel = "gemini-2.5-flash"
		}
	case ProviderOpenRouter:
		if c.LLMModel == "" {
			c.LLMModel = "qwen/qwen3-4b:free"
		}
	default:
		return Config{}, fmt.Errorf("invalid LLM_PROVIDER %q", c.LLMProvider)
	}

	c.LLMFallbackModels = compact(c.LLMFallbackModels)

	if c.LLMTemperature < 0 || c.LLMTemperature > 2 {
		return Config{}, fmt.Errorf("invalid LLM_TEMPERATURE %v", c.LLMTemperature)
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return Config{}, fmt.Errorf("invalid BREAKER_FAILURE_RATIO %v", c.Breaker.FailureRatio)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return Config{}, err
	}

	return c, nil
}

// APIKey returns the credential for the selected provider, or "" when none
// is configured.
func (c Config) APIKey() string {
	if c.LLMProvider == ProviderOpenRouter {
		return c.OpenRouterAPIKey
	}
	if c.GeminiAPIKey != "" {
		return c.GeminiAPIKey
	}
	return c.LegacyAPIKey
}

func (c Config) Level() slog.Level {
	level, _ := ParseLogLevel(c.LogLevel)
	return level
}

func compact(models []string) []string {
	var out []string
	for _, m := range models {
		m = strings.TrimSpace(m)
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

package cli

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/happycyhe/Happyfamily-Lotto/internal/adapters/llm/gemini"
	"github.com/happycyhe/Happyfamily-Lotto/internal/adapters/llm/openrouter"
	"github.com/happycyhe/Happyfamily-Lotto/internal/app"
	"github.com/happycyhe/Happyfamily-Lotto/internal/config"
	"github.com/happycyhe/Happyfamily-Lotto/internal/ports"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "happyfamily",
		Short:        "HappyFamily: lotto numbers minus the ones your family rules out",
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd(), newDrawCmd(), newShareCmd())
	return cmd
}

// newLogger writes JSON logs to w. The server logs to stdout; one-shot
// commands keep stdout for their own output and log to stderr.
func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.Level()}))
}

// newCommentService picks the LLM provider from cfg. Without a key the
// service runs on fallback text only.
func newCommentService(cfg config.Config, logger *slog.Logger) *app.CommentService {
	var gen ports.TextGenerator
	httpClient := &http.Client{Timeout: cfg.LLMTimeout}

	switch key := cfg.APIKey(); {
	case key == "":
		logger.Warn("no LLM API key configured, comments will use fallback text", "provider", cfg.LLMProvider)
	case cfg.LLMProvider == config.ProviderOpenRouter:
		gen = openrouter.NewClient(httpClient, key, cfg.OpenRouterBaseURL, cfg.LLMModel, cfg.LLMFallbackModels, cfg.LLMTemperature, logger)
	default:
		gen = gemini.NewClient(httpClient, key, cfg.GeminiBaseURL, cfg.LLMModel, cfg.LLMTemperature, logger)
	}

	return app.NewCommentService(gen, app.BreakerSettings{
		Enabled:      cfg.Breaker.Enabled,
		MaxRequests:  cfg.Breaker.MaxRequests,
		Interval:     cfg.Breaker.Interval,
		Timeout:      cfg.Breaker.Timeout,
		FailureRatio: cfg.Breaker.FailureRatio,
		MinRequests:  cfg.Breaker.MinRequests,
	}, logger)
}

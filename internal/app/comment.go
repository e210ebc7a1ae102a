package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/happycyhe/Happyfamily-Lotto/internal/domain"
	"github.com/happycyhe/Happyfamily-Lotto/internal/ports"
)

// Fixed comments used whenever the LLM cannot produce one.
const (
	FallbackNoKey = "행운이 가득하시길 바랍니다! (AI 키 확인 필요)"
	FallbackEmpty = "오늘의 기운이 아주 좋습니다! 대박 나세요!"
	FallbackError = "별들이 당신의 행운을 비추고 있습니다. 좋은 결과가 있을 거예요!"
)

// BreakerSettings configures the circuit breaker around the text generator.
type BreakerSettings struct {
	Enabled      bool
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

// CommentService turns a drawn set into a lucky comment. It never fails:
// every error path ends in one of the fallback strings.
type CommentService struct {
	gen     ports.TextGenerator
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewCommentService wires gen behind a breaker. A nil gen means no API key
// is configured and every call returns FallbackNoKey.
func NewCommentService(gen ports.TextGenerator, bs BreakerSettings, logger *slog.Logger) *CommentService {
	s := &CommentService{gen: gen, logger: logger}
	if gen == nil || !bs.Enabled {
		return s
	}

	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "comment-llm",
		MaxRequests: bs.MaxRequests,
		Interval:    bs.Interval,
		Timeout:     bs.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= bs.MinRequests &&
				float64(counts.TotalFailures)/float64(counts.Requests) >= bs.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
		// A caller walking away says nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return s
}

// Annotate returns a short comment about drawn, given the excluded numbers.
func (s *CommentService) Annotate(ctx context.Context, excluded, drawn []int) string {
	if s.gen == nil {
		s.logger.WarnContext(ctx, "LLM API key not configured, using fallback comment")
		return FallbackNoKey
	}

	text, err := s.generate(ctx, ports.CommentInput{Excluded: excluded, Drawn: drawn})
	if err != nil {
		s.logger.ErrorContext(ctx, "comment generation failed", "error", err)
		return FallbackError
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.WarnContext(ctx, "LLM returned empty comment", "error", domain.ErrEmptyLLMResponse)
		return FallbackEmpty
	}
	return text
}

func (s *CommentService) generate(ctx context.Context, in ports.CommentInput) (string, error) {
	if s.breaker == nil {
		return s.gen.Generate(ctx, in)
	}

	out, err := s.breaker.Execute(func() (any, error) {
		return s.gen.Generate(ctx, in)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

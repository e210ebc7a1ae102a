package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/happycyhe/Happyfamily-Lotto/internal/adapters/llm/prompt"
	"github.com/happycyhe/Happyfamily-Lotto/internal/domain"
	"github.com/happycyhe/Happyfamily-Lotto/internal/ports"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client implements ports.TextGenerator via the Gemini generateContent API.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	logger      *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, temperature float64, logger *slog.Logger) *Client {
	return &Client{
		httpClient:  httpClient,
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: temperature,
		logger:      logger,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) Generate(ctx context.Context, in ports.CommentInput) (string, error) {
	reqBody := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: prompt.System}}},
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt.User(in)}}},
		},
		GenerationConfig: generationConfig{Temperature: c.temperature},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: http call: %w", domain.ErrUpstreamLLM, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", domain.ErrUpstreamLLM, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: upstream status %d: %s", domain.ErrUpstreamLLM, resp.StatusCode, string(respBody))
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", domain.ErrUpstreamLLM, err)
	}

	if len(genResp.Candidates) == 0 {
		c.logger.WarnContext(ctx, "gemini returned no candidates", "model", c.model)
		return "", nil
	}

	var b strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String()), nil
}

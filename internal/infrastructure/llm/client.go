// Package llm wraps the external text/reasoning service. Every call goes
// through a Generator with its own timeout, and every response is converted
// into typed values in one place (payload.go) before callers see it.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"career-match/internal/config"

	"google.golang.org/genai"
)

var (
	ErrNotConfigured = errors.New("llm not configured")
	ErrEmptyResponse = errors.New("llm returned empty response")
)

const defaultTimeout = 30 * time.Second

// Generator produces raw text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls the Gemini API, retrying once on the fallback model when
// the primary model fails.
type GeminiClient struct {
	client        *genai.Client
	model         string
	fallbackModel string
	timeout       time.Duration
	logger        *log.Logger
}

// NewGeminiClient returns ErrNotConfigured when no API key is set so callers
// can wire a nil Generator and rely on fallbacks.
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig, logger *log.Logger) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	if logger == nil {
		logger = log.Default()
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &GeminiClient{
		client:        c,
		model:         cfg.Model,
		fallbackModel: cfg.FallbackModel,
		timeout:       timeout,
		logger:        logger,
	}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", ErrNotConfigured
	}

	text, err := g.generateWithModel(ctx, g.model, prompt)
	if err == nil {
		return text, nil
	}
	if g.fallbackModel == "" || g.fallbackModel == g.model || ctx.Err() != nil {
		return "", err
	}

	g.logger.Printf("[LLM] model=%s failed, retrying with model=%s err=%v", g.model, g.fallbackModel, err)
	return g.generateWithModel(ctx, g.fallbackModel, prompt)
}

func (g *GeminiClient) generateWithModel(ctx context.Context, model, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(callCtx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("generate content (model=%s): %w", model, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	g.logger.Printf("[LLM] model=%s status=ok latency=%s bytes=%d", model, time.Since(start), len(text))
	return text, nil
}

var _ Generator = (*GeminiClient)(nil)

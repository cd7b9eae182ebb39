package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/snapreview/internal/config"
	"github.com/sevigo/snapreview/internal/core"
)

// ModelGenerator adapts a goframe llms.Model to core.Generator.
type ModelGenerator struct {
	model  llms.Model
	logger *slog.Logger
}

// NewModelGenerator wraps model.
func NewModelGenerator(model llms.Model, logger *slog.Logger) *ModelGenerator {
	return &ModelGenerator{model: model, logger: logger}
}

// Generate runs a single-prompt completion.
func (m *ModelGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.logger.Debug("calling model", "prompt_tokens", countTokens(ctx, m.model, prompt))
	return m.model.Call(ctx, prompt)
}

// NewGenerator creates the generator for the configured provider.
func NewGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (core.Generator, error) {
	switch cfg.AI.LLMProvider {
	case config.ProviderGemini:
		logger.Info("using Gemini REST provider", "model", cfg.AI.GeneratorModel)
		if cfg.AI.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set in environment for gemini provider")
		}
		return NewGeminiClient(cfg.AI.GeminiBaseURL, cfg.AI.GeneratorModel, cfg.AI.GeminiAPIKey, nil, logger), nil

	case config.ProviderGeminiSDK:
		logger.Info("using Gemini SDK provider", "model", cfg.AI.GeneratorModel)
		if cfg.AI.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set in environment for gemini-sdk provider")
		}
		model, err := gemini.New(ctx,
			gemini.WithModel(cfg.AI.GeneratorModel),
			gemini.WithAPIKey(cfg.AI.GeminiAPIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
		return NewModelGenerator(model, logger), nil

	case config.ProviderOllama:
		logger.Info("using Ollama provider", "model", cfg.AI.GeneratorModel, "host", cfg.AI.OllamaHost)
		model, err := ollama.New(
			ollama.WithServerURL(cfg.AI.OllamaHost),
			ollama.WithHTTPClient(newOllamaHTTPClient()),
			ollama.WithModel(cfg.AI.GeneratorModel),
			ollama.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama model: %w", err)
		}
		return NewModelGenerator(model, logger), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.AI.LLMProvider)
	}
}

// newOllamaHTTPClient bounds dialing and handshakes only; generation itself
// is bounded by the inbound request's context.
func newOllamaHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxConnsPerHost:     10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

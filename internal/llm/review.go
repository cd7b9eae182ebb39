// Package llm talks to large language models: it renders prompts, calls the
// configured provider and interprets the text that comes back.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sevigo/snapreview/internal/config"
	"github.com/sevigo/snapreview/internal/core"
)

type reviewService struct {
	promptMgr *PromptManager
	generator core.Generator
	provider  ModelProvider
	catalog   *core.Catalog
	logger    *slog.Logger
}

// NewReviewService creates the core.Reviewer used by the gateway.
func NewReviewService(
	cfg *config.Config,
	promptMgr *PromptManager,
	generator core.Generator,
	catalog *core.Catalog,
	logger *slog.Logger,
) core.Reviewer {
	return &reviewService{
		promptMgr: promptMgr,
		generator: generator,
		provider:  ModelProvider(cfg.AI.LLMProvider),
		catalog:   catalog,
		logger:    logger,
	}
}

// Review validates req, renders the review prompt and asks the model once.
// A model answer without text is replaced by core.MsgNoReview.
func (s *reviewService) Review(ctx context.Context, req core.ReviewRequest) (*core.ReviewResponse, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, fmt.Errorf("%w: code is empty", core.ErrInvalidInput)
	}

	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = s.catalog.Default().ID
	} else if _, ok := s.catalog.Lookup(language); !ok {
		s.logger.Debug("reviewing code in a language outside the catalog", "language", language)
	}

	prompt, err := s.promptMgr.Render(CodeReviewPrompt, s.provider, core.ReviewPromptData{
		Language: language,
		Code:     req.Code,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render review prompt: %w", err)
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrUpstream, err)
	}

	review := strings.TrimSpace(stripMarkdownFence(text))
	if review == "" {
		s.logger.Warn("model returned no review text", "language", language)
		review = core.MsgNoReview
	}

	s.logger.Info("review generated", "language", language, "code_bytes", len(req.Code), "review_bytes", len(review))
	return &core.ReviewResponse{Review: review}, nil
}

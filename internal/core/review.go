package core

//go:generate mockgen -source=review.go -destination=../../mocks/mock_core.go -package=mocks

import (
	"context"
	"errors"
)

var (
	// ErrInvalidInput marks a request that was rejected before any model call.
	ErrInvalidInput = errors.New("invalid review request")
	// ErrUpstream marks a failure talking to the model API.
	ErrUpstream = errors.New("model API request failed")
)

// ReviewRequest is the payload accepted by the gateway's /review route.
type ReviewRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// ReviewResponse is always returned with a non-empty Review. On failure the
// field carries a human-readable message instead of a model error.
type ReviewResponse struct {
	Review string `json:"review"`
}

// ReviewPromptData is a type-safe struct for rendering code review prompts.
type ReviewPromptData struct {
	Language string
	Code     string
}

// Reviewer produces a review for a single snippet of code.
type Reviewer interface {
	// Review validates the request, asks the model for a review and maps the
	// result. Errors wrap either ErrInvalidInput or ErrUpstream.
	Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error)
}

// Generator sends one text prompt to a language model and returns its text.
// An empty string with a nil error means the model answered without text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

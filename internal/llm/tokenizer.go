package llm

import (
	"context"

	"github.com/sevigo/goframe/llms"
)

const charsPerToken = 3

// countTokens asks model for the token count of text when it can tokenize,
// and falls back to estimateTokens otherwise.
func countTokens(ctx context.Context, model any, text string) int {
	if t, ok := model.(llms.Tokenizer); ok {
		n, err := t.CountTokens(ctx, text)
		if err == nil {
			return n
		}
	}
	return estimateTokens(text)
}

// estimateTokens is a fast, character-based token estimate.
func estimateTokens(text string) int {
	return len(text) / charsPerToken
}

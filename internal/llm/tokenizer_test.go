package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, estimateTokens(""))
	assert.Equal(t, 0, estimateTokens("ab"))
	assert.Equal(t, 4, estimateTokens("abcdefghijkl"))
}

func TestCountTokens_FallsBackToEstimate(t *testing.T) {
	text := strings.Repeat("x", 300)
	assert.Equal(t, 100, countTokens(context.Background(), struct{}{}, text))
}

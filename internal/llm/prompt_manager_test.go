package llm

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/snapreview/internal/core"
)

func TestPromptManager_RenderCodeReview(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	code := "def add(a, b):\n    return a - b"
	got, err := pm.Render(CodeReviewPrompt, "gemini", core.ReviewPromptData{Language: "python", Code: code})
	require.NoError(t, err)

	assert.Contains(t, got, "You are an expert python developer.")
	assert.Contains(t, got, code, "code must be embedded verbatim")
	assert.Contains(t, got, "Looks good ✅")
	assert.Contains(t, got, "5-10 lines")
}

func TestPromptManager_ProviderSpecificTemplate(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	ollama, err := pm.Render(CodeReviewPrompt, "ollama", core.ReviewPromptData{Language: "go", Code: "x := 1"})
	require.NoError(t, err)
	def, err := pm.Render(CodeReviewPrompt, DefaultProvider, core.ReviewPromptData{Language: "go", Code: "x := 1"})
	require.NoError(t, err)

	assert.NotEqual(t, def, ollama)
	assert.Contains(t, ollama, "strict code reviewer")
}

func TestPromptManager_CodeIsNotInterpreted(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	code := `fmt.Println("{{.Secret}}") // <b>&amp;</b>`
	got, err := pm.Render(CodeReviewPrompt, DefaultProvider, core.ReviewPromptData{Language: "go", Code: code})
	require.NoError(t, err)
	assert.Contains(t, got, code)
}

func TestNewPromptManagerFromFS(t *testing.T) {
	t.Run("Invalid file name", func(t *testing.T) {
		fsys := fstest.MapFS{"p/review.prompt": {Data: []byte("x")}}
		_, err := NewPromptManagerFromFS(fsys, "p")
		assert.Error(t, err)
	})

	t.Run("Broken template", func(t *testing.T) {
		fsys := fstest.MapFS{"p/code_review_default.prompt": {Data: []byte("{{.Code")}}
		_, err := NewPromptManagerFromFS(fsys, "p")
		assert.Error(t, err)
	})

	t.Run("Empty directory", func(t *testing.T) {
		fsys := fstest.MapFS{"p/README.md": {Data: []byte("notes")}}
		_, err := NewPromptManagerFromFS(fsys, "p")
		assert.Error(t, err)
	})

	t.Run("Missing key and no default", func(t *testing.T) {
		fsys := fstest.MapFS{"p/code_review_ollama.prompt": {Data: []byte("{{.Code}}")}}
		pm, err := NewPromptManagerFromFS(fsys, "p")
		require.NoError(t, err)

		_, err = pm.Get(CodeReviewPrompt, "gemini")
		assert.Error(t, err)
		_, err = pm.Get("summary", "ollama")
		assert.Error(t, err)
	})

	t.Run("Missing field is an error", func(t *testing.T) {
		fsys := fstest.MapFS{"p/code_review_default.prompt": {Data: []byte("{{.Missing}}")}}
		pm, err := NewPromptManagerFromFS(fsys, "p")
		require.NoError(t, err)

		_, err = pm.Render(CodeReviewPrompt, DefaultProvider, map[string]string{"Code": "x"})
		assert.Error(t, err)
	})
}

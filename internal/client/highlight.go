package client

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/sevigo/snapreview/internal/core"
	"github.com/sevigo/snapreview/internal/llm"
)

// Highlight renders fix for a 256-colour terminal. The lexer comes from the
// block's own tag, then the catalog entry for language, then chroma's content
// analysis. On error the code is returned unchanged.
func Highlight(fix llm.CodeBlock, language, style string, catalog *core.Catalog) string {
	lexer := fix.Language
	if lexer == "" && catalog != nil {
		if lang, ok := catalog.Lookup(language); ok {
			lexer = lang.Lexer
		}
	}
	if style == "" {
		style = "monokai"
	}

	var sb strings.Builder
	if err := quick.Highlight(&sb, fix.Code, lexer, "terminal256", style); err != nil {
		return fix.Code
	}
	return sb.String()
}

package llm

import (
	"strings"
	"unicode"
)

const fenceDelimiter = "```"

// CodeBlock is a fenced code block found in model output.
type CodeBlock struct {
	// Language is the first word of the opening fence's info string, if any.
	Language string
	// Code is the block body without delimiters or info string.
	Code string
}

// ExtractFix returns the first fenced code block in text.
//
// The opening delimiter is the first run of three or more backticks and the
// block ends at the next run of at least the same length. When a newline
// comes before the closing run, the remainder of the opening line is the
// info string and the body starts on the following line. Otherwise the
// block is inline, and a leading word made of letters, '+', '#' or '-'
// followed by a space is taken as the language tag. Leading blank lines and
// trailing whitespace are dropped, indentation of the first code line is
// kept. Unterminated or empty blocks do not count, and later blocks are
// ignored.
func ExtractFix(text string) (CodeBlock, bool) {
	open := strings.Index(text, fenceDelimiter)
	if open < 0 {
		return CodeBlock{}, false
	}
	rest := text[open:]
	n := len(rest) - len(strings.TrimLeft(rest, "`"))
	rest = rest[n:]

	end := strings.Index(rest, strings.Repeat("`", n))
	if end < 0 {
		return CodeBlock{}, false
	}

	var block CodeBlock
	body := rest[:end]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		if fields := strings.Fields(body[:nl]); len(fields) > 0 {
			block.Language = fields[0]
		}
		body = body[nl+1:]
	} else if tag, code, ok := inlineTag(body); ok {
		block.Language = tag
		body = code
	}

	block.Code = trimBlock(body)
	if block.Code == "" {
		return CodeBlock{}, false
	}
	return block, true
}

// inlineTag splits "python print(1)" into its tag and code.
func inlineTag(s string) (tag, code string, ok bool) {
	sp := strings.IndexAny(s, " \t")
	if sp <= 0 || strings.TrimSpace(s[sp:]) == "" {
		return "", "", false
	}
	for _, r := range s[:sp] {
		if !isTagRune(r) {
			return "", "", false
		}
	}
	return s[:sp], strings.TrimLeft(s[sp:], " \t"), true
}

func isTagRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '+' || r == '#' || r == '-'
}

// trimBlock removes trailing whitespace and leading blank lines.
func trimBlock(s string) string {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	for {
		nl := strings.IndexByte(s, '\n')
		if nl < 0 || strings.TrimSpace(s[:nl]) != "" {
			return s
		}
		s = s[nl+1:]
	}
}

// stripMarkdownFence removes ```markdown ... ``` wrapping that some models
// add around their whole answer.
func stripMarkdownFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```markdown") && !strings.HasPrefix(trimmed, "```md\n") {
		return s
	}

	nl := strings.IndexByte(trimmed, '\n')
	if nl < 0 {
		return s
	}
	inner := trimmed[nl+1:]
	if !strings.HasSuffix(inner, fenceDelimiter) {
		return s
	}
	return strings.TrimSpace(strings.TrimSuffix(inner, fenceDelimiter))
}

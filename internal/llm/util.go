// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"encoding/json"
	"strings"
)

// CleanJSONBlock removes markdown code block wrappers and surrounding prose from
// JSON responses. LLMs often wrap JSON in ```json ... ``` blocks or add a
// conversational preamble even when instructed not to. Bracketed prose such
// as "[pt-BR]" ahead of the payload is skipped: the first balanced block that
// is valid JSON wins.
func CleanJSONBlock(text string) string {
	text = stripCodeFence(strings.TrimSpace(text))

	firstBalanced := ""
	for start := strings.IndexAny(text, "{["); start >= 0; {
		var extracted string
		if text[start] == '{' {
			extracted = extractJSONObject(text[start:])
		} else {
			extracted = extractJSONArray(text[start:])
		}
		if extracted != "" {
			if json.Valid([]byte(extracted)) {
				return extracted
			}
			if firstBalanced == "" {
				firstBalanced = extracted
			}
		}

		next := strings.IndexAny(text[start+1:], "{[")
		if next < 0 {
			break
		}
		start += next + 1
	}

	if firstBalanced != "" {
		// Balanced but invalid: let the caller's parser report it.
		return firstBalanced
	}
	// Unbalanced or no JSON at all: hand the text back unchanged.
	return text
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// Skip a language identifier on the first line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// extractJSONObject returns the balanced {...} prefix of text, or "".
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray returns the balanced [...] prefix of text, or "".
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

func extractBalanced(text string, open, closing byte) string {
	if text == "" || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}

package rendering

import "strings"

// EscapeMarkdown escapes characters that would turn inline text into
// Markdown syntax. Used for headings and link labels, not for bodies.
// Special characters: \ ` * _ [ ] # < > |
func EscapeMarkdown(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + 8)

	for _, r := range text {
		switch r {
		case '\\', '`', '*', '_', '[', ']', '#', '<', '>', '|':
			result.WriteByte('\\')
			result.WriteRune(r)
		case '\n', '\r':
			result.WriteByte(' ')
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

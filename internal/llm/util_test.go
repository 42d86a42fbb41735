package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"title\": \"Fone X\"}\n```",
			expected: `{"title": "Fone X"}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"title\": \"Fone X\"}\n```",
			expected: `{"title": "Fone X"}`,
		},
		{
			name:     "fence with other language id",
			input:    "```javascript\n{\"title\": \"Fone X\"}\n```",
			expected: `{"title": "Fone X"}`,
		},
		{
			name:     "already clean",
			input:    `{"title": "Fone X"}`,
			expected: `{"title": "Fone X"}`,
		},
		{
			name:     "conversational preamble",
			input:    "Claro! Aqui está o artigo:\n{\"title\": \"Fone X\", \"slug\": \"fone-x\"}",
			expected: `{"title": "Fone X", "slug": "fone-x"}`,
		},
		{
			name:     "array after preamble",
			input:    "Prompts:\n[\"studio shot\", \"lifestyle\"]",
			expected: `["studio shot", "lifestyle"]`,
		},
		{
			name:     "object before nested array",
			input:    "Result: {\"imagePrompts\": [\"studio shot\"]}",
			expected: `{"imagePrompts": ["studio shot"]}`,
		},
		{
			name:     "trailing commentary",
			input:    "{\"title\": \"Fone X\"}\n\nLet me know if you need changes.",
			expected: `{"title": "Fone X"}`,
		},
		{
			name:     "escaped quotes",
			input:    `{"excerpt": "He said \"wow\""}`,
			expected: `{"excerpt": "He said \"wow\""}`,
		},
		{
			name:     "deep nesting",
			input:    `{"a": {"b": {"c": {"d": "deep"}}}}`,
			expected: `{"a": {"b": {"c": {"d": "deep"}}}}`,
		},
		{
			name:     "bracketed prose before object",
			input:    "Here is the review [pt-BR]:\n{\"title\":\"Ok\",\"sections\":[]}",
			expected: `{"title":"Ok","sections":[]}`,
		},
		{
			name:     "braces in prose before object",
			input:    "Using {persona} and [tone] as asked:\n```\n{\"title\": \"Fone X\"}",
			expected: `{"title": "Fone X"}`,
		},
		{
			name:     "balanced but invalid kept for the parser",
			input:    "Result: {title: 'Fone X'}",
			expected: `{title: 'Fone X'}`,
		},
		{
			name:     "unbalanced returned as is",
			input:    `{"title": "Fone X"`,
			expected: `{"title": "Fone X"`,
		},
		{
			name:     "no json at all",
			input:    "sorry, I cannot help",
			expected: "sorry, I cannot help",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", `{"k": "v"}`, `{"k": "v"}`},
		{"nested", `{"outer": {"inner": "v"}}`, `{"outer": {"inner": "v"}}`},
		{"with array", `{"items": [1, 2, 3]}`, `{"items": [1, 2, 3]}`},
		{"trailing text", `{"k": "v"} done`, `{"k": "v"}`},
		{"braces inside string", `{"body": "use {curly} braces"}`, `{"body": "use {curly} braces"}`},
		{"empty", "", ""},
		{"leading prose", `text {"k": "v"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSONObject(tt.input))
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", `["a", "b"]`, `["a", "b"]`},
		{"nested", `[[1, 2], [3, 4]]`, `[[1, 2], [3, 4]]`},
		{"objects", `[{"id": 1}, {"id": 2}]`, `[{"id": 1}, {"id": 2}]`},
		{"bracket inside string", `["a]b", "c"] tail`, `["a]b", "c"]`},
		{"empty", "", ""},
		{"leading prose", `x ["a"]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSONArray(tt.input))
		})
	}
}

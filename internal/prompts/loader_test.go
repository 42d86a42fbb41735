package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_DraftingPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("drafting.json", "draft-review")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Product}}")
	assert.Contains(t, prompt, "{{.AffiliateLinks}}")
	assert.Contains(t, prompt, "imagePrompts")
}

func TestGet_SpellcheckPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("spellcheck.json", "correct-text")
	require.NoError(t, err)
	assert.Contains(t, prompt, "correctedText")
	assert.Contains(t, prompt, "{{.Text}}")
}

func TestGet_Errors(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")

	_, err = Get("drafting.json", "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
	assert.NotPanics(t, func() { assert.NotEmpty(t, MustGet("spellcheck.json", "correct-text")) })
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{"replaces all", "Write in {{.Language}} for {{.Region}}", map[string]string{"Language": "pt-BR", "Region": "Brazil"}, "Write in pt-BR for Brazil"},
		{"repeated placeholder", "{{.K}} and {{.K}}", map[string]string{"K": "x"}, "x and x"},
		{"no placeholders", "plain", map[string]string{"K": "v"}, "plain"},
		{"missing data keeps placeholder", "Hello {{.Name}}", map[string]string{}, "Hello {{.Name}}"},
		{"values are not re-expanded", "{{.Product}} / {{.Notes}}", map[string]string{"Product": "says {{.Notes}}", "Notes": "n"}, "says {{.Notes}} / n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}

func TestRender(t *testing.T) {
	ClearCache()

	out, err := Render("spellcheck.json", "correct-text", map[string]string{"Language": "pt-BR", "Text": "voce vai gostar"})
	require.NoError(t, err)
	assert.Contains(t, out, "voce vai gostar")
	assert.Contains(t, out, "copy editor for pt-BR")
	assert.NotContains(t, out, "{{.Text}}")
}

func TestCaching(t *testing.T) {
	ClearCache()

	first, err := Get("drafting.json", "draft-review")
	require.NoError(t, err)
	second, err := Get("drafting.json", "draft-review")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

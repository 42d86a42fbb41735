package rendering

import (
	"strings"
	"testing"

	"github.com/jonathan/review-writer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResponse() *types.GenerationResponse {
	return &types.GenerationResponse{
		Article: types.CorrectedArticle{
			Title:           "Review: Fone X *vale a pena?*",
			MetaDescription: `Análise "completa"`,
			Excerpt:         "Tudo sobre o Fone X.",
			Sections: []types.Section{
				{Heading: "Design", Body: "Leve e **confortável**."},
				{Heading: "Bateria", Body: "Dura 30h.<script>alert(1)</script>"},
			},
			FAQs:            []types.Section{{Heading: "Tem garantia?", Body: "Sim, 1 ano."}},
			CallToAction:    "Garanta o seu",
			AffiliateBlocks: []types.AffiliateBlock{{Platform: "amazon", Context: "Melhor preço:", Link: "https://amzn.to/x?tag=t"}},
		},
		Images: []types.GeneratedImage{
			{ImageURL: "https://img.example.com/1.png", Prompt: "studio shot"},
			{ImageURL: "https://img.example.com/2.png", Prompt: "lifestyle"},
			{ImageURL: "https://img.example.com/3.png", Prompt: "unboxing"},
		},
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"plain text", "plain text"},
		{"*bold* _it_", `\*bold\* \_it\_`},
		{"[x](y)", `\[x\](y)`},
		{"# title\nnext", `\# title next`},
		{"a|b <c>", `a\|b \<c\>`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeMarkdown(tt.in))
	}
}

func TestMarkdown(t *testing.T) {
	out := Markdown(sampleResponse())

	assert.True(t, strings.HasPrefix(out, `# Review: Fone X \*vale a pena?\*`))
	assert.Contains(t, out, "_Tudo sobre o Fone X._")
	assert.Contains(t, out, "## Design\n\nLeve e **confortável**.")
	assert.Contains(t, out, "![studio shot](https://img.example.com/1.png)")
	assert.Contains(t, out, "![unboxing](https://img.example.com/3.png)")
	assert.Contains(t, out, "> Melhor preço: [amazon](https://amzn.to/x?tag=t)")
	assert.Contains(t, out, "### Tem garantia?\n\nSim, 1 ano.")
	assert.True(t, strings.HasSuffix(out, "**Garanta o seu**\n"))

	assert.Less(t, strings.Index(out, "## Design"), strings.Index(out, "studio shot"))
	assert.Less(t, strings.Index(out, "studio shot"), strings.Index(out, "## Bateria"))
}

func TestMarkdown_EmptyArticle(t *testing.T) {
	out := Markdown(&types.GenerationResponse{Article: types.EmptyDraftArticle()})
	assert.Equal(t, "# \n\n", out)
}

func TestHTML(t *testing.T) {
	page, err := HTML(sampleResponse(), "pt-BR")
	require.NoError(t, err)

	assert.Contains(t, page, `<html lang="pt-BR">`)
	assert.Contains(t, page, "<title>Review: Fone X *vale a pena?*</title>")
	assert.Contains(t, page, `content="Análise &#34;completa&#34;"`)
	assert.Contains(t, page, "<h2>Design</h2>")
	assert.Contains(t, page, "<strong>confortável</strong>")
	assert.Contains(t, page, `<img src="https://img.example.com/1.png" alt="studio shot">`)
	assert.Contains(t, page, `<a href="https://amzn.to/x?tag=t">amazon</a>`)
	assert.NotContains(t, page, "<script>")
}

func TestMarkdownToHTML(t *testing.T) {
	out, err := MarkdownToHTML("| a | b |\n|---|---|\n| 1 | 2 |\n\n~~old~~")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<del>old</del>")
}

//go:build integration
// +build integration

package spellcheck

import (
	"context"
	"os"
	"testing"

	"github.com/jonathan/review-writer/internal/llm"
	"github.com/jonathan/review-writer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_RealAPI(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), apiKey)
	require.NoError(t, err)
	defer client.Close() //nolint:errcheck

	draft := &types.DraftArticle{
		Title: "O melhor fone bluetoth do ano",
		Sections: []types.Section{
			{Heading: "Bateria", Body: "A bateria dura ate 30 horas, o que é excelente."},
		},
		FAQs: []types.Section{
			{Heading: "Ele é a prova d'água?", Body: "Sim, possui sertificação IPX4."},
		},
	}

	result, err := NewStage(NewLLMCorrector(client)).Run(ctx, draft, "pt-BR")
	require.NoError(t, err)

	assert.Len(t, result.Article.Sections, 1)
	assert.Len(t, result.Article.FAQs, 1)
	assert.Equal(t, "Bateria", result.Article.Sections[0].Heading)
	assert.NotEmpty(t, result.Adjustments)
}

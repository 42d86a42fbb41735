//go:build integration
// +build integration

package drafting

import (
	"context"
	"os"
	"testing"

	"github.com/jonathan/review-writer/internal/llm"
	"github.com/jonathan/review-writer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_RealAPI(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), apiKey)
	require.NoError(t, err)
	defer client.Close() //nolint:errcheck

	snapshot := &types.ProductSnapshot{
		URL:         "https://www.amazon.com.br/dp/B0EXAMPLE",
		Title:       "Fone de Ouvido Bluetooth XT-200",
		Description: "Fone sem fio com cancelamento de ruído, 30 horas de bateria e estojo de carregamento USB-C.",
	}
	instr := Instructions{
		Language: "pt-BR",
		Region:   "Brasil",
		Persona:  "Especialista em tecnologia",
		Tone:     "Informal",
		MinWords: 400,
		Keywords: []string{"fone bluetooth", "cancelamento de ruído"},
		AffiliateLinks: types.AffiliateLinkMap{
			"amazon": "https://amzn.example/redirect?tag=meutag-20&url=https%3A%2F%2Fwww.amazon.com.br%2Fdp%2FB0EXAMPLE",
		},
	}

	draft, err := NewDrafter(client).Draft(ctx, instr, snapshot)
	require.NoError(t, err)
	require.NotNil(t, draft)

	assert.NotEmpty(t, draft.Title)
	assert.NotEmpty(t, draft.Sections)
	for _, s := range draft.Sections {
		assert.NotEmpty(t, s.Heading)
	}
	assert.NotEmpty(t, draft.MetaDescription)
}

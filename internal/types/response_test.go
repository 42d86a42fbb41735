package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationResponse_OmitsEmptyImages(t *testing.T) {
	resp := GenerationResponse{
		Article:             EmptyDraftArticle(),
		SpellingAdjustments: []string{},
		GeoHighlights:       []string{"Optimized for Brazil audience"},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"images"`)
	assert.Contains(t, string(data), `"spellingAdjustments":[]`)
}

func TestGenerationResponse_IncludesImages(t *testing.T) {
	resp := GenerationResponse{
		Article: EmptyDraftArticle(),
		Images:  []GeneratedImage{{ImageURL: "https://img/1.png", Prompt: "hero shot"}},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"images":[{"imageUrl":"https://img/1.png","prompt":"hero shot"}]`)
}

func TestEmptyDraftArticle_ListsAreNonNil(t *testing.T) {
	a := EmptyDraftArticle()

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sections":[]`)
	assert.Contains(t, string(data), `"faqs":[]`)
	assert.Contains(t, string(data), `"affiliateBlocks":[]`)
	assert.Contains(t, string(data), `"imagePrompts":[]`)
}

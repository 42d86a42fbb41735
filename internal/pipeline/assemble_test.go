package pipeline

import (
	"testing"

	"github.com/jonathan/review-writer/internal/spellcheck"
	"github.com/jonathan/review-writer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestGeoHighlights(t *testing.T) {
	tests := []struct {
		name     string
		notes    string
		expected []string
	}{
		{"without notes", "", []string{"Optimized for Brazil audience", "Keywords: melhor preço, review completo"}},
		{"blank notes", "   ", []string{"Optimized for Brazil audience", "Keywords: melhor preço, review completo"}},
		{"with notes", "Black Friday", []string{"Optimized for Brazil audience", "Keywords: melhor preço, review completo", "Black Friday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := brazilRequest()
			req.Notes = tt.notes
			assert.Equal(t, tt.expected, GeoHighlights(req))
		})
	}
}

func TestAssemble(t *testing.T) {
	req := brazilRequest()
	snapshot := &types.ProductSnapshot{Title: "Fone X"}
	checked := &spellcheck.Result{Article: *sampleDraft()}

	resp := Assemble(req, snapshot, checked, nil)
	assert.Equal(t, "Fone X", resp.Product.Title)
	assert.Equal(t, []string{}, resp.SpellingAdjustments)
	assert.Nil(t, resp.Images)
	assert.Equal(t, checked.Article.AffiliateBlocks, resp.Article.AffiliateBlocks)

	resp = Assemble(req, snapshot, checked, []types.GeneratedImage{})
	assert.Nil(t, resp.Images)

	imgs := []types.GeneratedImage{{ImageURL: "https://img", Prompt: "p"}}
	resp = Assemble(req, snapshot, checked, imgs)
	assert.Equal(t, imgs, resp.Images)
}

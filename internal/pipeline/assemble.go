package pipeline

import (
	"strings"

	"github.com/jonathan/review-writer/internal/spellcheck"
	"github.com/jonathan/review-writer/internal/types"
)

// GeoHighlights lists the region, the keywords in request order and the
// notes when present.
func GeoHighlights(req *types.GenerationRequest) []string {
	highlights := []string{
		"Optimized for " + req.Region + " audience",
		"Keywords: " + strings.Join(req.Keywords, ", "),
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		highlights = append(highlights, notes)
	}
	return highlights
}

// Assemble builds the response. Affiliate blocks come from the corrected
// article as drafted; images are omitted when none were produced.
func Assemble(req *types.GenerationRequest, snapshot *types.ProductSnapshot, checked *spellcheck.Result, images []types.GeneratedImage) *types.GenerationResponse {
	adjustments := checked.Adjustments
	if adjustments == nil {
		adjustments = []string{}
	}

	resp := &types.GenerationResponse{
		Product:             *snapshot,
		Article:             checked.Article,
		SpellingAdjustments: adjustments,
		GeoHighlights:       GeoHighlights(req),
	}
	if len(images) > 0 {
		resp.Images = images
	}
	return resp
}

package types

// GeneratedImage is one successfully rendered image prompt.
type GeneratedImage struct {
	ImageURL string `json:"imageUrl"`
	Prompt   string `json:"prompt"`
}

// GenerationResponse is the final output of a successful generation run.
// Images is omitted from JSON when no image was produced.
type GenerationResponse struct {
	Product             ProductSnapshot  `json:"product"`
	Article             CorrectedArticle `json:"article"`
	SpellingAdjustments []string         `json:"spellingAdjustments"`
	GeoHighlights       []string         `json:"geoHighlights"`
	Images              []GeneratedImage `json:"images,omitempty"`
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() GenerationRequest {
	return GenerationRequest{
		ProductURL: "https://example.com/p",
		Language:   "pt-BR",
		Region:     "Brazil",
		Keywords:   []string{"melhor preço", "review completo"},
		Persona:    "tech reviewer",
		Tone:       "friendly",
		MinWords:   1200,
	}
}

func TestGenerationRequest_Validate_Valid(t *testing.T) {
	req := validRequest()
	assert.NoError(t, req.Validate())
}

func TestGenerationRequest_Validate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *GenerationRequest)
		field  string
	}{
		{"missing product url", func(r *GenerationRequest) { r.ProductURL = "" }, "productUrl"},
		{"relative product url", func(r *GenerationRequest) { r.ProductURL = "not a url" }, "productUrl"},
		{"no keywords", func(r *GenerationRequest) { r.Keywords = nil }, "keywords"},
		{"empty keyword list", func(r *GenerationRequest) { r.Keywords = []string{} }, "keywords"},
		{"blank keyword", func(r *GenerationRequest) { r.Keywords = []string{"ok", "   "} }, "keywords[1]"},
		{"word count too low", func(r *GenerationRequest) { r.MinWords = 399 }, "minWords"},
		{"word count too high", func(r *GenerationRequest) { r.MinWords = 4001 }, "minWords"},
		{"blank region", func(r *GenerationRequest) { r.Region = "  " }, "region"},
		{"missing tone", func(r *GenerationRequest) { r.Tone = "" }, "tone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			require.Error(t, err)

			var verr *RequestValidationError
			require.ErrorAs(t, err, &verr)
			fields := make([]string, 0, len(verr.Errors))
			for _, fe := range verr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestGenerationRequest_Validate_WordCountBounds(t *testing.T) {
	for _, words := range []int{MinWordCount, MaxWordCount} {
		req := validRequest()
		req.MinWords = words
		assert.NoError(t, req.Validate(), "words=%d", words)
	}
}

func TestGenerationRequest_Validate_AffiliatesNotChecked(t *testing.T) {
	// Malformed affiliate base URLs are reported by the link builder, not here.
	req := validRequest()
	req.Affiliates = AffiliateConfig{"amazon": {BaseURL: "::bad", Tag: "t"}}
	assert.NoError(t, req.Validate())
}

func TestRequestValidationError_Message(t *testing.T) {
	err := &RequestValidationError{Errors: []FieldError{
		{Field: "keywords", Message: "is required"},
		{Field: "minWords", Message: "must be at least 400"},
	}}
	assert.Equal(t, "invalid generation request: keywords: is required; minWords: must be at least 400", err.Error())
}

package types

// Section is a headed block of article body text.
// FAQs share the same shape: Heading holds the question, Body the answer.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// AffiliateBlock is a drafted placement recommending an affiliate link.
type AffiliateBlock struct {
	Platform string `json:"platform"`
	Context  string `json:"context"`
	Link     string `json:"link"`
}

// DraftArticle is the normalized article produced by the drafting stage.
// Every field is always populated: text fields with "" and list fields with
// an empty (non-nil) slice when the upstream service omitted them.
type DraftArticle struct {
	Title           string           `json:"title"`
	Slug            string           `json:"slug"`
	MetaDescription string           `json:"metaDescription"`
	Excerpt         string           `json:"excerpt"`
	Sections        []Section        `json:"sections"`
	FAQs            []Section        `json:"faqs"`
	CallToAction    string           `json:"callToAction"`
	AffiliateBlocks []AffiliateBlock `json:"affiliateBlocks"`
	ImagePrompts    []string         `json:"imagePrompts"`
}

// CorrectedArticle has the DraftArticle shape with every free-text field spellchecked.
type CorrectedArticle = DraftArticle

// EmptyDraftArticle returns a DraftArticle with all list fields set to empty slices.
func EmptyDraftArticle() DraftArticle {
	return DraftArticle{
		Sections:        []Section{},
		FAQs:            []Section{},
		AffiliateBlocks: []AffiliateBlock{},
		ImagePrompts:    []string{},
	}
}

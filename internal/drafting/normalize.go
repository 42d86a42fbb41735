package drafting

import (
	"encoding/json"

	"github.com/jonathan/review-writer/internal/llm"
	"github.com/jonathan/review-writer/internal/types"
)

// ParseDraft decodes the service reply into a loosely typed object.
// Markdown fences and surrounding prose are stripped first.
func ParseDraft(responseText string) (map[string]any, error) {
	cleaned := llm.CleanJSONBlock(responseText)
	if cleaned == "" {
		return nil, &ParseError{Message: "empty draft response"}
	}

	var raw any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, &ParseError{Message: "failed to parse draft JSON", Cause: err}
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &ParseError{Message: "draft JSON is not an object"}
	}
	return obj, nil
}

// NormalizeDraft coerces a parsed payload into the strict article shape.
// Absent or mistyped text fields become "", absent or mistyped lists become
// empty slices, and list entries of the wrong shape are dropped.
func NormalizeDraft(raw map[string]any) types.DraftArticle {
	article := types.EmptyDraftArticle()

	article.Title = str(raw["title"])
	article.Slug = str(raw["slug"])
	article.MetaDescription = str(raw["metaDescription"])
	article.Excerpt = str(raw["excerpt"])
	article.CallToAction = str(raw["callToAction"])
	article.Sections = sections(raw["sections"])
	article.FAQs = sections(raw["faqs"])

	for _, item := range list(raw["affiliateBlocks"]) {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		article.AffiliateBlocks = append(article.AffiliateBlocks, types.AffiliateBlock{
			Platform: str(obj["platform"]),
			Context:  str(obj["context"]),
			Link:     str(obj["link"]),
		})
	}

	for _, item := range list(raw["imagePrompts"]) {
		if p, ok := item.(string); ok && p != "" {
			article.ImagePrompts = append(article.ImagePrompts, p)
		}
	}

	return article
}

func sections(v any) []types.Section {
	out := []types.Section{}
	for _, item := range list(v) {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, types.Section{
			Heading: str(obj["heading"]),
			Body:    str(obj["body"]),
		})
	}
	return out
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func list(v any) []any {
	l, _ := v.([]any)
	return l
}

// Package spellcheck corrects every free-text field of a drafted article
// through a correction service and collects the adjustments it reports.
package spellcheck

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/review-writer/internal/llm"
	"github.com/jonathan/review-writer/internal/prompts"
	"github.com/jonathan/review-writer/internal/schemas"
)

// Correction is the corrected text of one block and the changes made to it.
type Correction struct {
	CorrectedText string   `json:"correctedText"`
	Adjustments   []string `json:"adjustments"`
}

// Corrector corrects a single block of text in the given language.
type Corrector interface {
	Correct(ctx context.Context, text, language string) (*Correction, error)
}

// LLMCorrector asks a language model for corrections. Replies are checked
// against the spellcheck result schema before use.
type LLMCorrector struct {
	Client llm.Client
	Tier   llm.ModelTier
}

// NewLLMCorrector creates a corrector on the lite tier.
func NewLLMCorrector(client llm.Client) *LLMCorrector {
	return &LLMCorrector{Client: client, Tier: llm.TierLite}
}

// Correct implements Corrector.
func (c *LLMCorrector) Correct(ctx context.Context, text, language string) (*Correction, error) {
	if c.Client == nil {
		return nil, &CorrectionError{Message: "no LLM client configured"}
	}

	prompt, err := prompts.Render("spellcheck.json", "correct-text", map[string]string{
		"Language": language,
		"Text":     text,
	})
	if err != nil {
		return nil, &CorrectionError{Message: "failed to build prompt", Cause: err}
	}

	tier := c.Tier
	if tier == "" {
		tier = llm.TierLite
	}
	responseText, err := c.Client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return nil, &CorrectionError{Message: "correction call failed", Cause: err}
	}
	responseText = llm.CleanJSONBlock(responseText)

	if err := schemas.Validate(schemas.SpellcheckResult, responseText); err != nil {
		return nil, &CorrectionError{Message: "malformed correction reply", Cause: err}
	}

	var result Correction
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		return nil, &CorrectionError{Message: "failed to parse correction reply", Cause: err}
	}
	return &result, nil
}

// CorrectBlocks corrects blocks in order and returns a same-length slice of
// corrected text plus the adjustments of every block, in block order.
// Blank blocks are passed through without a call.
func CorrectBlocks(ctx context.Context, c Corrector, blocks []string, language string) ([]string, []string, error) {
	corrected := make([]string, len(blocks))
	adjustments := []string{}

	for i, block := range blocks {
		if strings.TrimSpace(block) == "" {
			corrected[i] = block
			continue
		}
		res, err := c.Correct(ctx, block, language)
		if err != nil {
			return nil, nil, err
		}
		corrected[i] = res.CorrectedText
		for _, adj := range res.Adjustments {
			if adj = strings.TrimSpace(adj); adj != "" {
				adjustments = append(adjustments, adj)
			}
		}
	}
	return corrected, adjustments, nil
}

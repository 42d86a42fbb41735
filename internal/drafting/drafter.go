// Package drafting asks the generative text service for a structured review
// article and normalizes its reply into a types.DraftArticle.
package drafting

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/review-writer/internal/llm"
	"github.com/jonathan/review-writer/internal/prompts"
	"github.com/jonathan/review-writer/internal/types"
)

// DefaultImagePromptCount is how many image prompts the drafter asks for.
const DefaultImagePromptCount = 3

// Instructions are the editorial parameters of a draft.
type Instructions struct {
	Language       string
	Region         string
	Persona        string
	Tone           string
	MinWords       int
	Keywords       []string
	Notes          string
	AffiliateLinks types.AffiliateLinkMap
}

// InstructionsFromRequest derives drafting instructions from a validated request.
func InstructionsFromRequest(req *types.GenerationRequest, links types.AffiliateLinkMap) Instructions {
	minWords := req.MinWords
	if minWords == 0 {
		minWords = types.MinWordCount
	}
	return Instructions{
		Language:       req.Language,
		Region:         req.Region,
		Persona:        req.Persona,
		Tone:           req.Tone,
		MinWords:       minWords,
		Keywords:       req.Keywords,
		Notes:          strings.TrimSpace(req.Notes),
		AffiliateLinks: links,
	}
}

// Drafter produces draft articles through an llm.Client.
type Drafter struct {
	Client llm.Client
	Tier   llm.ModelTier
}

// NewDrafter creates a Drafter that drafts on the advanced tier.
func NewDrafter(client llm.Client) *Drafter {
	return &Drafter{Client: client, Tier: llm.TierAdvanced}
}

// Draft sends one structured request and returns the normalized article.
// A reply that cannot be parsed as a JSON object is fatal; there is no retry.
func (d *Drafter) Draft(ctx context.Context, instr Instructions, snapshot *types.ProductSnapshot) (*types.DraftArticle, error) {
	if d.Client == nil {
		return nil, &APICallError{Message: "no LLM client configured"}
	}

	prompt, err := BuildPrompt(instr, snapshot)
	if err != nil {
		return nil, err
	}

	tier := d.Tier
	if tier == "" {
		tier = llm.TierAdvanced
	}
	responseText, err := d.Client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate draft", Cause: err}
	}

	raw, err := ParseDraft(responseText)
	if err != nil {
		return nil, err
	}

	article := NormalizeDraft(raw)
	return &article, nil
}

// BuildPrompt renders the drafting template.
func BuildPrompt(instr Instructions, snapshot *types.ProductSnapshot) (string, error) {
	productJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", &APICallError{Message: "failed to encode product snapshot", Cause: err}
	}

	links := instr.AffiliateLinks
	if links == nil {
		links = types.AffiliateLinkMap{}
	}
	linksJSON, err := json.MarshalIndent(links, "", "  ")
	if err != nil {
		return "", &APICallError{Message: "failed to encode affiliate links", Cause: err}
	}

	notes := ""
	if instr.Notes != "" {
		notes = prompts.Format(prompts.MustGet("drafting.json", "notes-line"), map[string]string{"Notes": instr.Notes})
	}

	template := prompts.MustGet("drafting.json", "draft-review")
	return prompts.Format(template, map[string]string{
		"Language":         instr.Language,
		"Region":           instr.Region,
		"Persona":          instr.Persona,
		"Tone":             instr.Tone,
		"Keywords":         strings.Join(instr.Keywords, ", "),
		"MinWords":         strconv.Itoa(instr.MinWords),
		"Notes":            notes,
		"Product":          string(productJSON),
		"AffiliateLinks":   string(linksJSON),
		"ImagePromptCount": strconv.Itoa(DefaultImagePromptCount),
	}), nil
}

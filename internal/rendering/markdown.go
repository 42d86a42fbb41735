package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/review-writer/internal/types"
)

// Markdown renders the article of a response. Images are interleaved after
// the first sections, affiliate blocks follow the body, then FAQs and the
// call-to-action.
func Markdown(resp *types.GenerationResponse) string {
	a := resp.Article
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", EscapeMarkdown(a.Title))
	if a.Excerpt != "" {
		fmt.Fprintf(&sb, "_%s_\n\n", strings.TrimSpace(a.Excerpt))
	}

	for i, sec := range a.Sections {
		if sec.Heading != "" {
			fmt.Fprintf(&sb, "## %s\n\n", EscapeMarkdown(sec.Heading))
		}
		if body := strings.TrimSpace(sec.Body); body != "" {
			sb.WriteString(body)
			sb.WriteString("\n\n")
		}
		if i < len(resp.Images) {
			img := resp.Images[i]
			fmt.Fprintf(&sb, "![%s](%s)\n\n", EscapeMarkdown(img.Prompt), img.ImageURL)
		}
	}
	// Images beyond the section count go after the body.
	for i := len(a.Sections); i < len(resp.Images); i++ {
		img := resp.Images[i]
		fmt.Fprintf(&sb, "![%s](%s)\n\n", EscapeMarkdown(img.Prompt), img.ImageURL)
	}

	for _, block := range a.AffiliateBlocks {
		if block.Link == "" {
			continue
		}
		label := block.Platform
		if label == "" {
			label = block.Link
		}
		fmt.Fprintf(&sb, "> %s [%s](%s)\n\n", strings.TrimSpace(block.Context), EscapeMarkdown(label), block.Link)
	}

	if len(a.FAQs) > 0 {
		sb.WriteString("## FAQ\n\n")
		for _, faq := range a.FAQs {
			fmt.Fprintf(&sb, "### %s\n\n%s\n\n", EscapeMarkdown(faq.Heading), strings.TrimSpace(faq.Body))
		}
	}

	if cta := strings.TrimSpace(a.CallToAction); cta != "" {
		fmt.Fprintf(&sb, "**%s**\n", cta)
	}

	return sb.String()
}

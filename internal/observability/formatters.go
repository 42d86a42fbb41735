// Package observability provides formatted output for verbose CLI mode and
// the Prometheus metrics of the generation pipeline.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/review-writer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		return string([]rune(s)[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// PrintProductSnapshot outputs a summary of the collected product.
func (p *Printer) PrintProductSnapshot(snapshot *types.ProductSnapshot) {
	if snapshot == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", snapshot.Title))
	if snapshot.Brand != "" {
		sb.WriteString(fmt.Sprintf("Brand:    %s\n", snapshot.Brand))
	}
	if snapshot.Price != "" {
		sb.WriteString(fmt.Sprintf("Price:    %s %s\n", snapshot.Currency, snapshot.Price))
	}
	sb.WriteString(fmt.Sprintf("Platform: %s\n", snapshot.Platform))
	sb.WriteString(fmt.Sprintf("Images:   %d\n", len(snapshot.Images)))

	if len(snapshot.Specs) > 0 {
		names := make([]string, 0, len(snapshot.Specs))
		for name := range snapshot.Specs {
			names = append(names, name)
		}
		sort.Strings(names)

		sb.WriteString("\nSpecs:\n")
		for _, name := range names[:min(len(names), maxItemsToShow)] {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", name, snapshot.Specs[name]))
		}
		if len(names) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-maxItemsToShow))
		}
	}

	p.printBox("PRODUCT SNAPSHOT", sb.String())
}

// PrintResponse outputs a summary of a finished generation.
func (p *Printer) PrintResponse(resp *types.GenerationResponse) {
	if resp == nil {
		return
	}
	a := resp.Article

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title: %s\n", a.Title))
	sb.WriteString(fmt.Sprintf("Slug:  %s\n", a.Slug))
	sb.WriteString(fmt.Sprintf("Words: %d\n", WordCount(a)))
	sb.WriteString(fmt.Sprintf("Sections: %d  FAQs: %d  Affiliate blocks: %d\n",
		len(a.Sections), len(a.FAQs), len(a.AffiliateBlocks)))
	sb.WriteString("\n")

	if len(a.Sections) > 0 {
		sb.WriteString("Outline:\n")
		for _, sec := range a.Sections[:min(len(a.Sections), maxItemsToShow)] {
			sb.WriteString(fmt.Sprintf("  • %s\n", sec.Heading))
		}
		if len(a.Sections) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(a.Sections)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Spelling adjustments: %d\n", len(resp.SpellingAdjustments)))
	sb.WriteString(fmt.Sprintf("Images: %d\n", len(resp.Images)))
	for _, h := range resp.GeoHighlights {
		sb.WriteString(fmt.Sprintf("  ◦ %s\n", h))
	}

	p.printBox("GENERATED ARTICLE", sb.String())
}

// WordCount counts the words of an article's title, sections and FAQs.
func WordCount(a types.CorrectedArticle) int {
	n := len(strings.Fields(a.Title))
	for _, s := range a.Sections {
		n += len(strings.Fields(s.Heading)) + len(strings.Fields(s.Body))
	}
	for _, f := range a.FAQs {
		n += len(strings.Fields(f.Heading)) + len(strings.Fields(f.Body))
	}
	return n
}

package spellcheck

import (
	"strings"

	"github.com/jonathan/review-writer/internal/types"
)

// JoinFAQ serializes a FAQ as "heading\nbody" so both parts are corrected together.
func JoinFAQ(faq types.Section) string {
	return faq.Heading + "\n" + faq.Body
}

// SplitFAQ splits a corrected FAQ on its first newline. When the correction
// lost the separator, the original heading is kept and the whole corrected
// text becomes the body.
func SplitFAQ(corrected string, original types.Section) types.Section {
	heading, body, found := strings.Cut(corrected, "\n")
	if !found {
		return types.Section{Heading: original.Heading, Body: corrected}
	}
	return types.Section{Heading: heading, Body: body}
}

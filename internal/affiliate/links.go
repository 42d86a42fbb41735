// Package affiliate builds per-platform affiliate tracking URLs for a product.
package affiliate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jonathan/review-writer/internal/types"
)

// Query parameter names set on every affiliate link.
const (
	TagParam    = "tag"
	TargetParam = "url"
)

// LinkError reports an affiliate base URL that could not be parsed.
type LinkError struct {
	Platform string
	BaseURL  string
	Cause    error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("invalid affiliate base URL for %s (%q): %v", e.Platform, e.BaseURL, e.Cause)
}

func (e *LinkError) Unwrap() error {
	return e.Cause
}

// BuildLinks returns a tracking URL for every platform that has both a base URL
// and a tag configured. The tag and the product URL are set as query parameters,
// replacing any existing values with the same names. Incomplete entries are skipped.
func BuildLinks(cfg types.AffiliateConfig, productURL string) (types.AffiliateLinkMap, error) {
	links := make(types.AffiliateLinkMap, len(cfg))
	for platform, target := range cfg {
		baseURL := strings.TrimSpace(target.BaseURL)
		tag := strings.TrimSpace(target.Tag)
		if baseURL == "" || tag == "" {
			continue
		}

		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, &LinkError{Platform: platform, BaseURL: baseURL, Cause: err}
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return nil, &LinkError{Platform: platform, BaseURL: baseURL, Cause: fmt.Errorf("missing scheme or host")}
		}

		query := parsed.Query()
		query.Set(TagParam, tag)
		query.Set(TargetParam, productURL)
		// Encode sorts keys, so output is stable for identical input.
		parsed.RawQuery = query.Encode()
		links[platform] = parsed.String()
	}
	return links, nil
}

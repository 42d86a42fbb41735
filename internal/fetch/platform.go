// Package fetch - platform.go detects the marketplace behind a product URL and
// returns the selectors that locate product fields on its pages.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known marketplace.
type Platform string

// Known marketplaces.
const (
	PlatformAmazon       Platform = "amazon"
	PlatformMercadoLivre Platform = "mercadolivre"
	PlatformShopee       Platform = "shopee"
	PlatformAliExpress   Platform = "aliexpress"
	PlatformMagalu       Platform = "magalu"
	PlatformUnknown      Platform = "unknown"
)

// Selectors lists CSS selectors for product fields, most specific first.
type Selectors struct {
	Title       []string
	Price       []string
	Description []string
	Images      []string
	// SpecRows select table rows (or list items) whose first cell is the spec name.
	SpecRows []string
	Noise    []string
}

var hostPatterns = []struct {
	platform Platform
	patterns []string
}{
	{PlatformAmazon, []string{"amazon.", "amzn.to", "amzn."}},
	{PlatformMercadoLivre, []string{"mercadolivre.com", "mercadolibre.com", "mercadolivre.", "meli.la"}},
	{PlatformShopee, []string{"shopee."}},
	{PlatformAliExpress, []string{"aliexpress."}},
	{PlatformMagalu, []string{"magazineluiza.com", "magalu.com"}},
}

// DetectPlatform identifies the marketplace from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	for _, hp := range hostPatterns {
		for _, p := range hp.patterns {
			if strings.Contains(host, p) {
				return hp.platform
			}
		}
	}
	return PlatformUnknown
}

// RequiresBrowser reports whether the marketplace renders product data client side.
func RequiresBrowser(platform Platform) bool {
	return platform == PlatformShopee || platform == PlatformAliExpress
}

var commonNoise = []string{
	"form",
	".cookie-consent",
	".gdpr-notice",
	".social-share",
	".share-buttons",
	"[aria-label='breadcrumb']",
	".breadcrumb",
}

// PlatformSelectors returns the field selectors for a marketplace.
func PlatformSelectors(platform Platform) Selectors {
	switch platform {
	case PlatformAmazon:
		return Selectors{
			Title:       []string{"#productTitle", "#title"},
			Price:       []string{".a-price .a-offscreen", "#priceblock_ourprice", "#corePrice_feature_div .a-offscreen"},
			Description: []string{"#feature-bullets", "#productDescription"},
			Images:      []string{"#landingImage", "#imgTagWrapperId img"},
			SpecRows:    []string{"#productDetails_techSpec_section_1 tr", "#productOverview_feature_div tr"},
			Noise:       append(commonNoise, "#nav-main", "#rhf", "#customerReviews"),
		}
	case PlatformMercadoLivre:
		return Selectors{
			Title:       []string{"h1.ui-pdp-title"},
			Price:       []string{".ui-pdp-price__second-line .andes-money-amount__fraction"},
			Description: []string{".ui-pdp-description__content"},
			Images:      []string{"figure.ui-pdp-gallery__figure img"},
			SpecRows:    []string{".ui-vpp-striped-specs__table tr", ".andes-table__row"},
			Noise:       append(commonNoise, ".ui-pdp-questions", ".ui-review-capability"),
		}
	case PlatformShopee:
		return Selectors{
			Title:       []string{"div[class*='product-briefing'] span", "h1"},
			Price:       []string{"div[class*='product-price']"},
			Description: []string{"div[class*='product-detail']"},
			Images:      []string{"div[class*='product-briefing'] img"},
			Noise:       commonNoise,
		}
	case PlatformAliExpress:
		return Selectors{
			Title:       []string{"h1[data-pl='product-title']", "h1"},
			Price:       []string{"div[class*='price--current']"},
			Description: []string{"#product-description", "div[class*='description']"},
			Images:      []string{"div[class*='slider--img'] img"},
			SpecRows:    []string{"div[class*='specification--prop']"},
			Noise:       commonNoise,
		}
	case PlatformMagalu:
		return Selectors{
			Title:       []string{"h1[data-testid='heading-product-title']", "h1"},
			Price:       []string{"p[data-testid='price-value']"},
			Description: []string{"div[data-testid='rich-content-container']"},
			Images:      []string{"img[data-testid='image-selected-thumbnail']"},
			SpecRows:    []string{"table[data-testid='product-detail-table'] tr"},
			Noise:       commonNoise,
		}
	default:
		return Selectors{
			Title:       []string{"[itemprop='name']", "h1"},
			Price:       []string{"[itemprop='price']", ".price"},
			Description: []string{"[itemprop='description']", ".product-description", "#description"},
			Images:      []string{"[itemprop='image']", ".product img"},
			SpecRows:    []string{"table.specs tr", ".specifications tr"},
			Noise:       commonNoise,
		}
	}
}

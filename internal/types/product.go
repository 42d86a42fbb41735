package types

// ProductSnapshot holds the product facts collected from a product page.
// The pipeline forwards it to drafting and returns it unchanged in the response.
type ProductSnapshot struct {
	URL         string            `json:"url"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       string            `json:"price,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	Brand       string            `json:"brand,omitempty"`
	Specs       map[string]string `json:"specs,omitempty"`
	Images      []string          `json:"images,omitempty"`
	Platform    string            `json:"platform,omitempty"`
}

// AffiliateLinkMap maps a platform key to a fully qualified tracking URL.
type AffiliateLinkMap map[string]string

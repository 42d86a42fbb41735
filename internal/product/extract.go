package product

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/jonathan/review-writer/internal/fetch"
	"github.com/jonathan/review-writer/internal/types"
)

const (
	maxImages            = 8
	maxSpecs             = 30
	maxDescriptionLength = 3000
	minReadableLength    = 100
)

// Extract builds a snapshot from page HTML. pageURL resolves relative image
// links and seeds readability. Missing fields are left empty.
func Extract(html, pageURL string, platform fetch.Platform) (*types.ProductSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	base, _ := url.Parse(pageURL)
	sel := fetch.PlatformSelectors(platform)
	ld := findJSONLDProduct(doc)

	snapshot := &types.ProductSnapshot{
		URL:      pageURL,
		Platform: string(platform),
		Specs:    map[string]string{},
		Images:   []string{},
	}

	snapshot.Title = firstNonEmpty(
		ld.Name,
		metaContent(doc, "og:title"),
		firstText(doc, sel.Title),
		firstText(doc, []string{"h1"}),
		strings.TrimSpace(doc.Find("title").First().Text()),
	)

	snapshot.Description = firstNonEmpty(
		ld.Description,
		metaContent(doc, "og:description"),
		metaContent(doc, "description"),
		firstText(doc, sel.Description),
	)
	if snapshot.Description == "" {
		snapshot.Description = readableText(html, base)
	}
	snapshot.Description = truncate(snapshot.Description, maxDescriptionLength)

	snapshot.Brand = firstNonEmpty(ld.Brand, metaContent(doc, "product:brand"))
	snapshot.Price = firstNonEmpty(ld.Price, metaContent(doc, "product:price:amount"), firstText(doc, sel.Price))
	snapshot.Currency = firstNonEmpty(ld.Currency, metaContent(doc, "product:price:currency"))

	for k, v := range ld.Specs {
		snapshot.Specs[k] = v
	}
	collectSpecRows(doc, sel.SpecRows, snapshot.Specs)

	images := append([]string{}, ld.Images...)
	images = append(images, metaContent(doc, "og:image"))
	images = append(images, imageSources(doc, sel.Images)...)
	snapshot.Images = resolveImages(images, base)

	return snapshot, nil
}

// ldProduct holds the fields read from a schema.org Product JSON-LD block.
type ldProduct struct {
	Name        string
	Description string
	Brand       string
	Price       string
	Currency    string
	Images      []string
	Specs       map[string]string
}

func findJSONLDProduct(doc *goquery.Document) ldProduct {
	var found ldProduct
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var raw any
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return true
		}
		if obj := findProductNode(raw); obj != nil {
			found = parseProductNode(obj)
			return false
		}
		return true
	})
	return found
}

// findProductNode searches arrays and @graph containers for a node typed Product.
func findProductNode(v any) map[string]any {
	switch node := v.(type) {
	case []any:
		for _, item := range node {
			if obj := findProductNode(item); obj != nil {
				return obj
			}
		}
	case map[string]any:
		if isProductType(node["@type"]) {
			return node
		}
		if graph, ok := node["@graph"]; ok {
			return findProductNode(graph)
		}
	}
	return nil
}

func isProductType(t any) bool {
	switch v := t.(type) {
	case string:
		return strings.EqualFold(v, "Product") || strings.EqualFold(v, "ProductGroup")
	case []any:
		for _, item := range v {
			if isProductType(item) {
				return true
			}
		}
	}
	return false
}

func parseProductNode(obj map[string]any) ldProduct {
	p := ldProduct{
		Name:        stringValue(obj["name"]),
		Description: stringValue(obj["description"]),
		Brand:       nameOf(obj["brand"]),
		Images:      stringList(obj["image"]),
		Specs:       map[string]string{},
	}

	offer := obj["offers"]
	if list, ok := offer.([]any); ok && len(list) > 0 {
		offer = list[0]
	}
	if o, ok := offer.(map[string]any); ok {
		p.Price = firstNonEmpty(stringValue(o["price"]), stringValue(o["lowPrice"]))
		p.Currency = stringValue(o["priceCurrency"])
	}

	if props, ok := obj["additionalProperty"].([]any); ok {
		for _, item := range props {
			prop, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name, value := stringValue(prop["name"]), stringValue(prop["value"])
			if name != "" && value != "" && len(p.Specs) < maxSpecs {
				p.Specs[name] = value
			}
		}
	}
	return p
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}

func nameOf(v any) string {
	if obj, ok := v.(map[string]any); ok {
		return stringValue(obj["name"])
	}
	return stringValue(v)
}

func stringList(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case map[string]any:
		if u := stringValue(val["url"]); u != "" {
			return []string{u}
		}
	case []any:
		var out []string
		for _, item := range val {
			out = append(out, stringList(item)...)
		}
		return out
	}
	return nil
}

func metaContent(doc *goquery.Document, name string) string {
	sel := doc.Find(fmt.Sprintf(`meta[property=%q], meta[name=%q]`, name, name)).First()
	content, _ := sel.Attr("content")
	return strings.TrimSpace(content)
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		text := fetch.CleanWhitespace(doc.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

func collectSpecRows(doc *goquery.Document, selectors []string, specs map[string]string) {
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, row *goquery.Selection) {
			if len(specs) >= maxSpecs {
				return
			}
			cells := row.Find("th, td")
			if cells.Length() < 2 {
				return
			}
			name := fetch.CleanWhitespace(cells.Eq(0).Text())
			value := fetch.CleanWhitespace(cells.Eq(1).Text())
			if name == "" || value == "" {
				return
			}
			if _, exists := specs[name]; !exists {
				specs[name] = value
			}
		})
	}
}

func imageSources(doc *goquery.Document, selectors []string) []string {
	var out []string
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, img *goquery.Selection) {
			for _, attr := range []string{"data-old-hires", "data-src", "src", "content"} {
				if v, ok := img.Attr(attr); ok && strings.TrimSpace(v) != "" {
					out = append(out, v)
					return
				}
			}
		})
	}
	return out
}

// resolveImages makes links absolute, drops data URIs and duplicates, and caps the list.
func resolveImages(candidates []string, base *url.URL) []string {
	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, maxImages)
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" || strings.HasPrefix(c, "data:") {
			continue
		}
		ref, err := url.Parse(c)
		if err != nil {
			continue
		}
		if base != nil {
			ref = base.ResolveReference(ref)
		}
		if ref.Scheme != "http" && ref.Scheme != "https" {
			continue
		}
		abs := ref.String()
		if seen[abs] {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
		if len(out) == maxImages {
			break
		}
	}
	return out
}

// readableText runs readability over the page as a last resort for descriptions.
func readableText(html string, base *url.URL) string {
	if base == nil {
		base = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(html), base)
	if err != nil {
		return ""
	}
	text := fetch.CleanWhitespace(article.TextContent)
	if len(text) < minReadableLength {
		return ""
	}
	return text
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

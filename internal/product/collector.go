// Package product collects a normalized snapshot of a product page: title,
// description, price, brand, specs and images.
package product

import (
	"context"

	"github.com/jonathan/review-writer/internal/fetch"
	"github.com/jonathan/review-writer/internal/types"
	"go.uber.org/zap"
)

// Collector fetches a product snapshot for a URL.
type Collector interface {
	Fetch(ctx context.Context, productURL string) (*types.ProductSnapshot, error)
}

// HTTPCollector fetches pages over HTTP and falls back to a headless browser
// when the storefront renders its content with JavaScript.
type HTTPCollector struct {
	Options *fetch.Options
	// Browser is optional; nil disables the headless fallback.
	Browser fetch.Renderer
	Logger  *zap.Logger
}

// NewHTTPCollector creates a collector. browser may be nil.
func NewHTTPCollector(opts *fetch.Options, browser fetch.Renderer, logger *zap.Logger) *HTTPCollector {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPCollector{Options: opts, Browser: browser, Logger: logger}
}

// Fetch downloads the page and extracts a snapshot from it.
func (c *HTTPCollector) Fetch(ctx context.Context, productURL string) (*types.ProductSnapshot, error) {
	platform := fetch.DetectPlatform(productURL)
	log := c.Logger.With(zap.String("url", productURL), zap.String("platform", string(platform)))

	html, pageURL, err := c.load(ctx, productURL, platform, log)
	if err != nil {
		return nil, &CollectionError{URL: productURL, Message: "failed to load page", Cause: err}
	}

	snapshot, err := Extract(html, pageURL, platform)
	if err != nil {
		return nil, &CollectionError{URL: productURL, Message: "failed to parse page", Cause: err}
	}
	if snapshot.Title == "" {
		return nil, &CollectionError{URL: productURL, Message: "no product title found on page"}
	}
	// Report the URL the caller asked for; redirects only inform link resolution.
	snapshot.URL = productURL

	log.Debug("collected product snapshot",
		zap.String("title", snapshot.Title),
		zap.Int("specs", len(snapshot.Specs)),
		zap.Int("images", len(snapshot.Images)))
	return snapshot, nil
}

func (c *HTTPCollector) load(ctx context.Context, productURL string, platform fetch.Platform, log *zap.Logger) (string, string, error) {
	if c.Browser != nil && fetch.RequiresBrowser(platform) {
		html, err := c.Browser.Render(ctx, productURL)
		if err == nil {
			return html, productURL, nil
		}
		log.Warn("browser render failed, trying plain HTTP", zap.Error(err))
	}

	result, err := fetch.URL(ctx, productURL, c.Options)
	if err != nil {
		return "", "", err
	}

	if c.Browser != nil {
		text, textErr := fetch.ExtractMainText(result.HTML, fetch.DefaultTextSelectors())
		if textErr == nil && fetch.ShouldUseBrowser(text) {
			log.Debug("page looks script rendered, using browser", zap.Int("text_len", len(text)))
			html, bErr := c.Browser.Render(ctx, productURL)
			if bErr == nil {
				return html, productURL, nil
			}
			if ctx.Err() != nil {
				return "", "", ctx.Err()
			}
			log.Warn("browser fallback failed, keeping HTTP content", zap.Error(bErr))
		}
	}

	pageURL := result.FinalURL
	if pageURL == "" {
		pageURL = productURL
	}
	return result.HTML, pageURL, nil
}

// Package fetch - browser.go provides headless browser rendering for script-rendered storefronts.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// MinContentLength is the minimum extracted text length to consider an HTTP fetch usable.
const MinContentLength = 200

// DefaultBrowserTimeout bounds a single headless render.
const DefaultBrowserTimeout = 45 * time.Second

// ShouldUseBrowser returns true if the extracted text is too short,
// indicating the page is likely rendered by JavaScript.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// Renderer returns rendered HTML for a URL.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// BrowserRenderer renders pages with a local Chrome/Chromium through chromedp.
type BrowserRenderer struct {
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewBrowserRenderer creates a BrowserRenderer with the default timeout.
func NewBrowserRenderer(logger *zap.Logger) *BrowserRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowserRenderer{Timeout: DefaultBrowserTimeout, Logger: logger}
}

// Render navigates to url in a headless browser and returns the rendered HTML.
func (b *BrowserRenderer) Render(ctx context.Context, url string) (string, error) {
	b.Logger.Debug("starting headless browser", zap.String("url", url))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Storefronts hydrate prices and galleries after load
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Best effort: scroll once so lazy galleries load
			return chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight / 2)`, nil).Do(ctx)
		}),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	b.Logger.Debug("rendered page", zap.String("url", url), zap.Int("bytes", len(html)))
	return html, nil
}

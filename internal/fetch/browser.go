// Package fetch - browser.go provides headless browser rendering for SPA
// listing pages.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum body length to consider a plain HTTP
// fetch successful. Shorter HTML is likely an unrendered SPA shell.
const MinContentLength = 500

// ShouldUseBrowser reports whether a fetched page is too thin to contain
// real listings and needs browser rendering.
func ShouldUseBrowser(body string) bool {
	return len(strings.TrimSpace(body)) < MinContentLength
}

// RenderPage loads a page in headless Chrome and returns the rendered
// HTML. Requires Chrome/Chromium on the system.
func RenderPage(ctx context.Context, url string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to populate the listings.
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	return html, nil
}

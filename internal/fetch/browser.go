package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/infomate/veracity/internal/model"
	playwright "github.com/playwright-community/playwright-go"
)

// Renderer produces rendered HTML for a URL.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// BrowserRenderer renders pages in headless Chromium. The browser process
// is launched once and shared; each Render gets its own page, so it is safe
// for concurrent requests.
type BrowserRenderer struct {
	pw        *playwright.Playwright
	browser   playwright.Browser
	userAgent string
	timeout   time.Duration
}

var _ Renderer = (*BrowserRenderer)(nil)

// NewBrowserRenderer starts playwright and launches the browser.
func NewBrowserRenderer(cfg model.BrowserConfig) (*BrowserRenderer, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	return &BrowserRenderer{
		pw:        pw,
		browser:   browser,
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
	}, nil
}

// Render navigates to the URL, waiting for DOMContentLoaded rather than
// full network idle: portal pages keep long-polling connections open and
// never reach idle.
func (r *BrowserRenderer) Render(ctx context.Context, url string) (string, error) {
	page, err := r.browser.NewPage(playwright.BrowserNewPageOptions{
		UserAgent: playwright.String(r.userAgent),
	})
	if err != nil {
		return "", fmt.Errorf("new page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(r.timeout.Milliseconds())),
	}); err != nil {
		return "", fmt.Errorf("goto: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	content, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("page content: %w", err)
	}
	return content, nil
}

// Close shuts down the browser and the playwright driver.
func (r *BrowserRenderer) Close() error {
	if err := r.browser.Close(); err != nil {
		_ = r.pw.Stop()
		return fmt.Errorf("close browser: %w", err)
	}
	return r.pw.Stop()
}

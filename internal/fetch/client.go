package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"

	"github.com/infomate/veracity/internal/model"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// ErrBlockedByRobots is returned when robots.txt disallows the fetch.
var ErrBlockedByRobots = errors.New("fetch disallowed by robots.txt")

// Result is the rendered HTML for one URL.
type Result struct {
	HTML     string
	FinalURL string
	Cached   bool // served from the render cache
}

// Client is the process-scoped fetch front. Only the rendered HTML is
// cached across requests; all analysis stays per-request.
type Client struct {
	renderer Renderer // nil when the browser is disabled
	fallback *Fetcher
	cache    *gocache.Cache // nil when caching is disabled
	robots   *robotsGate    // nil when robots checks are disabled
	logger   *zap.Logger
}

// NewClient builds a fetch client from config. renderer may be nil, in
// which case every fetch uses the plain HTTP path.
func NewClient(cfg *model.Config, renderer Renderer, logger *zap.Logger) *Client {
	client := &Client{
		renderer: renderer,
		fallback: NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes),
		logger:   logger,
	}
	if cfg.Cache.Enabled {
		client.cache = gocache.New(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}
	if cfg.HTTP.RespectRobots {
		client.robots = newRobotsGate(cfg.HTTP.UserAgent, cfg.Cache.TTL)
	}
	return client
}

// Fetch returns rendered HTML for the URL. Browser render failures fall
// back to the plain fetch before the whole call is failed.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	key := cacheKey(rawURL)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			html, _ := cached.(string)
			return &Result{HTML: html, FinalURL: rawURL, Cached: true}, nil
		}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if c.robots != nil && !c.robots.Allowed(ctx, parsed) {
		return nil, ErrBlockedByRobots
	}

	var html, finalURL string
	if c.renderer != nil {
		rendered, renderErr := c.renderer.Render(ctx, rawURL)
		if renderErr != nil {
			c.logger.Warn("browser render failed, using plain fetch",
				zap.String("url", rawURL),
				zap.Error(renderErr))
		} else {
			html, finalURL = rendered, rawURL
		}
	}

	if html == "" {
		fetched, fetchErr := c.fallback.Fetch(ctx, rawURL)
		if fetchErr != nil {
			return nil, fetchErr
		}
		html, finalURL = fetched.HTML, fetched.FinalURL
	}

	if c.cache != nil {
		c.cache.Set(key, html, gocache.DefaultExpiration)
	}

	return &Result{HTML: html, FinalURL: finalURL}, nil
}

func cacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return "veracity:render:v1:" + hex.EncodeToString(sum[:])
}

package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/temoto/robotstxt"
)

// robotsGate consults robots.txt before article fetches. Failures to
// retrieve or parse robots.txt fail open: scoring a page the site later
// disallows is better than refusing service on a flaky robots endpoint.
type robotsGate struct {
	httpClient *http.Client
	userAgent  string
	cache      *gocache.Cache // per-host robots data
}

func newRobotsGate(userAgent string, ttl time.Duration) *robotsGate {
	return &robotsGate{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		userAgent:  userAgent,
		cache:      gocache.New(ttl, 2*ttl),
	}
}

// Allowed reports whether the user agent may fetch the URL.
func (g *robotsGate) Allowed(ctx context.Context, u *url.URL) bool {
	group := g.groupFor(ctx, u)
	if group == nil {
		return true
	}
	return group.Test(u.Path)
}

func (g *robotsGate) groupFor(ctx context.Context, u *url.URL) *robotstxt.Group {
	host := u.Scheme + "://" + u.Host
	if cached, ok := g.cache.Get(host); ok {
		data, _ := cached.(*robotstxt.RobotsData)
		if data == nil {
			return nil
		}
		return data.FindGroup(g.userAgent)
	}

	data := g.fetch(ctx, host)
	g.cache.Set(host, data, gocache.DefaultExpiration)
	if data == nil {
		return nil
	}
	return data.FindGroup(g.userAgent)
}

func (g *robotsGate) fetch(ctx context.Context, host string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil
	}
	return data
}

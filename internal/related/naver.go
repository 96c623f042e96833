package related

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/infomate/veracity/internal/model"
)

const naverSearchURL = "https://openapi.naver.com/v1/search/news.json"

// highlightTags matches the <b> markers the Naver API wraps around query
// terms in result titles.
var highlightTags = regexp.MustCompile(`</?b>`)

// NaverProvider queries the Naver open news search API.
type NaverProvider struct {
	clientID     string
	clientSecret string
	display      int
	http         *http.Client
}

var _ Provider = (*NaverProvider)(nil)

// NewNaverProvider creates a provider bounded to display results per query.
func NewNaverProvider(cfg model.SearchConfig) *NaverProvider {
	return &NaverProvider{
		clientID:     cfg.NaverClientID,
		clientSecret: cfg.NaverClientSecret,
		display:      cfg.MaxResults,
		http:         &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *NaverProvider) Name() string { return string(model.SourceNaver) }

// Search returns candidate stubs for the query.
func (p *NaverProvider) Search(ctx context.Context, query string) ([]model.RelatedArticle, error) {
	if p.clientID == "" || p.clientSecret == "" {
		return nil, fmt.Errorf("naver credentials not configured")
	}

	endpoint := fmt.Sprintf("%s?query=%s&display=%d&sort=sim",
		naverSearchURL, url.QueryEscape(query), p.display)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", p.clientID)
	req.Header.Set("X-Naver-Client-Secret", p.clientSecret)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var out struct {
		Items []struct {
			Title        string `json:"title"`
			OriginalLink string `json:"originallink"`
			Link         string `json:"link"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	articles := make([]model.RelatedArticle, 0, len(out.Items))
	for _, item := range out.Items {
		link := item.OriginalLink
		if link == "" {
			link = item.Link
		}
		articles = append(articles, model.RelatedArticle{
			Title:  cleanTitle(item.Title),
			Link:   link,
			Press:  hostOf(link),
			Source: model.SourceNaver,
		})
	}
	return articles, nil
}

func cleanTitle(s string) string {
	s = highlightTags.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&amp;", "&")
	return strings.TrimSpace(s)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

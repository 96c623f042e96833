package related

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/infomate/veracity/internal/model"
)

const kakaoSearchURL = "https://dapi.kakao.com/v2/search/web"

// KakaoProvider queries the Kakao (Daum) web search API.
type KakaoProvider struct {
	apiKey string
	size   int
	http   *http.Client
}

var _ Provider = (*KakaoProvider)(nil)

// NewKakaoProvider creates a provider bounded to size results per query.
func NewKakaoProvider(cfg model.SearchConfig) *KakaoProvider {
	return &KakaoProvider{
		apiKey: cfg.KakaoAPIKey,
		size:   cfg.MaxResults,
		http:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *KakaoProvider) Name() string { return string(model.SourceKakao) }

// Search returns candidate stubs for the query.
func (p *KakaoProvider) Search(ctx context.Context, query string) ([]model.RelatedArticle, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("kakao API key not configured")
	}

	endpoint := fmt.Sprintf("%s?query=%s&size=%d", kakaoSearchURL, url.QueryEscape(query), p.size)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+p.apiKey)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var out struct {
		Documents []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	articles := make([]model.RelatedArticle, 0, len(out.Documents))
	for _, doc := range out.Documents {
		articles = append(articles, model.RelatedArticle{
			Title:  cleanTitle(doc.Title),
			Link:   doc.URL,
			Press:  hostOf(doc.URL),
			Source: model.SourceKakao,
		})
	}
	return articles, nil
}

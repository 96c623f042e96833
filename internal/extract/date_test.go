package extract

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestExtractDate_MetaTag(t *testing.T) {
	doc := docFrom(t, `<html><head>
<meta property="article:published_time" content="2025-08-30T11:02:00+09:00">
</head><body></body></html>`)

	iso, ok := extractDate(doc, nil)
	if !ok {
		t.Fatal("expected date")
	}
	if !strings.HasPrefix(iso, "2025-08-30T11:02:00") {
		t.Errorf("unexpected iso %q", iso)
	}
}

func TestExtractDate_DisplayTextNormalization(t *testing.T) {
	cases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "naver datestamp attribute",
			html: `<span class="media_end_head_info_datestamp_time" data-date-time="2025-08-30 11:02:00">2025.08.30. 오전 11:02</span>`,
			want: "2025-08-30T11:02:00",
		},
		{
			name: "naver display text with prefix",
			html: `<span class="num_date">입력 2025.08.30. 11:02</span>`,
			want: "2025-08-30T11:02:00",
		},
		{
			name: "daum spaced dots",
			html: `<span class="num_date">2025. 8. 30. 12:34</span>`,
			want: "2025-08-30T12:34:00",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := docFrom(t, "<html><body>"+tc.html+"</body></html>")
			iso, ok := extractDate(doc, nil)
			if !ok {
				t.Fatal("expected date")
			}
			if !strings.HasPrefix(iso, tc.want) {
				t.Errorf("got %q, want prefix %q", iso, tc.want)
			}
		})
	}
}

func TestExtractDate_URLPath(t *testing.T) {
	doc := docFrom(t, "<html><body></body></html>")

	cases := []struct {
		rawURL string
		want   string
	}{
		{"https://news.example.com/2025/08/30/article-slug", "2025-08-30"},
		{"https://news.example.com/view/20250830/5", "2025-08-30"},
		{"https://news.example.com/article/2025-8-5/economy", "2025-08-05"},
	}
	for _, tc := range cases {
		u, err := url.Parse(tc.rawURL)
		if err != nil {
			t.Fatal(err)
		}
		iso, ok := extractDate(doc, u)
		if !ok {
			t.Errorf("%s: expected date", tc.rawURL)
			continue
		}
		if iso != tc.want {
			t.Errorf("%s: got %q, want %q", tc.rawURL, iso, tc.want)
		}
	}
}

func TestExtractDate_InvalidCandidateDoesNotStopChain(t *testing.T) {
	// Meta holds garbage; the display widget downstream still wins.
	doc := docFrom(t, `<html><head>
<meta property="article:published_time" content="not a date">
</head><body>
<span class="num_date">2025.08.30 11:02</span>
</body></html>`)

	iso, ok := extractDate(doc, nil)
	if !ok {
		t.Fatal("expected date from display text")
	}
	if !strings.HasPrefix(iso, "2025-08-30T11:02:00") {
		t.Errorf("unexpected iso %q", iso)
	}
}

func TestExtractDate_NothingFound(t *testing.T) {
	doc := docFrom(t, "<html><body><p>날짜 없는 페이지</p></body></html>")
	u, _ := url.Parse("https://example.com/article/slug")

	if iso, ok := extractDate(doc, u); ok {
		t.Errorf("expected no date, got %q", iso)
	}
}

func TestNormalizeDateText(t *testing.T) {
	got := normalizeDateText("입력 2025.08.30. 오전  11:02")
	if got != "2025.08.30. 11:02" {
		t.Errorf("unexpected normalized text %q", got)
	}
}

package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// dateStrategy resolves a publish date as an ISO-8601 string.
type dateStrategy func(doc *goquery.Document, u *url.URL) (string, bool)

// dateStrategies run in order; the first successfully parsed candidate
// short-circuits the chain. An unparseable candidate does not stop it.
var dateStrategies = []dateStrategy{
	dateFromMeta,
	dateFromJSONLD,
	dateFromDisplayText,
	dateFromURLPath,
}

func extractDate(doc *goquery.Document, u *url.URL) (string, bool) {
	for _, strategy := range dateStrategies {
		if iso, ok := strategy(doc, u); ok {
			return iso, true
		}
	}
	return "", false
}

// metaDateTargets in priority order.
var metaDateTargets = []string{
	`meta[property="article:published_time"]`,
	`meta[property="og:published_time"]`,
	`meta[name="pubdate"]`,
	`meta[itemprop="datePublished"]`,
	`meta[itemprop="dateModified"]`,
	`meta[name="date"]`,
}

func dateFromMeta(doc *goquery.Document, _ *url.URL) (string, bool) {
	for _, sel := range metaDateTargets {
		content := metaContent(doc, sel)
		if content == "" {
			continue
		}
		if t, ok := parseDate(content); ok {
			return t.Format(time.RFC3339), true
		}
	}
	return "", false
}

func dateFromJSONLD(doc *goquery.Document, _ *url.URL) (string, bool) {
	var iso string
	forEachJSONLD(doc, func(node map[string]any) bool {
		published, ok := node["datePublished"].(string)
		if !ok {
			return false
		}
		t, ok := parseDate(published)
		if !ok {
			return false
		}
		iso = t.Format(time.RFC3339)
		return true
	})
	return iso, iso != ""
}

// displayDateSelectors cover portal date widgets. When attr is set the value
// lives in an attribute, otherwise in the display text.
var displayDateSelectors = []struct {
	selector string
	attr     string
}{
	{"span.media_end_head_info_datestamp_time", "data-date-time"}, // Naver
	{"span.num_date", ""},                                         // Daum
	{"div.article_info span.date", ""},
	{"em.info_datetime", ""},
}

func dateFromDisplayText(doc *goquery.Document, _ *url.URL) (string, bool) {
	for _, target := range displayDateSelectors {
		node := doc.Find(target.selector).First()
		if node.Length() == 0 {
			continue
		}
		var raw string
		if target.attr != "" {
			raw, _ = node.Attr(target.attr)
		} else {
			raw = node.Text()
		}
		if t, ok := parseDate(normalizeDateText(raw)); ok {
			return t.Format(time.RFC3339), true
		}
	}
	return "", false
}

// dateTextJunk strips everything but digits, dashes, dots, colons and
// spaces, so "입력 2025.08.30. 오전 11:02" style widgets become parseable.
var dateTextJunk = regexp.MustCompile(`[^0-9\-.: ]`)

func normalizeDateText(s string) string {
	return strings.Join(strings.Fields(dateTextJunk.ReplaceAllString(s, "")), " ")
}

var urlDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(20\d{2})/(\d{1,2})/(\d{1,2})`),
	regexp.MustCompile(`(20\d{2})-(\d{1,2})-(\d{1,2})`),
	regexp.MustCompile(`(?:^|\D)(20\d{2})(\d{2})(\d{2})(?:\D|$)`),
}

func dateFromURLPath(_ *goquery.Document, u *url.URL) (string, bool) {
	if u == nil {
		return "", false
	}
	for _, pattern := range urlDatePatterns {
		m := pattern.FindStringSubmatch(u.Path)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
	}
	return "", false
}

// dateLayouts cover the formats seen across portal markup, from RFC3339
// meta values down to dot-separated Korean display dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006.01.02. 15:04",
	"2006.01.02",
	"2006. 1. 2. 15:04",
	"2006. 1. 2.",
	"2006. 1. 2",
	"2006/01/02",
	time.RFC1123,
	time.RFC1123Z,
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

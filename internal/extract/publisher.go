package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// publisherStrategy resolves a publisher name, or "" when not applicable.
type publisherStrategy func(doc *goquery.Document, domain string) string

// publisherStrategies run in order; first non-empty result wins. New
// portal-specific entries go before the generic ones.
var publisherStrategies = []publisherStrategy{
	publisherFromNaverLogo,
	publisherFromDaumLogo,
	publisherFromOGSiteName,
	publisherFromJSONLD,
}

func extractPublisher(doc *goquery.Document, domain string) string {
	for _, strategy := range publisherStrategies {
		if name := strategy(doc, domain); name != "" {
			return name
		}
	}
	return domain
}

func publisherFromNaverLogo(doc *goquery.Document, domain string) string {
	if domain != "n.news.naver.com" {
		return ""
	}
	alt, _ := doc.Find("a.media_end_head_top_logo img").First().Attr("alt")
	return strings.TrimSpace(alt)
}

func publisherFromDaumLogo(doc *goquery.Document, domain string) string {
	if !strings.HasSuffix(domain, "daum.net") {
		return ""
	}
	alt, _ := doc.Find("div.info_cp a.link_cp img").First().Attr("alt")
	return strings.TrimSpace(alt)
}

func publisherFromOGSiteName(doc *goquery.Document, _ string) string {
	return metaContent(doc, `meta[property="og:site_name"]`)
}

func publisherFromJSONLD(doc *goquery.Document, _ string) string {
	var found string
	forEachJSONLD(doc, func(node map[string]any) bool {
		publisher, ok := node["publisher"].(map[string]any)
		if !ok {
			return false
		}
		name, ok := publisher["name"].(string)
		if !ok || strings.TrimSpace(name) == "" {
			return false
		}
		found = strings.TrimSpace(name)
		return true
	})
	return found
}

// forEachJSONLD decodes every ld+json block in the document and visits each
// node. The visit callback returns true to stop iterating.
func forEachJSONLD(doc *goquery.Document, visit func(map[string]any) bool) {
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var raw any
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return true // skip malformed blocks
		}
		for _, node := range flattenJSONLD(raw) {
			if visit(node) {
				return false
			}
		}
		return true
	})
}

// flattenJSONLD normalizes the shapes structured data ships in: a single
// object, a top-level list, or items wrapped under an @graph key.
func flattenJSONLD(raw any) []map[string]any {
	switch v := raw.(type) {
	case []any:
		var nodes []map[string]any
		for _, item := range v {
			nodes = append(nodes, flattenJSONLD(item)...)
		}
		return nodes
	case map[string]any:
		nodes := []map[string]any{v}
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				nodes = append(nodes, flattenJSONLD(item)...)
			}
		}
		return nodes
	default:
		return nil
	}
}

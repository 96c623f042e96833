// Package extract turns rendered article HTML into structured facts.
//
// Every field is resolved by an ordered chain of strategies: portal-specific
// selectors first (unambiguous when they apply), generic markup next, lossy
// whole-page fallbacks last. The first strategy that produces a usable value
// wins; a field whose whole chain fails keeps its sentinel instead of
// raising.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/infomate/veracity/internal/model"
)

// placeholderTitles are generic portal labels that mean the title chain
// grabbed site chrome instead of the headline.
var placeholderTitles = map[string]bool{
	"뉴스": true,
	"기사": true,
}

var titleSelectors = []string{
	"h2.media_end_head_headline", // Naver
	"h3.tit_view",                // Daum
}

var bodySelectors = []string{
	"div#dic_area",     // Naver
	"div.article_view", // Daum
}

// junkSelector matches sub-elements stripped from a portal body container
// before text extraction: embedded players, promos, photo credits.
const junkSelector = "div.vod_player, div.promotion, span.end_photo_org"

// Extractor extracts article facts from HTML documents.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract converts rendered HTML and its source URL into article facts.
// It never fails: fields that cannot be resolved keep their sentinels
// (empty string, model.DateUnknown).
func (e *Extractor) Extract(htmlContent, rawURL string) model.ArticleFacts {
	facts := model.ArticleFacts{PublishDate: model.DateUnknown}

	parsed, _ := url.Parse(rawURL)
	domain := domainOf(parsed)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		facts.Publisher = domain
		return facts
	}

	facts.Publisher = extractPublisher(doc, domain)
	if iso, ok := extractDate(doc, parsed); ok {
		facts.PublishDate = iso
	}
	facts.Title = extractTitle(doc)
	facts.Body = extractBody(doc)

	return facts
}

// domainOf returns the host name with a leading "www." stripped.
func domainOf(u *url.URL) string {
	if u == nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func extractTitle(doc *goquery.Document) string {
	var title string
	for _, sel := range titleSelectors {
		if t := collapseSpace(doc.Find(sel).First().Text()); t != "" {
			title = t
			break
		}
	}
	if title == "" {
		title = collapseSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		title = metaContent(doc, `meta[property="og:title"]`)
	}

	// A placeholder means the selector landed on portal chrome; retry the
	// og:title fallback once.
	if placeholderTitles[title] {
		if og := metaContent(doc, `meta[property="og:title"]`); og != "" {
			title = og
		}
	}

	return title
}

func extractBody(doc *goquery.Document) string {
	for _, sel := range bodySelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		container.Find(junkSelector).Remove()
		if text := containerText(container); text != "" {
			return text
		}
	}

	if article := doc.Find("article").First(); article.Length() > 0 {
		if text := containerText(article); text != "" {
			return text
		}
	}

	// Last resort: every paragraph on the page. Maximizes recall at the
	// cost of pulling in navigation and caption noise.
	return joinParagraphs(doc.Find("p"))
}

// containerText prefers the container's direct child paragraphs and falls
// back to its full text when the body is not paragraph-structured.
func containerText(container *goquery.Selection) string {
	if text := joinParagraphs(container.ChildrenFiltered("p")); text != "" {
		return text
	}
	return collapseSpace(container.Text())
}

func joinParagraphs(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, p *goquery.Selection) {
		if t := collapseSpace(p.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

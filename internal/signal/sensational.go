// Package signal implements the independent sub-score providers.
//
// Every provider returns a SubScore in [0,100] with a transparent evidence
// payload; a provider failure never escapes the provider, it becomes the
// documented neutral default instead.
package signal

import (
	"strings"

	"github.com/infomate/veracity/internal/model"
)

// bodyScanLimit bounds how much of the body is scanned alongside the
// title for sensational terms.
const bodyScanLimit = 500

// sensationalTerms is the fixed clickbait vocabulary. Each match costs 10
// points, capped at a 50 point total penalty.
var sensationalTerms = []string{
	"충격", "경악", "발칵", "소름", "헉", "멘붕",
	"단독", "속보", "긴급", "초유",
	"결국", "알고보니", "폭로", "폭락", "폭등",
	"역대급", "초대박", "헐값", "반전",
	"클릭", "화제", "논란",
}

// Sensationalism detects clickbait vocabulary in the headline and lede.
type Sensationalism struct{}

// NewSensationalism creates the provider.
func NewSensationalism() *Sensationalism {
	return &Sensationalism{}
}

// Score scans title plus the first bodyScanLimit characters of the body.
// score = max(100 - 10*min(matches, 5), 50).
func (s *Sensationalism) Score(facts model.ArticleFacts) model.SubScore {
	body := facts.Body
	if runes := []rune(body); len(runes) > bodyScanLimit {
		body = string(runes[:bodyScanLimit])
	}
	haystack := facts.Title + " " + body

	var matched []string
	for _, term := range sensationalTerms {
		if strings.Contains(haystack, term) {
			matched = append(matched, term)
		}
	}

	penalty := len(matched)
	if penalty > 5 {
		penalty = 5
	}
	score := float64(100 - 10*penalty)

	label := "normal"
	if len(matched) >= 3 {
		label = "sensational"
	} else if len(matched) > 0 {
		label = "mildly sensational"
	}

	return model.SubScore{
		Score: score,
		Label: label,
		Detail: map[string]any{
			"matched_terms": matched,
			"match_count":   len(matched),
			"formula":       "max(100 - 10*min(matches, 5), 50)",
		},
	}
}

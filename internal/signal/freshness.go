package signal

import (
	"time"

	"github.com/infomate/veracity/internal/model"
)

// Freshness scores how recently the article was published.
type Freshness struct {
	now func() time.Time // injectable for tests
}

// NewFreshness creates the provider.
func NewFreshness() *Freshness {
	return &Freshness{now: time.Now}
}

// Score computes the article's age in whole days against UTC now.
// Future-dated articles are suspicious; a missing or unparseable date is
// neutral, not penalized.
func (f *Freshness) Score(facts model.ArticleFacts) model.SubScore {
	published, ok := parsePublished(facts.PublishDate)
	if !ok {
		return model.SubScore{
			Score: 70,
			Label: "unknown",
			Detail: map[string]any{
				"days_ago": nil,
			},
		}
	}

	now := f.now().UTC()
	days := int(now.Sub(published).Hours() / 24)

	var score float64
	var label string
	switch {
	// Checked on the raw instants: integer day math truncates toward zero,
	// which would let a date less than a day ahead pass as "fresh".
	case now.Before(published):
		score, label = 50, "suspicious" // future-dated
	case days <= 7:
		score, label = 100, "fresh"
	case days <= 30:
		score, label = 90, "recent"
	case days <= 90:
		score, label = 80, "aging"
	case days <= 365:
		score, label = 70, "old"
	default:
		score, label = 60, "stale"
	}

	return model.SubScore{
		Score: score,
		Label: label,
		Detail: map[string]any{
			"days_ago":       days,
			"published_date": facts.PublishDate,
		},
	}
}

var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parsePublished(s string) (time.Time, bool) {
	if s == "" || s == model.DateUnknown {
		return time.Time{}, false
	}
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

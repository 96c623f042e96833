package model

// DateUnknown is the sentinel stored when no publish date could be parsed.
const DateUnknown = "unknown"

// DateUnknownDisplay is how the sentinel is rendered to API clients.
const DateUnknownDisplay = "날짜 찾기 실패"

// ArticleFacts is the structured record produced by the extractor.
// It is built once per request and never mutated afterwards.
type ArticleFacts struct {
	Publisher   string `json:"publisher"`
	PublishDate string `json:"publish_date"` // ISO-8601 or DateUnknown
	Title       string `json:"title"`
	Body        string `json:"body"`
}

// DisplayDate returns the publish date as rendered to clients.
func (f ArticleFacts) DisplayDate() string {
	if f.PublishDate == "" || f.PublishDate == DateUnknown {
		return DateUnknownDisplay
	}
	return f.PublishDate
}

// TrustRecord is one row of the static publisher reliability table.
type TrustRecord struct {
	Rank     *int    `json:"rank"`
	Score    float64 `json:"score"`
	Category string  `json:"category"`
}

// RelatedSource identifies which search provider produced a stub.
type RelatedSource string

const (
	SourceNaver RelatedSource = "naver"
	SourceKakao RelatedSource = "kakao"
)

// RelatedArticle is a candidate article for the cross-check signal.
type RelatedArticle struct {
	Title     string        `json:"title"`
	Link      string        `json:"link"`
	Press     string        `json:"press"`
	Thumbnail string        `json:"thumbnail,omitempty"`
	Source    RelatedSource `json:"source"`
}

// Prediction is the external classifier's verdict for one article.
type Prediction struct {
	Prediction     string  `json:"prediction"` // "True", "Fake" or "Unknown"
	TruePercentage float64 `json:"true_percentage"`
	FakePercentage float64 `json:"fake_percentage"`
	Unavailable    bool    `json:"unavailable,omitempty"`
}

// Package llm provides the structured judgment service used by the
// reliability and cross-check signals.
package llm

import "context"

// Judgment is the structured verdict for one article.
type Judgment struct {
	Score    float64  `json:"score"`   // 0-100 reliability estimate
	Verdict  string   `json:"verdict"` // "True" or "Fake"
	Reason   string   `json:"reason"`
	Keywords []string `json:"keywords"` // 2-3 search keywords for related lookup
}

// ConsistencyLevel is the three-level agreement verdict of a cross-check.
type ConsistencyLevel string

const (
	ConsistencyHigh   ConsistencyLevel = "high"
	ConsistencyMedium ConsistencyLevel = "medium"
	ConsistencyLow    ConsistencyLevel = "low"
)

// Consistency is the structured result of comparing an article against
// independently retrieved related articles.
type Consistency struct {
	Level  ConsistencyLevel `json:"level"`
	Reason string           `json:"reason"`
}

// Judge defines the judgment-service interface. Implementations must be
// safe for concurrent use; callers treat any error as provider
// unavailability and fall back to their documented neutral defaults.
type Judge interface {
	// JudgeArticle rates one article's reliability and proposes search
	// keywords for the related-article stage.
	JudgeArticle(ctx context.Context, title, body string) (*Judgment, error)

	// CheckConsistency compares the article against related headlines.
	CheckConsistency(ctx context.Context, title, body string, relatedTitles []string) (*Consistency, error)
}

package model

import "time"

// Signal names used as keys in detailed score maps and the weight table.
const (
	SignalClassifier     = "ai_classifier"
	SignalLLM            = "llm_judgment"
	SignalTrust          = "media_trust"
	SignalCrossCheck     = "cross_check"
	SignalSensationalism = "sensationalism"
	SignalCommercial     = "commercial"
	SignalFreshness      = "date_freshness"
)

// SubScore is one signal provider's normalized contribution.
// Detail carries the provider-specific evidence payload so every score
// stays explainable after the fact.
type SubScore struct {
	Score   float64        `json:"score"`
	Label   string         `json:"label,omitempty"`
	Detail  map[string]any `json:"detail,omitempty"`
	Missing bool           `json:"missing,omitempty"` // provider failed; aggregator substitutes the neutral default
}

// FinalVerdict is the deterministic aggregation of all sub-scores.
type FinalVerdict struct {
	FinalScore       float64            `json:"final_score"`
	Grade            string             `json:"grade"`
	ReliabilityLabel string             `json:"reliability_label"`
	WeightsUsed      map[string]float64 `json:"weights_used"`
}

// Analysis is the complete per-request result assembled by the pipeline.
type Analysis struct {
	RequestedURL    string              `json:"requested_url"`
	PublisherName   string              `json:"publisher_name"`
	PublishedDate   string              `json:"published_date"`
	ScrapedTitle    string              `json:"scraped_title"`
	MediaTrust      TrustRecord         `json:"media_trust"`
	AIPrediction    *Prediction         `json:"ai_prediction"`
	DetailedScores  map[string]SubScore `json:"detailed_scores,omitempty"`
	FinalAnalysis   *FinalVerdict       `json:"final_analysis,omitempty"`
	RelatedArticles []RelatedArticle    `json:"related_articles"`
	SearchKeywords  []string            `json:"search_keywords"`
	Cached          bool                `json:"cached"`
	AnalyzedAt      time.Time           `json:"analyzed_at"`
}

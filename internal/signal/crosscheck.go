package signal

import (
	"context"

	"github.com/infomate/veracity/internal/llm"
	"github.com/infomate/veracity/internal/model"
	"go.uber.org/zap"
)

// consistencyScores maps the judge's agreement level to a sub-score.
var consistencyScores = map[llm.ConsistencyLevel]float64{
	llm.ConsistencyHigh:   90,
	llm.ConsistencyMedium: 70,
	llm.ConsistencyLow:    40,
}

// CrossCheck compares the article against independently retrieved related
// articles.
type CrossCheck struct {
	judge  llm.Judge
	logger *zap.Logger
}

// NewCrossCheck creates the provider.
func NewCrossCheck(judge llm.Judge, logger *zap.Logger) *CrossCheck {
	return &CrossCheck{judge: judge, logger: logger}
}

// Score sends the article and the related titles to the judgment service.
// No related articles, or an unavailable judge, yields the neutral
// "unverifiable" default: absence of corroboration is never scored as
// contradiction.
func (c *CrossCheck) Score(ctx context.Context, facts model.ArticleFacts, related []model.RelatedArticle) model.SubScore {
	if len(related) == 0 || c.judge == nil {
		return unverifiable("no related articles to compare")
	}

	titles := make([]string, 0, len(related))
	for _, r := range related {
		titles = append(titles, r.Title)
	}

	consistency, err := c.judge.CheckConsistency(ctx, facts.Title, facts.Body, titles)
	if err != nil {
		c.logger.Warn("cross-check failed", zap.Error(err))
		return unverifiable(err.Error())
	}

	mapped, ok := consistencyScores[consistency.Level]
	if !ok {
		// A judge implementation may hand back a level outside the
		// three-value contract; treat it as no verdict, not as the floor.
		return unverifiable("unrecognized consistency level " + string(consistency.Level))
	}

	return model.SubScore{
		Score: mapped,
		Label: string(consistency.Level) + " agreement",
		Detail: map[string]any{
			"consistency": string(consistency.Level),
			"reason":      consistency.Reason,
			"compared":    len(titles),
		},
	}
}

func unverifiable(reason string) model.SubScore {
	return model.SubScore{
		Score: 70,
		Label: "unverifiable",
		Detail: map[string]any{
			"reason": reason,
		},
	}
}

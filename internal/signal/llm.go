package signal

import (
	"context"

	"github.com/infomate/veracity/internal/llm"
	"github.com/infomate/veracity/internal/model"
	"go.uber.org/zap"
)

// LLMJudgment asks the judgment service for a reliability verdict and the
// search keywords that drive the related-article stage.
type LLMJudgment struct {
	judge  llm.Judge
	logger *zap.Logger
}

// NewLLMJudgment creates the provider. A nil judge means the service is not
// configured; every call then degrades to the score-less error signal.
func NewLLMJudgment(judge llm.Judge, logger *zap.Logger) *LLMJudgment {
	return &LLMJudgment{judge: judge, logger: logger}
}

// Score returns the judgment sub-score and the extracted keywords. On any
// transport or parsing failure the sub-score is marked missing (the
// aggregator substitutes 50) and the keyword list is empty, which starves
// the related-article stage.
func (l *LLMJudgment) Score(ctx context.Context, facts model.ArticleFacts) (model.SubScore, []string) {
	if l.judge == nil {
		return missingJudgment("judgment service not configured"), nil
	}

	judgment, err := l.judge.JudgeArticle(ctx, facts.Title, facts.Body)
	if err != nil {
		l.logger.Warn("judgment service failed", zap.Error(err))
		return missingJudgment(err.Error()), nil
	}

	return model.SubScore{
		Score: judgment.Score,
		Label: judgment.Verdict,
		Detail: map[string]any{
			"reason":   judgment.Reason,
			"keywords": judgment.Keywords,
		},
	}, judgment.Keywords
}

func missingJudgment(reason string) model.SubScore {
	return model.SubScore{
		Missing: true,
		Label:   "unavailable",
		Detail: map[string]any{
			"error": reason,
		},
	}
}

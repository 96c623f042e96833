package signal

import (
	"context"

	"github.com/infomate/veracity/internal/classifier"
	"github.com/infomate/veracity/internal/model"
	"go.uber.org/zap"
)

// Classifier maps the external text classifier's probability pair to a
// sub-score.
type Classifier struct {
	predictor classifier.Predictor
	logger    *zap.Logger
}

// NewClassifier creates the provider.
func NewClassifier(predictor classifier.Predictor, logger *zap.Logger) *Classifier {
	return &Classifier{predictor: predictor, logger: logger}
}

// Score runs inference and scales the genuine-class probability to 0-100.
// An unavailable classifier yields a neutral default, flagged as such, plus
// the "Unknown" prediction echoed in the response contract.
func (c *Classifier) Score(ctx context.Context, facts model.ArticleFacts) (model.SubScore, *model.Prediction) {
	prediction, err := c.predictor.Predict(ctx, facts.Title, facts.Body)
	if err != nil {
		c.logger.Warn("classifier unavailable", zap.Error(err))
		return model.SubScore{
				Score: 50,
				Label: "unavailable",
				Detail: map[string]any{
					"unavailable": true,
					"error":       err.Error(),
				},
			}, &model.Prediction{
				Prediction:     "Unknown",
				TruePercentage: 50,
				FakePercentage: 50,
				Unavailable:    true,
			}
	}

	return model.SubScore{
		Score: prediction.TruePercentage,
		Label: prediction.Prediction,
		Detail: map[string]any{
			"true_percentage": prediction.TruePercentage,
			"fake_percentage": prediction.FakePercentage,
		},
	}, prediction
}

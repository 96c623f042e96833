// Package score combines sub-scores into the final verdict.
package score

import (
	"math"

	"github.com/infomate/veracity/internal/model"
)

// Weights per signal. These are policy constants tuned for compatibility
// with the reference scoring, not derived quantities; they sum to 1.00.
var weights = map[string]float64{
	model.SignalClassifier:     0.20,
	model.SignalLLM:            0.25,
	model.SignalTrust:          0.15,
	model.SignalCrossCheck:     0.15,
	model.SignalSensationalism: 0.10,
	model.SignalCommercial:     0.10,
	model.SignalFreshness:      0.05,
}

// missingDefault substitutes for an absent or failed signal, dragging the
// final score toward neutral rather than toward either extreme.
const missingDefault = 50.0

// Grade bands, evaluated top-down; each threshold is inclusive.
var gradeBands = []struct {
	min   float64
	grade string
	label string
}{
	{80, "A", "high reliability"},
	{60, "B", "moderate"},
	{40, "C", "caution advised"},
	{0, "D", "low reliability"},
}

// Aggregator computes the final weighted verdict.
type Aggregator struct{}

// NewAggregator creates an Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate is a pure function of the sub-score map: identical inputs
// produce byte-identical verdicts.
func (a *Aggregator) Aggregate(subscores map[string]model.SubScore) *model.FinalVerdict {
	total := 0.0
	used := make(map[string]float64, len(weights))

	for name, weight := range weights {
		value := missingDefault
		if sub, ok := subscores[name]; ok && !sub.Missing {
			value = sub.Score
		}
		total += weight * value
		used[name] = weight
	}

	final := math.Round(total*100) / 100

	grade, label := "D", "low reliability"
	for _, band := range gradeBands {
		if final >= band.min {
			grade, label = band.grade, band.label
			break
		}
	}

	return &model.FinalVerdict{
		FinalScore:       final,
		Grade:            grade,
		ReliabilityLabel: label,
		WeightsUsed:      used,
	}
}

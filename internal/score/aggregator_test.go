package score

import (
	"reflect"
	"testing"

	"github.com/infomate/veracity/internal/model"
)

func allFifty() map[string]model.SubScore {
	return map[string]model.SubScore{
		model.SignalClassifier:     {Score: 50},
		model.SignalLLM:            {Score: 50},
		model.SignalTrust:          {Score: 50},
		model.SignalCrossCheck:     {Score: 50},
		model.SignalSensationalism: {Score: 50},
		model.SignalCommercial:     {Score: 50},
		model.SignalFreshness:      {Score: 50},
	}
}

func TestAggregate_WeightedSum(t *testing.T) {
	a := NewAggregator()
	// 0.20*50 + 0.25*50 + 0.15*60 + 0.15*70 + 0.10*100 + 0.10*100 + 0.05*70 = 66.0
	verdict := a.Aggregate(map[string]model.SubScore{
		model.SignalClassifier:     {Score: 50},
		model.SignalLLM:            {Score: 50},
		model.SignalTrust:          {Score: 60},
		model.SignalCrossCheck:     {Score: 70},
		model.SignalSensationalism: {Score: 100},
		model.SignalCommercial:     {Score: 100},
		model.SignalFreshness:      {Score: 70},
	})

	if verdict.FinalScore != 66.0 {
		t.Errorf("expected 66.0, got %v", verdict.FinalScore)
	}
	if verdict.Grade != "B" || verdict.ReliabilityLabel != "moderate" {
		t.Errorf("expected B/moderate, got %s/%s", verdict.Grade, verdict.ReliabilityLabel)
	}
}

func TestAggregate_MissingSignalsSubstituteNeutral(t *testing.T) {
	a := NewAggregator()

	// Absent map entries and explicitly Missing entries both count as 50.
	sparse := a.Aggregate(map[string]model.SubScore{
		model.SignalLLM: {Missing: true, Score: 999}, // score ignored when missing
	})
	if sparse.FinalScore != 50.0 {
		t.Errorf("expected all-neutral 50.0, got %v", sparse.FinalScore)
	}
}

func TestAggregate_GradeBandEdges(t *testing.T) {
	a := NewAggregator()

	cases := []struct {
		score float64
		grade string
	}{
		{80, "A"},
		{79.99, "B"},
		{60, "B"},
		{59.99, "C"},
		{40, "C"},
		{39.99, "D"},
		{0, "D"},
	}
	for _, tc := range cases {
		uniform := map[string]model.SubScore{}
		for _, name := range []string{
			model.SignalClassifier, model.SignalLLM, model.SignalTrust,
			model.SignalCrossCheck, model.SignalSensationalism,
			model.SignalCommercial, model.SignalFreshness,
		} {
			uniform[name] = model.SubScore{Score: tc.score}
		}
		verdict := a.Aggregate(uniform)
		if verdict.FinalScore != tc.score {
			t.Errorf("uniform %v: got final %v", tc.score, verdict.FinalScore)
		}
		if verdict.Grade != tc.grade {
			t.Errorf("score %v: got grade %s, want %s", tc.score, verdict.Grade, tc.grade)
		}
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	a := NewAggregator()

	first := a.Aggregate(allFifty())
	second := a.Aggregate(allFifty())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs diverged: %+v vs %+v", first, second)
	}
}

func TestAggregate_ReportsWeightsUsed(t *testing.T) {
	a := NewAggregator()
	verdict := a.Aggregate(allFifty())

	sum := 0.0
	for _, w := range verdict.WeightsUsed {
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("weights should sum to 1.0, got %v", sum)
	}
	if verdict.WeightsUsed[model.SignalLLM] != 0.25 {
		t.Errorf("unexpected llm weight %v", verdict.WeightsUsed[model.SignalLLM])
	}
}

package scoring

import (
	"testing"

	"agentops/internal/model"
)

func durationScale() []model.ScaleRule {
	return []model.ScaleRule{
		{Label: "excellent", Operator: model.OpLT, Value: 30000, Score: 100},
		{Label: "good", Operator: model.OpLT, Value: 60000, Score: 75},
		{Label: "acceptable", Operator: model.OpLT, Value: 120000, Score: 50},
		{Label: "poor", Operator: model.OpGTE, Value: 120000, Score: 20},
	}
}

func TestScoreValueNoData(t *testing.T) {
	score, label := ScoreValue(nil, durationScale())
	if score != nil {
		t.Errorf("expected nil score for nil raw value, got %v", *score)
	}
	if label != LabelNoData {
		t.Errorf("expected label %q, got %q", LabelNoData, label)
	}
}

func TestScoreValueEmptyScale(t *testing.T) {
	score, label := ScoreValue(42.0, nil)
	if score == nil || *score != 50 {
		t.Errorf("expected neutral 50 for empty scale, got %v", score)
	}
	if label != LabelUnscaled {
		t.Errorf("expected label %q, got %q", LabelUnscaled, label)
	}
}

func TestScoreValueFirstMatchWins(t *testing.T) {
	score, label := ScoreValue(25000.0, durationScale())
	if score == nil || *score != 100 {
		t.Errorf("expected 100 for value under every threshold, got %v", score)
	}
	if label != "excellent" {
		t.Errorf("expected label excellent, got %q", label)
	}

	score, label = ScoreValue(90000.0, durationScale())
	if score == nil || *score != 50 {
		t.Errorf("expected 50 for mid-range value, got %v", score)
	}
	if label != "acceptable" {
		t.Errorf("expected label acceptable, got %q", label)
	}
}

func TestScoreValueNoMatchFallsBackToLowestScore(t *testing.T) {
	// Scale with a gap: nothing matches a value of 15.
	scale := []model.ScaleRule{
		{Label: "low", Operator: model.OpLT, Value: 10, Score: 80},
		{Label: "high", Operator: model.OpGT, Value: 20, Score: 30},
	}
	score, label := ScoreValue(15.0, scale)
	if score == nil || *score != 30 {
		t.Errorf("expected lowest declared score 30 on no match, got %v", score)
	}
	if label != LabelDefault {
		t.Errorf("expected label %q, got %q", LabelDefault, label)
	}
}

func TestScoreValueBetween(t *testing.T) {
	high := 20.0
	scale := []model.ScaleRule{
		{Label: "band", Operator: model.OpBetween, Value: 10, ValueHigh: &high, Score: 90},
		{Label: "outside", Operator: model.OpGT, Value: 20, Score: 40},
	}
	score, _ := ScoreValue(15.0, scale)
	if score == nil || *score != 90 {
		t.Errorf("expected between rule to match 15, got %v", score)
	}
	score, _ = ScoreValue(10.0, scale)
	if score == nil || *score != 90 {
		t.Errorf("expected between to be inclusive at the low bound, got %v", score)
	}
	score, _ = ScoreValue(25.0, scale)
	if score == nil || *score != 40 {
		t.Errorf("expected 25 to fall to the next rule, got %v", score)
	}
}

func TestScoreValueStringOperators(t *testing.T) {
	scale := []model.ScaleRule{
		{Label: "prod", Operator: model.OpEQ, Text: "production", Score: 10},
		{Label: "staging", Operator: model.OpContains, Text: "STAGE", Score: 70},
	}
	score, label := ScoreValue("production", scale)
	if score == nil || *score != 10 {
		t.Errorf("expected eq string match, got %v (%s)", score, label)
	}
	score, _ = ScoreValue("pre-stage-env", scale)
	if score == nil || *score != 70 {
		t.Errorf("expected case-insensitive contains match, got %v", score)
	}
}

func TestScoreValueNumericStringCoercion(t *testing.T) {
	score, _ := ScoreValue("25000", durationScale())
	if score == nil || *score != 100 {
		t.Errorf("expected numeric string to coerce for lt, got %v", score)
	}
}

package scoring

import (
	"errors"
	"testing"

	"agentops/internal/model"
)

func twoDimensionProfile() *model.ScoringProfile {
	return &model.ScoringProfile{
		ID:              "sp_1",
		Name:            "latency and risk",
		CompositeMethod: model.MethodWeightedAverage,
		Status:          model.StatusActive,
		Dimensions: []model.ScoringDimension{
			{
				ID:         "sd_dur",
				Name:       "speed",
				Weight:     1,
				DataSource: model.SourceDurationMS,
				Scale: []model.ScaleRule{
					{Label: "fast", Operator: model.OpLT, Value: 1000, Score: 100},
					{Label: "slow", Operator: model.OpGTE, Value: 1000, Score: 20},
				},
			},
			{
				ID:         "sd_risk",
				Name:       "safety",
				Weight:     1,
				DataSource: model.SourceRiskScore,
				Scale: []model.ScaleRule{
					{Label: "low", Operator: model.OpLT, Value: 50, Score: 100},
					{Label: "high", Operator: model.OpGTE, Value: 50, Score: 20},
				},
			},
		},
	}
}

func TestScoreActionEndToEnd(t *testing.T) {
	dur := 500.0
	risk := 80.0
	action := &model.ActionRecord{
		ID:         "ar_1",
		AgentID:    "agent-1",
		ActionType: "query",
		DurationMS: &dur,
		RiskScore:  &risk,
	}

	ps, err := ScoreAction(twoDimensionProfile(), action)
	if err != nil {
		t.Fatalf("ScoreAction returned error: %v", err)
	}
	if ps.CompositeScore != 60.0 {
		t.Errorf("expected composite 60.0, got %v", ps.CompositeScore)
	}
	if len(ps.Dimensions) != 2 {
		t.Fatalf("expected 2 dimension results, got %d", len(ps.Dimensions))
	}
	if ps.Dimensions[0].Score == nil || *ps.Dimensions[0].Score != 100 {
		t.Errorf("expected duration dimension score 100, got %v", ps.Dimensions[0].Score)
	}
	if ps.Dimensions[1].Score == nil || *ps.Dimensions[1].Score != 20 {
		t.Errorf("expected risk dimension score 20, got %v", ps.Dimensions[1].Score)
	}
	if ps.ActionID != "ar_1" || ps.AgentID != "agent-1" {
		t.Errorf("expected action identity carried through, got %q/%q", ps.ActionID, ps.AgentID)
	}
}

func TestScoreActionNoDimensions(t *testing.T) {
	profile := &model.ScoringProfile{ID: "sp_empty", CompositeMethod: model.MethodWeightedAverage}
	_, err := ScoreAction(profile, &model.ActionRecord{})
	if !errors.Is(err, ErrNoDimensions) {
		t.Errorf("expected ErrNoDimensions, got %v", err)
	}
}

func TestScoreActionNoData(t *testing.T) {
	// Action carries neither duration nor risk, so no dimension scores.
	_, err := ScoreAction(twoDimensionProfile(), &model.ActionRecord{ID: "ar_empty"})
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestScoreActionPartialDataRenormalizes(t *testing.T) {
	dur := 500.0
	action := &model.ActionRecord{ID: "ar_2", DurationMS: &dur}
	ps, err := ScoreAction(twoDimensionProfile(), action)
	if err != nil {
		t.Fatalf("ScoreAction returned error: %v", err)
	}
	if ps.CompositeScore != 100.0 {
		t.Errorf("expected composite 100 over the single scored dimension, got %v", ps.CompositeScore)
	}
	if ps.Dimensions[1].Label != LabelNoData {
		t.Errorf("expected no_data label on the missing dimension, got %q", ps.Dimensions[1].Label)
	}
}

func TestBatchScoreIsolatesFailures(t *testing.T) {
	dur1, dur2 := 500.0, 2000.0
	risk := 30.0
	actions := []*model.ActionRecord{
		{ID: "ar_ok1", DurationMS: &dur1, RiskScore: &risk},
		{ID: "ar_bad"}, // no data
		{ID: "ar_ok2", DurationMS: &dur2, RiskScore: &risk},
	}

	result := BatchScore(twoDimensionProfile(), actions)
	if result.Summary.Total != 3 {
		t.Errorf("expected total 3, got %d", result.Summary.Total)
	}
	if result.Summary.Scored != 2 {
		t.Errorf("expected 2 scored, got %d", result.Summary.Scored)
	}
	if len(result.Results) != 3 {
		t.Fatalf("expected 3 items, got %d", len(result.Results))
	}
	if result.Results[1].Error == "" || result.Results[1].Score != nil {
		t.Errorf("expected inline error for the no-data action, got %+v", result.Results[1])
	}
	// ar_ok1: (100+100)/2 = 100; ar_ok2: (20+100)/2 = 60; avg = 80.
	if result.Summary.AvgScore == nil || *result.Summary.AvgScore != 80.0 {
		t.Errorf("expected batch avg 80.0, got %v", result.Summary.AvgScore)
	}
}

func TestBatchScoreAllFailed(t *testing.T) {
	result := BatchScore(twoDimensionProfile(), []*model.ActionRecord{{ID: "a"}, {ID: "b"}})
	if result.Summary.Scored != 0 {
		t.Errorf("expected 0 scored, got %d", result.Summary.Scored)
	}
	if result.Summary.AvgScore != nil {
		t.Errorf("expected nil batch average, got %v", *result.Summary.AvgScore)
	}
}

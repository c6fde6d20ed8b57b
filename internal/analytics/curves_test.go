package analytics

import (
	"testing"
	"time"

	"agentops/internal/model"
)

var curveBase = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func curveEpisode(actionType string, score float64, at time.Time) *model.LearningEpisode {
	return &model.LearningEpisode{
		AgentID:      "agent-1",
		ActionType:   actionType,
		Score:        score,
		OutcomeLabel: model.OutcomeSuccess,
		DurationMS:   1000,
		CostEstimate: 0.05,
		CreatedAt:    at,
	}
}

func TestComputeLearningCurvesWeeklyPoints(t *testing.T) {
	eps := []*model.LearningEpisode{
		curveEpisode("query", 40, curveBase),
		curveEpisode("query", 60, curveBase.Add(24*time.Hour)),
		curveEpisode("query", 80, curveBase.Add(8*24*time.Hour)),
	}
	now := curveBase.Add(10 * 24 * time.Hour)

	points := ComputeLearningCurves(eps, now)
	if len(points) != 2 {
		t.Fatalf("expected 2 weekly points, got %d", len(points))
	}

	first := points[0]
	if first.ActionType != "query" || first.AgentID != "agent-1" {
		t.Errorf("unexpected point identity: %+v", first)
	}
	if first.EpisodeCount != 2 {
		t.Errorf("expected 2 episodes in first window, got %d", first.EpisodeCount)
	}
	if first.AvgScore != 50 {
		t.Errorf("expected first-window avg 50, got %v", first.AvgScore)
	}
	if !first.WindowStart.Equal(curveBase) {
		t.Errorf("expected window anchored at first episode, got %v", first.WindowStart)
	}
	if first.WindowEnd.Sub(first.WindowStart) != 7*24*time.Hour {
		t.Errorf("expected 7-day window, got %v", first.WindowEnd.Sub(first.WindowStart))
	}

	second := points[1]
	if second.EpisodeCount != 1 || second.AvgScore != 80 {
		t.Errorf("unexpected second window: %+v", second)
	}
}

func TestComputeLearningCurvesSpread(t *testing.T) {
	eps := []*model.LearningEpisode{
		curveEpisode("query", 10, curveBase),
		curveEpisode("query", 20, curveBase.Add(time.Hour)),
		curveEpisode("query", 30, curveBase.Add(2*time.Hour)),
		curveEpisode("query", 40, curveBase.Add(3*time.Hour)),
		curveEpisode("query", 50, curveBase.Add(4*time.Hour)),
	}
	points := ComputeLearningCurves(eps, curveBase.Add(24*time.Hour))
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if points[0].P25Score != 20 || points[0].P75Score != 40 {
		t.Errorf("expected p25/p75 of 20/40, got %v/%v", points[0].P25Score, points[0].P75Score)
	}
	if points[0].P25Score > points[0].AvgScore || points[0].AvgScore > points[0].P75Score {
		t.Errorf("spread does not bracket the mean: %+v", points[0])
	}
}

func TestComputeLearningCurvesSkipsThinActionTypes(t *testing.T) {
	eps := []*model.LearningEpisode{
		curveEpisode("rare", 90, curveBase),
		curveEpisode("rare", 95, curveBase.Add(time.Hour)),
		curveEpisode("common", 50, curveBase),
		curveEpisode("common", 60, curveBase.Add(time.Hour)),
		curveEpisode("common", 70, curveBase.Add(2*time.Hour)),
	}
	points := ComputeLearningCurves(eps, curveBase.Add(24*time.Hour))
	for _, p := range points {
		if p.ActionType == "rare" {
			t.Error("expected action type with <3 episodes to be skipped")
		}
	}
	if len(points) != 1 {
		t.Errorf("expected exactly one point for common, got %d", len(points))
	}
}

func TestComputeLearningCurvesDurationCostAverages(t *testing.T) {
	eps := []*model.LearningEpisode{
		curveEpisode("query", 50, curveBase),
		curveEpisode("query", 60, curveBase.Add(time.Hour)),
		curveEpisode("query", 70, curveBase.Add(2*time.Hour)),
	}
	eps[1].DurationMS = 3000
	eps[2].DurationMS = 0 // unreported: excluded from the duration mean
	eps[2].CostEstimate = 0

	points := ComputeLearningCurves(eps, curveBase.Add(24*time.Hour))
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if points[0].AvgDurationMS != 2000 {
		t.Errorf("expected avg duration 2000 over reporting episodes, got %v", points[0].AvgDurationMS)
	}
	if points[0].AvgCost != 0.05 {
		t.Errorf("expected avg cost 0.05, got %v", points[0].AvgCost)
	}
}

func TestComputeLearningCurvesIgnoresEmptyActionType(t *testing.T) {
	eps := []*model.LearningEpisode{
		curveEpisode("", 50, curveBase),
		curveEpisode("", 60, curveBase.Add(time.Hour)),
		curveEpisode("", 70, curveBase.Add(2*time.Hour)),
	}
	if points := ComputeLearningCurves(eps, curveBase.Add(24*time.Hour)); len(points) != 0 {
		t.Errorf("expected no points for empty action type, got %d", len(points))
	}
}

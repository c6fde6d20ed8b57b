package analytics

import (
	"errors"
	"testing"
	"time"

	"agentops/internal/model"
)

var velocityBase = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// dailyEpisodes creates one episode per day starting at velocityBase, with
// the given scores. Outcomes alternate success unless overridden.
func dailyEpisodes(scores []float64, outcome string) []*model.LearningEpisode {
	eps := make([]*model.LearningEpisode, len(scores))
	for i, s := range scores {
		eps[i] = &model.LearningEpisode{
			ID:           "ep_" + string(rune('a'+i)),
			AgentID:      "agent-1",
			ActionType:   "query",
			Score:        s,
			OutcomeLabel: outcome,
			CreatedAt:    velocityBase.Add(time.Duration(i) * 24 * time.Hour),
		}
	}
	return eps
}

func TestComputeVelocityIncreasing(t *testing.T) {
	eps := dailyEpisodes([]float64{10, 20, 30, 40, 50}, model.OutcomeSuccess)
	now := velocityBase.Add(5 * 24 * time.Hour)

	rec, err := ComputeVelocity(eps, model.PeriodDaily, now)
	if err != nil {
		t.Fatalf("ComputeVelocity returned error: %v", err)
	}
	if rec.Velocity <= 0 {
		t.Errorf("expected positive velocity on rising scores, got %v", rec.Velocity)
	}
	if rec.Velocity != 10 {
		t.Errorf("expected velocity 10 for +10/day, got %v", rec.Velocity)
	}
	if rec.WindowCount != 5 {
		t.Errorf("expected 5 windows, got %d", rec.WindowCount)
	}
	if rec.ScoreDelta != 40 {
		t.Errorf("expected score delta 40, got %v", rec.ScoreDelta)
	}
	if rec.EpisodeCount != 5 {
		t.Errorf("expected episode count 5, got %d", rec.EpisodeCount)
	}
	if rec.AvgScore != 30 {
		t.Errorf("expected overall avg 30, got %v", rec.AvgScore)
	}
	if rec.SuccessRate != 1 {
		t.Errorf("expected success rate 1, got %v", rec.SuccessRate)
	}
	if rec.Period != model.PeriodDaily {
		t.Errorf("expected daily period, got %q", rec.Period)
	}
}

func TestComputeVelocityDecreasing(t *testing.T) {
	eps := dailyEpisodes([]float64{90, 70, 50, 30}, model.OutcomeFailure)
	now := velocityBase.Add(4 * 24 * time.Hour)

	rec, err := ComputeVelocity(eps, model.PeriodDaily, now)
	if err != nil {
		t.Fatalf("ComputeVelocity returned error: %v", err)
	}
	if rec.Velocity >= 0 {
		t.Errorf("expected negative velocity on falling scores, got %v", rec.Velocity)
	}
	if rec.SuccessRate != 0 {
		t.Errorf("expected success rate 0 for all failures, got %v", rec.SuccessRate)
	}
}

func TestComputeVelocityConstant(t *testing.T) {
	eps := dailyEpisodes([]float64{60, 60, 60, 60}, model.OutcomeSuccess)
	now := velocityBase.Add(4 * 24 * time.Hour)

	rec, err := ComputeVelocity(eps, model.PeriodDaily, now)
	if err != nil {
		t.Fatalf("ComputeVelocity returned error: %v", err)
	}
	if rec.Velocity != 0 {
		t.Errorf("expected exactly 0 velocity on constant scores, got %v", rec.Velocity)
	}
	if rec.Acceleration != 0 {
		t.Errorf("expected 0 acceleration, got %v", rec.Acceleration)
	}
	if rec.ScoreDelta != 0 {
		t.Errorf("expected 0 score delta, got %v", rec.ScoreDelta)
	}
}

func TestComputeVelocityAcceleration(t *testing.T) {
	// Flat first half, steep second half: acceleration is positive.
	eps := dailyEpisodes([]float64{50, 50, 50, 60, 70, 80}, model.OutcomeSuccess)
	now := velocityBase.Add(6 * 24 * time.Hour)

	rec, err := ComputeVelocity(eps, model.PeriodDaily, now)
	if err != nil {
		t.Fatalf("ComputeVelocity returned error: %v", err)
	}
	if rec.Acceleration <= 0 {
		t.Errorf("expected positive acceleration, got %v", rec.Acceleration)
	}
}

func TestComputeVelocityTooFewEpisodes(t *testing.T) {
	eps := dailyEpisodes([]float64{50, 60}, model.OutcomeSuccess)
	_, err := ComputeVelocity(eps, model.PeriodDaily, velocityBase.Add(48*time.Hour))
	if !errors.Is(err, ErrTooFewEpisodes) {
		t.Errorf("expected ErrTooFewEpisodes, got %v", err)
	}
}

func TestComputeVelocityTooFewWindows(t *testing.T) {
	// Three episodes within the same hour: one daily window only.
	eps := []*model.LearningEpisode{
		{AgentID: "agent-1", Score: 50, OutcomeLabel: model.OutcomeSuccess, CreatedAt: velocityBase},
		{AgentID: "agent-1", Score: 60, OutcomeLabel: model.OutcomeSuccess, CreatedAt: velocityBase.Add(10 * time.Minute)},
		{AgentID: "agent-1", Score: 70, OutcomeLabel: model.OutcomeSuccess, CreatedAt: velocityBase.Add(20 * time.Minute)},
	}
	_, err := ComputeVelocity(eps, model.PeriodDaily, velocityBase.Add(time.Hour))
	if !errors.Is(err, ErrTooFewWindows) {
		t.Errorf("expected ErrTooFewWindows, got %v", err)
	}
}

func TestComputeVelocityWeeklyWindows(t *testing.T) {
	// Two bursts a week apart become two weekly windows.
	eps := []*model.LearningEpisode{
		{AgentID: "agent-1", Score: 40, OutcomeLabel: model.OutcomeSuccess, CreatedAt: velocityBase},
		{AgentID: "agent-1", Score: 50, OutcomeLabel: model.OutcomeFailure, CreatedAt: velocityBase.Add(24 * time.Hour)},
		{AgentID: "agent-1", Score: 80, OutcomeLabel: model.OutcomeSuccess, CreatedAt: velocityBase.Add(8 * 24 * time.Hour)},
	}
	now := velocityBase.Add(10 * 24 * time.Hour)

	rec, err := ComputeVelocity(eps, model.PeriodWeekly, now)
	if err != nil {
		t.Fatalf("ComputeVelocity returned error: %v", err)
	}
	if rec.WindowCount != 2 {
		t.Errorf("expected 2 weekly windows, got %d", rec.WindowCount)
	}
	// First window mean 45, second 80.
	if rec.ScoreDelta != 35 {
		t.Errorf("expected score delta 35, got %v", rec.ScoreDelta)
	}
	if rec.Period != model.PeriodWeekly {
		t.Errorf("expected weekly period, got %q", rec.Period)
	}
}

func TestComputeVelocityUnsortedInput(t *testing.T) {
	eps := dailyEpisodes([]float64{10, 20, 30, 40}, model.OutcomeSuccess)
	// Shuffle: computation must not depend on input order.
	eps[0], eps[3] = eps[3], eps[0]
	now := velocityBase.Add(4 * 24 * time.Hour)

	rec, err := ComputeVelocity(eps, model.PeriodDaily, now)
	if err != nil {
		t.Fatalf("ComputeVelocity returned error: %v", err)
	}
	if rec.Velocity != 10 {
		t.Errorf("expected velocity 10 after sorting, got %v", rec.Velocity)
	}
	if !rec.PeriodStart.Equal(velocityBase) {
		t.Errorf("expected period start at earliest episode, got %v", rec.PeriodStart)
	}
}

func TestComputeVelocityPendingOutcomesCountInDenominator(t *testing.T) {
	eps := dailyEpisodes([]float64{50, 60, 70, 80}, model.OutcomeSuccess)
	eps[1].OutcomeLabel = model.OutcomePending
	eps[2].OutcomeLabel = model.OutcomePending
	now := velocityBase.Add(4 * 24 * time.Hour)

	rec, err := ComputeVelocity(eps, model.PeriodDaily, now)
	if err != nil {
		t.Fatalf("ComputeVelocity returned error: %v", err)
	}
	if rec.SuccessRate != 0.5 {
		t.Errorf("expected success rate 0.5 with pending in denominator, got %v", rec.SuccessRate)
	}
}

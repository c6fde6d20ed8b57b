package analytics

import (
	"errors"
	"sort"
	"time"

	"agentops/internal/model"
)

// Skip reasons: not errors in the failure sense, but typed outcomes telling
// the caller this agent has too little history to trend yet. Callers skip
// the agent and move on.
var (
	ErrTooFewEpisodes = errors.New("fewer than 3 episodes in lookback")
	ErrTooFewWindows  = errors.New("fewer than 2 non-empty windows")
)

const minVelocityEpisodes = 3

// window is one non-empty fixed-size time slice of the episode stream.
type window struct {
	start       time.Time
	end         time.Time
	count       int
	avgScore    float64
	successRate float64
}

// ComputeVelocity trends one agent's scores across fixed time windows in a
// single pass over the episode snapshot. Windows are anchored at the first
// episode's timestamp and sized by period (daily or weekly; anything else
// reads as daily). Velocity is the OLS slope of per-window mean score;
// acceleration, computed only with 3+ windows, is the second-half slope
// minus the first-half slope. Overall success rate and mean score cover all
// episodes in the lookback, not per-window aggregates.
//
// The returned record is freshly built every run; the caller inserts it
// as-is so the trend history stays append-only.
func ComputeVelocity(episodes []*model.LearningEpisode, period string, now time.Time) (*model.LearningVelocityRecord, error) {
	if len(episodes) < minVelocityEpisodes {
		return nil, ErrTooFewEpisodes
	}

	sorted := make([]*model.LearningEpisode, len(episodes))
	copy(sorted, episodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.Before(sorted[j].CreatedAt) })

	windowSize := 24 * time.Hour
	if period == model.PeriodWeekly {
		windowSize = 7 * 24 * time.Hour
	} else {
		period = model.PeriodDaily
	}

	windows := partition(sorted, sorted[0].CreatedAt, now, windowSize)
	if len(windows) < 2 {
		return nil, ErrTooFewWindows
	}

	timeline := make([]float64, len(windows))
	for i, w := range windows {
		timeline[i] = w.avgScore
	}
	velocity := round3(slope(timeline))

	acceleration := 0.0
	if len(windows) >= 3 {
		mid := len(timeline) / 2
		acceleration = round3(slope(timeline[mid:]) - slope(timeline[:mid]))
	}

	scoreDelta := round3(windows[len(windows)-1].avgScore - windows[0].avgScore)

	scores := make([]float64, len(sorted))
	successes := 0
	for i, e := range sorted {
		scores[i] = e.Score
		if e.OutcomeLabel == model.OutcomeSuccess {
			successes++
		}
	}
	overallRate := float64(successes) / float64(len(sorted))
	overallAvg := mean(scores)
	level, maturityScore := ClassifyMaturity(len(sorted), overallRate, overallAvg)

	return &model.LearningVelocityRecord{
		AgentID:       sorted[0].AgentID,
		Period:        period,
		PeriodStart:   sorted[0].CreatedAt,
		PeriodEnd:     now,
		EpisodeCount:  len(sorted),
		AvgScore:      round3(overallAvg),
		SuccessRate:   round3(overallRate),
		ScoreDelta:    scoreDelta,
		Velocity:      velocity,
		Acceleration:  acceleration,
		MaturityScore: maturityScore,
		MaturityLevel: level,
		WindowCount:   len(windows),
	}, nil
}

// partition slices time-ordered episodes into consecutive fixed-size windows
// from start to end, keeping only non-empty ones.
func partition(sorted []*model.LearningEpisode, start, end time.Time, size time.Duration) []window {
	var windows []window
	i := 0
	for winStart := start; winStart.Before(end); winStart = winStart.Add(size) {
		winEnd := winStart.Add(size)
		var scores []float64
		successes := 0
		for i < len(sorted) && sorted[i].CreatedAt.Before(winEnd) {
			if !sorted[i].CreatedAt.Before(winStart) {
				scores = append(scores, sorted[i].Score)
				if sorted[i].OutcomeLabel == model.OutcomeSuccess {
					successes++
				}
			}
			i++
		}
		if len(scores) > 0 {
			windows = append(windows, window{
				start:       winStart,
				end:         winEnd,
				count:       len(scores),
				avgScore:    round3(mean(scores)),
				successRate: round3(float64(successes) / float64(len(scores))),
			})
		}
	}
	return windows
}

package scoring

import (
	"errors"

	"agentops/internal/model"
)

// Engine-level failure kinds. Configuration problems (ErrNoDimensions) and
// data-availability problems (ErrNoData) are distinct so callers can tell a
// broken profile from an action that simply carried no usable telemetry.
var (
	ErrNoDimensions = errors.New("profile has no dimensions")
	ErrNoData       = errors.New("no dimensions had data")
)

// ScoreAction runs one action through a profile: extract, scale, combine.
// Pure computation - no I/O, safe for concurrent callers. The returned
// ProfileScore has its computed fields set; identity, org and timestamps are
// the caller's to fill before persisting.
func ScoreAction(profile *model.ScoringProfile, action *model.ActionRecord) (*model.ProfileScore, error) {
	if len(profile.Dimensions) == 0 {
		return nil, ErrNoDimensions
	}

	results := make([]model.DimensionResult, 0, len(profile.Dimensions))
	for i := range profile.Dimensions {
		dim := &profile.Dimensions[i]
		raw := ExtractRawValue(action, dim)
		score, label := ScoreValue(raw, dim.Scale)
		results = append(results, model.DimensionResult{
			DimensionID:   dim.ID,
			DimensionName: dim.Name,
			Weight:        dim.Weight,
			RawValue:      raw,
			Score:         score,
			Label:         label,
		})
	}

	composite := Composite(results, profile.CompositeMethod)
	if composite == nil {
		return nil, ErrNoData
	}

	return &model.ProfileScore{
		ProfileID:       profile.ID,
		ProfileName:     profile.Name,
		ActionID:        action.ID,
		AgentID:         action.AgentID,
		ActionType:      action.ActionType,
		CompositeScore:  *composite,
		CompositeMethod: profile.CompositeMethod,
		Dimensions:      results,
	}, nil
}

// BatchScore scores each action independently: one failing action is
// recorded inline and never aborts the rest. The summary's average covers
// scored items only and is nil when nothing scored.
func BatchScore(profile *model.ScoringProfile, actions []*model.ActionRecord) *model.BatchScoreResult {
	items := make([]model.BatchScoreItem, 0, len(actions))
	sum := 0.0
	scored := 0

	for _, action := range actions {
		ps, err := ScoreAction(profile, action)
		if err != nil {
			items = append(items, model.BatchScoreItem{ActionID: action.ID, Error: err.Error()})
			continue
		}
		items = append(items, model.BatchScoreItem{ActionID: action.ID, Score: ps})
		sum += ps.CompositeScore
		scored++
	}

	summary := model.BatchScoreSummary{Total: len(actions), Scored: scored}
	if scored > 0 {
		avg := round2(sum / float64(scored))
		summary.AvgScore = &avg
	}
	return &model.BatchScoreResult{Results: items, Summary: summary}
}

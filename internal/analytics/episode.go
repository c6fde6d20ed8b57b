package analytics

import (
	"math"

	"agentops/internal/model"
)

// ScoreEpisode derives a 0-100 episode quality score and an outcome label
// from one raw action. The score starts at a neutral 50 and moves with the
// terminal status, risk, reversibility, runtime, cost, calibration of the
// agent's confidence, and hygiene counters. Execution state that the
// telemetry schema does not model directly (status, reversible, counters)
// is read from metadata.
func ScoreEpisode(action *model.ActionRecord) (float64, string) {
	status := metaString(action.Metadata, "status", "pending")
	risk := clamp(math.Round(floatOr(action.RiskScore, 0)), 0, 100)
	confidence := clamp(math.Round(floatOr(action.Confidence, 50)), 0, 100)
	reversible := metaBool(action.Metadata, "reversible")
	invalidated := math.Max(0, math.Round(metaFloat(action.Metadata, "invalidated_assumptions")))
	openLoops := math.Max(0, math.Round(metaFloat(action.Metadata, "open_loops")))

	score := 50.0

	switch status {
	case "completed":
		score += 30
	case "failed":
		score -= 35
	case "cancelled":
		score -= 20
	case "pending_approval":
		score -= 8
	case "running":
		score -= 5
	}

	if risk > 60 {
		score -= math.Min(20, math.Round((risk-60)/2))
	} else if risk <= 30 {
		score += 4
	}

	if reversible {
		score += 5
	} else {
		score -= 8
	}

	if action.DurationMS != nil {
		switch d := *action.DurationMS; {
		case d <= 60_000:
			score += 6
		case d <= 300_000:
			score += 3
		case d <= 1_800_000:
			score -= 4
		default:
			score -= 10
		}
	}

	if action.CostEstimate != nil {
		switch c := *action.CostEstimate; {
		case c <= 0.05:
			score += 4
		case c <= 1:
			score += 1
		case c <= 5:
			score -= 4
		default:
			score -= 8
		}
	}

	// Overconfidence on failures costs more than earned confidence pays.
	if status == "completed" && confidence >= 70 {
		score += 4
	}
	if status == "failed" && confidence >= 80 {
		score -= 8
	}

	score -= math.Min(16, invalidated*4)
	score -= math.Min(10, openLoops*2)

	return clamp(math.Round(score), 0, 100), outcomeForStatus(status)
}

func outcomeForStatus(status string) string {
	switch status {
	case "completed":
		return model.OutcomeSuccess
	case "failed", "cancelled":
		return model.OutcomeFailure
	default:
		return model.OutcomePending
	}
}

func clamp(v, min, max float64) float64 {
	return math.Min(max, math.Max(min, v))
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func metaString(m map[string]interface{}, key, fallback string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func metaBool(m map[string]interface{}, key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case float64:
		return v == 1
	case int:
		return v == 1
	case string:
		return v == "1" || v == "true"
	}
	return false
}

func metaFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

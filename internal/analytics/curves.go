package analytics

import (
	"sort"
	"time"

	"agentops/internal/model"
)

const minCurveEpisodes = 3

// ComputeLearningCurves builds per-action-type quality curves for one agent.
// Episodes are split per action type, then into weekly windows anchored at
// the type's first episode; every non-empty window becomes one point with
// its score spread (p25/p75) and mean duration/cost over the episodes that
// reported them. Action types with fewer than 3 episodes are skipped. Each
// point is persisted independently by the caller - the curve is an
// append-only series, never an upsert target.
func ComputeLearningCurves(episodes []*model.LearningEpisode, now time.Time) []*model.LearningCurvePoint {
	byType := make(map[string][]*model.LearningEpisode)
	var order []string
	for _, e := range episodes {
		if e.ActionType == "" {
			continue
		}
		if _, seen := byType[e.ActionType]; !seen {
			order = append(order, e.ActionType)
		}
		byType[e.ActionType] = append(byType[e.ActionType], e)
	}
	sort.Strings(order)

	var points []*model.LearningCurvePoint
	for _, actionType := range order {
		group := byType[actionType]
		if len(group) < minCurveEpisodes {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].CreatedAt.Before(group[j].CreatedAt) })

		const week = 7 * 24 * time.Hour
		for winStart := group[0].CreatedAt; winStart.Before(now); winStart = winStart.Add(week) {
			winEnd := winStart.Add(week)
			point := curvePoint(group, winStart, winEnd)
			if point == nil {
				continue
			}
			point.AgentID = group[0].AgentID
			point.ActionType = actionType
			points = append(points, point)
		}
	}
	return points
}

func curvePoint(group []*model.LearningEpisode, winStart, winEnd time.Time) *model.LearningCurvePoint {
	var scores, durations, costs []float64
	successes := 0
	for _, e := range group {
		if e.CreatedAt.Before(winStart) || !e.CreatedAt.Before(winEnd) {
			continue
		}
		scores = append(scores, e.Score)
		if e.OutcomeLabel == model.OutcomeSuccess {
			successes++
		}
		if e.DurationMS > 0 {
			durations = append(durations, e.DurationMS)
		}
		if e.CostEstimate > 0 {
			costs = append(costs, e.CostEstimate)
		}
	}
	if len(scores) == 0 {
		return nil
	}
	sort.Float64s(scores)

	return &model.LearningCurvePoint{
		WindowStart:   winStart,
		WindowEnd:     winEnd,
		EpisodeCount:  len(scores),
		AvgScore:      round3(mean(scores)),
		SuccessRate:   round3(float64(successes) / float64(len(scores))),
		AvgDurationMS: round3(mean(durations)),
		AvgCost:       round3(mean(costs)),
		P25Score:      round3(percentile(scores, 25)),
		P75Score:      round3(percentile(scores, 75)),
	}
}

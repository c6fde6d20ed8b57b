package analytics

import (
	"math"

	"agentops/internal/model"
)

// maturityLevels is the canonical six-tier ladder, ascending. Thresholds are
// joint: an agent holds a tier only while episode volume, reliability, and
// quality all clear its minimums.
var maturityLevels = []model.MaturityLevel{
	{Level: "novice", MinEpisodes: 0, MinSuccessRate: 0, MinAvgScore: 0},
	{Level: "developing", MinEpisodes: 10, MinSuccessRate: 0.4, MinAvgScore: 40},
	{Level: "competent", MinEpisodes: 50, MinSuccessRate: 0.6, MinAvgScore: 55},
	{Level: "proficient", MinEpisodes: 150, MinSuccessRate: 0.75, MinAvgScore: 65},
	{Level: "expert", MinEpisodes: 500, MinSuccessRate: 0.85, MinAvgScore: 75},
	{Level: "master", MinEpisodes: 1000, MinSuccessRate: 0.92, MinAvgScore: 85},
}

// MaturityLevels returns the ordered tier table. Static, no I/O.
func MaturityLevels() []model.MaturityLevel {
	out := make([]model.MaturityLevel, len(maturityLevels))
	copy(out, maturityLevels)
	return out
}

// ClassifyMaturity walks the tiers in ascending order and keeps advancing
// while all three thresholds hold; episode count gates advancement no matter
// how good the quality numbers are. The continuous 0-100 score is reported
// alongside the tier and is a separate signal: a quality-capped agent can
// carry a high score in a low tier.
func ClassifyMaturity(totalEpisodes int, successRate, avgScore float64) (string, float64) {
	level := maturityLevels[0].Level
	for _, tier := range maturityLevels {
		if totalEpisodes >= tier.MinEpisodes && successRate >= tier.MinSuccessRate && avgScore >= tier.MinAvgScore {
			level = tier.Level
		} else {
			break
		}
	}

	episodeScore := math.Min(float64(totalEpisodes)/1000, 1) * 30
	rateScore := successRate * 40
	qualityScore := avgScore / 100 * 30
	return level, round3(episodeScore + rateScore + qualityScore)
}

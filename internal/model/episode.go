package model

import "time"

// Episode outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePending = "pending"
)

// Velocity period types.
const (
	PeriodDaily  = "daily"
	PeriodWeekly = "weekly"
)

// LearningEpisode is one completed unit of agent work with its outcome. The
// stream is append-only and produced outside the analytics core.
type LearningEpisode struct {
	ID           string    `json:"id" bson:"_id"`
	OrgID        string    `json:"org_id" bson:"org_id"`
	AgentID      string    `json:"agent_id" bson:"agent_id"`
	ActionType   string    `json:"action_type" bson:"action_type"`
	Score        float64   `json:"score" bson:"score"`
	OutcomeLabel string    `json:"outcome_label" bson:"outcome_label"`
	DurationMS   float64   `json:"duration_ms" bson:"duration_ms"`
	CostEstimate float64   `json:"cost_estimate" bson:"cost_estimate"`
	SourceID     string    `json:"source_id,omitempty" bson:"source_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// LearningVelocityRecord is the output of one velocity computation for one
// agent. Every run inserts a fresh record so trend lines stay auditable.
type LearningVelocityRecord struct {
	ID            string    `json:"id" bson:"_id"`
	OrgID         string    `json:"org_id" bson:"org_id"`
	AgentID       string    `json:"agent_id" bson:"agent_id"`
	Period        string    `json:"period" bson:"period"`
	PeriodStart   time.Time `json:"period_start" bson:"period_start"`
	PeriodEnd     time.Time `json:"period_end" bson:"period_end"`
	EpisodeCount  int       `json:"episode_count" bson:"episode_count"`
	AvgScore      float64   `json:"avg_score" bson:"avg_score"`
	SuccessRate   float64   `json:"success_rate" bson:"success_rate"`
	ScoreDelta    float64   `json:"score_delta" bson:"score_delta"`
	Velocity      float64   `json:"velocity" bson:"velocity"`
	Acceleration  float64   `json:"acceleration" bson:"acceleration"`
	MaturityScore float64   `json:"maturity_score" bson:"maturity_score"`
	MaturityLevel string    `json:"maturity_level" bson:"maturity_level"`
	WindowCount   int       `json:"window_count" bson:"window_count"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// LearningCurvePoint is one weekly window of one (agent, action type) pair.
// Points are persisted independently, never upserted.
type LearningCurvePoint struct {
	ID            string    `json:"id" bson:"_id"`
	OrgID         string    `json:"org_id" bson:"org_id"`
	AgentID       string    `json:"agent_id" bson:"agent_id"`
	ActionType    string    `json:"action_type" bson:"action_type"`
	WindowStart   time.Time `json:"window_start" bson:"window_start"`
	WindowEnd     time.Time `json:"window_end" bson:"window_end"`
	EpisodeCount  int       `json:"episode_count" bson:"episode_count"`
	AvgScore      float64   `json:"avg_score" bson:"avg_score"`
	SuccessRate   float64   `json:"success_rate" bson:"success_rate"`
	AvgDurationMS float64   `json:"avg_duration_ms" bson:"avg_duration_ms"`
	AvgCost       float64   `json:"avg_cost" bson:"avg_cost"`
	P25Score      float64   `json:"p25_score" bson:"p25_score"`
	P75Score      float64   `json:"p75_score" bson:"p75_score"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// MaturityLevel is one tier of the maturity ladder. An agent must satisfy all
// three minimums simultaneously to hold a tier.
type MaturityLevel struct {
	Level          string  `json:"level"`
	MinEpisodes    int     `json:"min_episodes"`
	MinSuccessRate float64 `json:"min_success_rate"`
	MinAvgScore    float64 `json:"min_avg_score"`
}

// AgentLearningSummary is the per-agent block of the analytics summary, with
// the latest velocity record joined in when one exists.
type AgentLearningSummary struct {
	AgentID       string   `json:"agent_id"`
	EpisodeCount  int      `json:"episode_count"`
	AvgScore      float64  `json:"avg_score"`
	SuccessCount  int      `json:"success_count"`
	FailureCount  int      `json:"failure_count"`
	SuccessRate   float64  `json:"success_rate"`
	AvgDurationMS float64  `json:"avg_duration_ms"`
	TotalCost     float64  `json:"total_cost"`
	Velocity      *float64 `json:"velocity"`
	Acceleration  *float64 `json:"acceleration"`
	MaturityLevel string   `json:"maturity_level"`
	MaturityScore float64  `json:"maturity_score"`
}

// ActionTypeSummary aggregates episodes per action type.
type ActionTypeSummary struct {
	ActionType   string  `json:"action_type"`
	EpisodeCount int     `json:"episode_count"`
	AvgScore     float64 `json:"avg_score"`
	SuccessCount int     `json:"success_count"`
	FailureCount int     `json:"failure_count"`
	SuccessRate  float64 `json:"success_rate"`
}

// LearningSummary is the full analytics summary served to the dashboard.
type LearningSummary struct {
	Overall      OverallLearningStats     `json:"overall"`
	ByAgent      []AgentLearningSummary   `json:"by_agent"`
	ByActionType []ActionTypeSummary      `json:"by_action_type"`
	Velocity     []LearningVelocityRecord `json:"velocity"`
}

// OverallLearningStats covers the whole episode stream of an org.
type OverallLearningStats struct {
	TotalEpisodes int     `json:"total_episodes"`
	AvgScore      float64 `json:"avg_score"`
	SuccessCount  int     `json:"success_count"`
	FailureCount  int     `json:"failure_count"`
	PendingCount  int     `json:"pending_count"`
	SuccessRate   float64 `json:"success_rate"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
	TotalCost     float64 `json:"total_cost"`
}

package model

import "time"

// Composite methods supported by scoring profiles.
const (
	MethodWeightedAverage = "weighted_average"
	MethodMinimum         = "minimum"
	MethodGeometricMean   = "geometric_mean"
)

// Profile and template statuses. Archiving flips the status; score history
// is never deleted.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Scale rule operators.
const (
	OpLT       = "lt"
	OpLTE      = "lte"
	OpGT       = "gt"
	OpGTE      = "gte"
	OpEQ       = "eq"
	OpBetween  = "between"
	OpContains = "contains"
)

// Dimension data sources.
const (
	SourceDurationMS       = "duration_ms"
	SourceCostEstimate     = "cost_estimate"
	SourceTokensTotal      = "tokens_total"
	SourceRiskScore        = "risk_score"
	SourceConfidence       = "confidence"
	SourceEvalScore        = "eval_score"
	SourceMetadataField    = "metadata_field"
	SourceCustomExpression = "custom_expression"
)

// ScoringProfile is a named bundle of weighted dimensions that turns raw
// action telemetry into one composite score. A nil ActionType matches any
// action; a set one makes the profile specific to that type.
type ScoringProfile struct {
	ID              string             `json:"id" bson:"_id"`
	OrgID           string             `json:"org_id" bson:"org_id"`
	Name            string             `json:"name" bson:"name"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	ActionType      *string            `json:"action_type,omitempty" bson:"action_type,omitempty"`
	CompositeMethod string             `json:"composite_method" bson:"composite_method"`
	Status          string             `json:"status" bson:"status"`
	Dimensions      []ScoringDimension `json:"dimensions" bson:"dimensions"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// ScoringDimension is one weighted, independently scaled measurement axis.
// A zero weight keeps the dimension in data-availability checks but removes
// it from weighted composites.
type ScoringDimension struct {
	ID          string          `json:"id" bson:"id"`
	Name        string          `json:"name" bson:"name"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	Weight      float64         `json:"weight" bson:"weight"`
	DataSource  string          `json:"data_source" bson:"data_source"`
	DataConfig  DimensionConfig `json:"data_config,omitempty" bson:"data_config,omitempty"`
	Scale       []ScaleRule     `json:"scale" bson:"scale"`
	SortOrder   int             `json:"sort_order" bson:"sort_order"`
}

// DimensionConfig carries source-specific settings. Field is the dot path
// for metadata_field sources; Expression is the restricted expression for
// custom_expression sources (a dot path, or "field op value").
type DimensionConfig struct {
	Field      string `json:"field,omitempty" bson:"field,omitempty"`
	Expression string `json:"expression,omitempty" bson:"expression,omitempty"`
}

// ScaleRule maps a raw-value match to a 0-100 score. Rules run in declared
// order and the first match wins. ValueHigh is only set for "between".
type ScaleRule struct {
	Label     string   `json:"label" bson:"label"`
	Operator  string   `json:"operator" bson:"operator"`
	Value     float64  `json:"value" bson:"value"`
	ValueHigh *float64 `json:"value_high,omitempty" bson:"value_high,omitempty"`
	Text      string   `json:"text,omitempty" bson:"text,omitempty"`
	Score     float64  `json:"score" bson:"score"`
}

// DimensionResult is the per-dimension outcome of one scoring call. Score is
// nil when the dimension had no data.
type DimensionResult struct {
	DimensionID   string      `json:"dimension_id" bson:"dimension_id"`
	DimensionName string      `json:"dimension_name" bson:"dimension_name"`
	Weight        float64     `json:"weight" bson:"weight"`
	RawValue      interface{} `json:"raw_value" bson:"raw_value"`
	Score         *float64    `json:"score" bson:"score"`
	Label         string      `json:"label" bson:"label"`
}

// ProfileScore is the append-only record of one scoring call.
type ProfileScore struct {
	ID              string            `json:"id" bson:"_id"`
	OrgID           string            `json:"org_id" bson:"org_id"`
	ProfileID       string            `json:"profile_id" bson:"profile_id"`
	ProfileName     string            `json:"profile_name,omitempty" bson:"profile_name,omitempty"`
	ActionID        string            `json:"action_id,omitempty" bson:"action_id,omitempty"`
	AgentID         string            `json:"agent_id,omitempty" bson:"agent_id,omitempty"`
	ActionType      string            `json:"action_type,omitempty" bson:"action_type,omitempty"`
	CompositeScore  float64           `json:"composite_score" bson:"composite_score"`
	CompositeMethod string            `json:"composite_method" bson:"composite_method"`
	Dimensions      []DimensionResult `json:"dimensions" bson:"dimensions"`
	ScoredAt        time.Time         `json:"scored_at" bson:"scored_at"`
}

// ProfileScoreStats summarizes the score history of one profile.
type ProfileScoreStats struct {
	TotalScores   int     `json:"total_scores" bson:"total_scores"`
	AvgScore      float64 `json:"avg_score" bson:"avg_score"`
	MinScore      float64 `json:"min_score" bson:"min_score"`
	MaxScore      float64 `json:"max_score" bson:"max_score"`
	StddevScore   float64 `json:"stddev_score" bson:"stddev_score"`
	UniqueAgents  int     `json:"unique_agents" bson:"unique_agents"`
	UniqueActions int     `json:"unique_actions" bson:"unique_actions"`
}

// BatchScoreItem is one entry of a batch scoring response: either a score or
// an error, never both.
type BatchScoreItem struct {
	ActionID string        `json:"action_id"`
	Score    *ProfileScore `json:"score,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// BatchScoreSummary reports batch-level counts separately from the items.
type BatchScoreSummary struct {
	Total    int      `json:"total"`
	Scored   int      `json:"scored"`
	AvgScore *float64 `json:"avg_score"`
}

// BatchScoreResult is the full batch scoring response.
type BatchScoreResult struct {
	Results []BatchScoreItem  `json:"results"`
	Summary BatchScoreSummary `json:"summary"`
}

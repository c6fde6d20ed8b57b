package model

import "time"

// RiskTemplate computes an automatic 0-100 risk figure for an action: a base
// value plus the deltas of every rule whose condition matches. A nil
// ActionType template applies to any action but loses to an exact match.
type RiskTemplate struct {
	ID          string     `json:"id" bson:"_id"`
	OrgID       string     `json:"org_id" bson:"org_id"`
	Name        string     `json:"name" bson:"name"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	ActionType  *string    `json:"action_type,omitempty" bson:"action_type,omitempty"`
	BaseRisk    float64    `json:"base_risk" bson:"base_risk"`
	Rules       []RiskRule `json:"rules" bson:"rules"`
	Status      string     `json:"status" bson:"status"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// RiskRule adds Add to the risk when Condition matches. Conditions use the
// "field op value" grammar; a condition that fails to parse never matches.
type RiskRule struct {
	Condition string  `json:"condition" bson:"condition"`
	Add       float64 `json:"add" bson:"add"`
}

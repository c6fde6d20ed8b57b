package model

import "time"

// ActionRecord is one unit of raw agent telemetry. Numeric fields are
// pointers: a nil field means the collector never reported it, which is
// different from a reported zero.
type ActionRecord struct {
	ID               string                 `json:"id" bson:"_id"`
	OrgID            string                 `json:"org_id" bson:"org_id"`
	AgentID          string                 `json:"agent_id" bson:"agent_id"`
	ActionType       string                 `json:"action_type" bson:"action_type"`
	RiskScore        *float64               `json:"risk_score,omitempty" bson:"risk_score,omitempty"`
	Confidence       *float64               `json:"confidence,omitempty" bson:"confidence,omitempty"`
	DurationMS       *float64               `json:"duration_ms,omitempty" bson:"duration_ms,omitempty"`
	CostEstimate     *float64               `json:"cost_estimate,omitempty" bson:"cost_estimate,omitempty"`
	PromptTokens     *float64               `json:"prompt_tokens,omitempty" bson:"prompt_tokens,omitempty"`
	CompletionTokens *float64               `json:"completion_tokens,omitempty" bson:"completion_tokens,omitempty"`
	EvalScore        *float64               `json:"eval_score,omitempty" bson:"eval_score,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt        time.Time              `json:"created_at" bson:"created_at"`
}

// Field resolves a dot-separated path against the action. Top-level names
// cover the telemetry columns; anything under "metadata." descends into the
// metadata map. Returns (nil, false) when the path does not resolve.
func (a *ActionRecord) Field(path string) (interface{}, bool) {
	switch path {
	case "id":
		return a.ID, true
	case "agent_id":
		return a.AgentID, true
	case "action_type":
		return a.ActionType, true
	case "risk_score":
		return floatField(a.RiskScore)
	case "confidence":
		return floatField(a.Confidence)
	case "duration_ms":
		return floatField(a.DurationMS)
	case "cost_estimate":
		return floatField(a.CostEstimate)
	case "prompt_tokens":
		return floatField(a.PromptTokens)
	case "completion_tokens":
		return floatField(a.CompletionTokens)
	case "eval_score":
		return floatField(a.EvalScore)
	case "metadata":
		if a.Metadata == nil {
			return nil, false
		}
		return a.Metadata, true
	}

	const prefix = "metadata."
	if len(path) > len(prefix) && path[:len(prefix)] == prefix {
		return lookupPath(a.Metadata, path[len(prefix):])
	}
	return nil, false
}

func floatField(v *float64) (interface{}, bool) {
	if v == nil {
		return nil, false
	}
	return *v, true
}

// lookupPath walks a dot-separated path through nested maps.
func lookupPath(m map[string]interface{}, path string) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	cur := interface{}(m)
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			key := path[start:i]
			node, ok := cur.(map[string]interface{})
			if !ok {
				return nil, false
			}
			val, ok := node[key]
			if !ok {
				return nil, false
			}
			cur = val
			start = i + 1
		}
	}
	return cur, true
}

// LookupMetadataPath resolves a dot path inside an arbitrary metadata map.
func LookupMetadataPath(m map[string]interface{}, path string) (interface{}, bool) {
	return lookupPath(m, path)
}

package scoring

import (
	"strings"

	"agentops/internal/model"
)

// Labels produced by ScoreValue outside of rule matches.
const (
	LabelNoData   = "no_data"
	LabelUnscaled = "unscaled"
	LabelDefault  = "default"
)

// unscaledScore is the neutral midpoint handed to dimensions with an empty
// scale, so a misconfigured dimension neither dominates nor vanishes from
// the composite.
const unscaledScore = 50.0

// ScoreValue maps a raw value through an ordered scale. Rules are tried in
// declared order and the first match wins. When nothing matches, the result
// is the lowest score declared anywhere in the scale, labeled "default" -
// ambiguous inputs score pessimistically rather than silently dropping to
// zero. A nil raw value scores as no data.
func ScoreValue(raw interface{}, scale []model.ScaleRule) (*float64, string) {
	if raw == nil {
		return nil, LabelNoData
	}
	if len(scale) == 0 {
		s := unscaledScore
		return &s, LabelUnscaled
	}

	for i := range scale {
		if ruleMatches(raw, &scale[i]) {
			s := scale[i].Score
			label := scale[i].Label
			if label == "" {
				label = "matched"
			}
			return &s, label
		}
	}

	lowest := scale[0].Score
	for _, r := range scale[1:] {
		if r.Score < lowest {
			lowest = r.Score
		}
	}
	return &lowest, LabelDefault
}

func ruleMatches(raw interface{}, rule *model.ScaleRule) bool {
	switch rule.Operator {
	case model.OpLT, model.OpLTE, model.OpGT, model.OpGTE, model.OpBetween:
		v, ok := toNumber(raw)
		if !ok {
			return false
		}
		switch rule.Operator {
		case model.OpLT:
			return v < rule.Value
		case model.OpLTE:
			return v <= rule.Value
		case model.OpGT:
			return v > rule.Value
		case model.OpGTE:
			return v >= rule.Value
		default:
			if rule.ValueHigh == nil {
				return false
			}
			return v >= rule.Value && v <= *rule.ValueHigh
		}
	case model.OpEQ:
		if rule.Text != "" {
			return literalString(raw) == rule.Text
		}
		return literalString(raw) == literalString(rule.Value)
	case model.OpContains:
		target := rule.Text
		if target == "" {
			target = literalString(rule.Value)
		}
		return strings.Contains(strings.ToLower(literalString(raw)), strings.ToLower(target))
	default:
		return false
	}
}

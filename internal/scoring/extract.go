package scoring

import (
	"agentops/internal/model"
)

// ExtractRawValue pulls the raw value a dimension measures out of an action.
// It never fails: an unknown source, a missing field, or a bad custom
// expression all come back as nil, which scores as no_data downstream.
func ExtractRawValue(action *model.ActionRecord, dim *model.ScoringDimension) interface{} {
	switch dim.DataSource {
	case model.SourceDurationMS:
		return numericOrMetadata(action, action.DurationMS, "duration_ms")
	case model.SourceCostEstimate:
		return numericOrMetadata(action, action.CostEstimate, "cost_estimate")
	case model.SourceTokensTotal:
		sum := 0.0
		if action.PromptTokens != nil {
			sum += *action.PromptTokens
		}
		if action.CompletionTokens != nil {
			sum += *action.CompletionTokens
		}
		if sum != 0 {
			return sum
		}
		if v, ok := model.LookupMetadataPath(action.Metadata, "tokens_total"); ok {
			return v
		}
		return nil
	case model.SourceRiskScore:
		if action.RiskScore != nil {
			return *action.RiskScore
		}
		return nil
	case model.SourceConfidence:
		return numericOrMetadata(action, action.Confidence, "confidence")
	case model.SourceEvalScore:
		return numericOrMetadata(action, action.EvalScore, "eval_score")
	case model.SourceMetadataField:
		if dim.DataConfig.Field == "" {
			return nil
		}
		if v, ok := model.LookupMetadataPath(action.Metadata, dim.DataConfig.Field); ok {
			return v
		}
		return nil
	case model.SourceCustomExpression:
		return evalCustomExpression(action, dim.DataConfig.Expression)
	default:
		return nil
	}
}

func numericOrMetadata(action *model.ActionRecord, field *float64, metaKey string) interface{} {
	if field != nil {
		return *field
	}
	if v, ok := model.LookupMetadataPath(action.Metadata, metaKey); ok {
		return v
	}
	return nil
}

// evalCustomExpression is the restricted replacement for the old
// arbitrary-function escape hatch. The expression is either a bare field
// path (the raw value is whatever that path resolves to) or a full
// "field op value" condition (the raw value is "true"/"false", matched by
// eq/contains scales). Nothing is executed; failures yield nil.
func evalCustomExpression(action *model.ActionRecord, expr string) interface{} {
	if expr == "" {
		return nil
	}
	if cond, err := ParseCondition(expr); err == nil {
		if cond.Eval(action) {
			return "true"
		}
		return "false"
	}
	if v, ok := action.Field(expr); ok {
		return v
	}
	return nil
}

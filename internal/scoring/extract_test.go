package scoring

import (
	"testing"

	"agentops/internal/model"
)

func TestExtractCanonicalSources(t *testing.T) {
	risk := 80.0
	conf := 0.9
	dur := 500.0
	cost := 0.012
	pt := 1200.0
	ct := 300.0
	eval := 77.0
	action := &model.ActionRecord{
		RiskScore:        &risk,
		Confidence:       &conf,
		DurationMS:       &dur,
		CostEstimate:     &cost,
		PromptTokens:     &pt,
		CompletionTokens: &ct,
		EvalScore:        &eval,
	}

	cases := []struct {
		source string
		want   float64
	}{
		{model.SourceDurationMS, 500},
		{model.SourceCostEstimate, 0.012},
		{model.SourceTokensTotal, 1500},
		{model.SourceRiskScore, 80},
		{model.SourceConfidence, 0.9},
		{model.SourceEvalScore, 77},
	}
	for _, c := range cases {
		dim := &model.ScoringDimension{DataSource: c.source}
		got := ExtractRawValue(action, dim)
		if got != c.want {
			t.Errorf("source %s: got %v, want %v", c.source, got, c.want)
		}
	}
}

func TestExtractMetadataFallbacks(t *testing.T) {
	action := &model.ActionRecord{
		Metadata: map[string]interface{}{
			"duration_ms":  2500.0,
			"tokens_total": 900.0,
		},
	}

	dim := &model.ScoringDimension{DataSource: model.SourceDurationMS}
	if got := ExtractRawValue(action, dim); got != 2500.0 {
		t.Errorf("expected metadata fallback 2500, got %v", got)
	}

	dim = &model.ScoringDimension{DataSource: model.SourceTokensTotal}
	if got := ExtractRawValue(action, dim); got != 900.0 {
		t.Errorf("expected tokens_total metadata fallback 900, got %v", got)
	}
}

func TestExtractMissingIsNil(t *testing.T) {
	action := &model.ActionRecord{}
	for _, source := range []string{
		model.SourceDurationMS, model.SourceCostEstimate, model.SourceTokensTotal,
		model.SourceRiskScore, model.SourceConfidence, model.SourceEvalScore,
	} {
		dim := &model.ScoringDimension{DataSource: source}
		if got := ExtractRawValue(action, dim); got != nil {
			t.Errorf("source %s on empty action: got %v, want nil", source, got)
		}
	}
}

func TestExtractMetadataField(t *testing.T) {
	action := &model.ActionRecord{
		Metadata: map[string]interface{}{
			"result": map[string]interface{}{"latency": 42.0},
		},
	}

	dim := &model.ScoringDimension{
		DataSource: model.SourceMetadataField,
		DataConfig: model.DimensionConfig{Field: "result.latency"},
	}
	if got := ExtractRawValue(action, dim); got != 42.0 {
		t.Errorf("expected nested metadata 42, got %v", got)
	}

	dim.DataConfig.Field = "result.missing.deeper"
	if got := ExtractRawValue(action, dim); got != nil {
		t.Errorf("expected nil for missing path, got %v", got)
	}

	dim.DataConfig.Field = ""
	if got := ExtractRawValue(action, dim); got != nil {
		t.Errorf("expected nil for unconfigured field, got %v", got)
	}
}

func TestExtractCustomExpression(t *testing.T) {
	risk := 30.0
	action := &model.ActionRecord{
		ActionType: "deploy",
		RiskScore:  &risk,
		Metadata:   map[string]interface{}{"latency": 88.0},
	}

	// Bare path form yields the value itself.
	dim := &model.ScoringDimension{
		DataSource: model.SourceCustomExpression,
		DataConfig: model.DimensionConfig{Expression: "metadata.latency"},
	}
	if got := ExtractRawValue(action, dim); got != 88.0 {
		t.Errorf("expected bare-path expression to yield 88, got %v", got)
	}

	// Condition form yields "true"/"false".
	dim.DataConfig.Expression = "action_type == 'deploy'"
	if got := ExtractRawValue(action, dim); got != "true" {
		t.Errorf("expected condition expression to yield \"true\", got %v", got)
	}
	dim.DataConfig.Expression = "risk_score > 50"
	if got := ExtractRawValue(action, dim); got != "false" {
		t.Errorf("expected condition expression to yield \"false\", got %v", got)
	}

	// Garbage degrades to no data, never an error.
	dim.DataConfig.Expression = "not a real path or condition"
	if got := ExtractRawValue(action, dim); got != nil {
		t.Errorf("expected nil for unusable expression, got %v", got)
	}
	dim.DataConfig.Expression = ""
	if got := ExtractRawValue(action, dim); got != nil {
		t.Errorf("expected nil for empty expression, got %v", got)
	}
}

func TestExtractUnknownSource(t *testing.T) {
	dim := &model.ScoringDimension{DataSource: "made_up"}
	if got := ExtractRawValue(&model.ActionRecord{}, dim); got != nil {
		t.Errorf("expected nil for unknown source, got %v", got)
	}
}

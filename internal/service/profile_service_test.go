package service

import (
	"errors"
	"testing"

	"agentops/internal/model"
)

func validTestProfile() *model.ScoringProfile {
	return &model.ScoringProfile{
		Name:            "latency",
		CompositeMethod: model.MethodWeightedAverage,
		Dimensions: []model.ScoringDimension{
			{
				Name:       "speed",
				Weight:     1,
				DataSource: model.SourceDurationMS,
				Scale: []model.ScaleRule{
					{Label: "fast", Operator: model.OpLT, Value: 1000, Score: 100},
				},
			},
		},
	}
}

func TestValidateProfileAccepts(t *testing.T) {
	if err := validateProfile(validTestProfile()); err != nil {
		t.Errorf("expected valid profile, got %v", err)
	}
}

func TestValidateProfileRejectsUnknownMethod(t *testing.T) {
	p := validTestProfile()
	p.CompositeMethod = "harmonic_mean"
	if err := validateProfile(p); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestValidateProfileRejectsNoDimensions(t *testing.T) {
	p := validTestProfile()
	p.Dimensions = nil
	if err := validateProfile(p); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestValidateProfileRejectsNegativeWeight(t *testing.T) {
	p := validTestProfile()
	p.Dimensions[0].Weight = -1
	if err := validateProfile(p); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestValidateProfileRejectsScoreOutOfRange(t *testing.T) {
	p := validTestProfile()
	p.Dimensions[0].Scale[0].Score = 150
	if err := validateProfile(p); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestValidateProfileRequiresBetweenBounds(t *testing.T) {
	p := validTestProfile()
	p.Dimensions[0].Scale[0] = model.ScaleRule{
		Label: "mid", Operator: model.OpBetween, Value: 10, Score: 50,
	}
	if err := validateProfile(p); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile for missing value_high, got %v", err)
	}

	high := 5.0
	p.Dimensions[0].Scale[0].ValueHigh = &high
	if err := validateProfile(p); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile for inverted bounds, got %v", err)
	}
}

func TestValidateProfileRequiresSourceConfig(t *testing.T) {
	p := validTestProfile()
	p.Dimensions[0].DataSource = model.SourceMetadataField
	if err := validateProfile(p); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile for metadata_field without field, got %v", err)
	}

	p.Dimensions[0].DataSource = model.SourceCustomExpression
	if err := validateProfile(p); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile for custom_expression without expression, got %v", err)
	}
}

func TestValidateTemplate(t *testing.T) {
	tmpl := &model.RiskTemplate{
		Name:     "guardrails",
		BaseRisk: 10,
		Rules:    []model.RiskRule{{Condition: "metadata.environment == 'production'", Add: 25}},
	}
	if err := validateTemplate(tmpl); err != nil {
		t.Errorf("expected valid template, got %v", err)
	}

	tmpl.BaseRisk = 120
	if err := validateTemplate(tmpl); !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("expected ErrInvalidTemplate for base risk out of range, got %v", err)
	}

	tmpl.BaseRisk = 10
	tmpl.Rules = append(tmpl.Rules, model.RiskRule{Add: 5})
	if err := validateTemplate(tmpl); !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("expected ErrInvalidTemplate for empty condition, got %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"agentops/internal/model"
	"agentops/internal/repository"
)

var (
	ErrProfileNotFound = errors.New("scoring profile not found")
	ErrInvalidProfile  = errors.New("invalid scoring profile")
)

var validMethods = map[string]bool{
	model.MethodWeightedAverage: true,
	model.MethodMinimum:         true,
	model.MethodGeometricMean:   true,
}

var validOperators = map[string]bool{
	model.OpLT:       true,
	model.OpLTE:      true,
	model.OpGT:       true,
	model.OpGTE:      true,
	model.OpEQ:       true,
	model.OpBetween:  true,
	model.OpContains: true,
}

var validSources = map[string]bool{
	model.SourceDurationMS:       true,
	model.SourceCostEstimate:     true,
	model.SourceTokensTotal:      true,
	model.SourceRiskScore:        true,
	model.SourceConfidence:       true,
	model.SourceEvalScore:        true,
	model.SourceMetadataField:    true,
	model.SourceCustomExpression: true,
}

// ProfileService manages scoring profile definitions
type ProfileService struct {
	profileRepo repository.ProfileRepo
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.ProfileRepo) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// Create validates and stores a new profile
func (s *ProfileService) Create(ctx context.Context, orgID string, profile *model.ScoringProfile) (*model.ScoringProfile, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	profile.ID = "sp_" + uuid.New().String()[:8]
	profile.OrgID = orgID
	if profile.Status == "" {
		profile.Status = model.StatusActive
	}
	for i := range profile.Dimensions {
		if profile.Dimensions[i].ID == "" {
			profile.Dimensions[i].ID = "sd_" + uuid.New().String()[:8]
		}
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Get returns one profile or ErrProfileNotFound
func (s *ProfileService) Get(ctx context.Context, orgID, id string) (*model.ScoringProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// List returns profiles, optionally filtered by status
func (s *ProfileService) List(ctx context.Context, orgID, status string) ([]*model.ScoringProfile, error) {
	return s.profileRepo.List(ctx, orgID, status)
}

// Update validates and replaces an existing profile
func (s *ProfileService) Update(ctx context.Context, orgID, id string, profile *model.ScoringProfile) (*model.ScoringProfile, error) {
	existing, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	profile.ID = existing.ID
	profile.OrgID = existing.OrgID
	profile.CreatedAt = existing.CreatedAt
	if profile.Status == "" {
		profile.Status = existing.Status
	}
	for i := range profile.Dimensions {
		if profile.Dimensions[i].ID == "" {
			profile.Dimensions[i].ID = "sd_" + uuid.New().String()[:8]
		}
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Archive retires a profile without touching its score history
func (s *ProfileService) Archive(ctx context.Context, orgID, id string) error {
	if _, err := s.Get(ctx, orgID, id); err != nil {
		return err
	}
	return s.profileRepo.SetStatus(ctx, orgID, id, model.StatusArchived)
}

// Activate restores an archived profile
func (s *ProfileService) Activate(ctx context.Context, orgID, id string) error {
	if _, err := s.Get(ctx, orgID, id); err != nil {
		return err
	}
	return s.profileRepo.SetStatus(ctx, orgID, id, model.StatusActive)
}

func validateProfile(profile *model.ScoringProfile) error {
	if profile.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if !validMethods[profile.CompositeMethod] {
		return fmt.Errorf("%w: unknown composite method %q", ErrInvalidProfile, profile.CompositeMethod)
	}
	if len(profile.Dimensions) == 0 {
		return fmt.Errorf("%w: at least one dimension is required", ErrInvalidProfile)
	}

	for i, dim := range profile.Dimensions {
		if dim.Name == "" {
			return fmt.Errorf("%w: dimension %d has no name", ErrInvalidProfile, i)
		}
		if dim.Weight < 0 {
			return fmt.Errorf("%w: dimension %q has negative weight", ErrInvalidProfile, dim.Name)
		}
		if !validSources[dim.DataSource] {
			return fmt.Errorf("%w: dimension %q has unknown data source %q", ErrInvalidProfile, dim.Name, dim.DataSource)
		}
		if dim.DataSource == model.SourceMetadataField && dim.DataConfig.Field == "" {
			return fmt.Errorf("%w: dimension %q needs data_config.field", ErrInvalidProfile, dim.Name)
		}
		if dim.DataSource == model.SourceCustomExpression && dim.DataConfig.Expression == "" {
			return fmt.Errorf("%w: dimension %q needs data_config.expression", ErrInvalidProfile, dim.Name)
		}

		for j, rule := range dim.Scale {
			if !validOperators[rule.Operator] {
				return fmt.Errorf("%w: dimension %q rule %d has unknown operator %q", ErrInvalidProfile, dim.Name, j, rule.Operator)
			}
			if rule.Score < 0 || rule.Score > 100 {
				return fmt.Errorf("%w: dimension %q rule %d score must be 0-100", ErrInvalidProfile, dim.Name, j)
			}
			if rule.Operator == model.OpBetween {
				if rule.ValueHigh == nil {
					return fmt.Errorf("%w: dimension %q rule %d needs value_high", ErrInvalidProfile, dim.Name, j)
				}
				if *rule.ValueHigh < rule.Value {
					return fmt.Errorf("%w: dimension %q rule %d has value_high below value", ErrInvalidProfile, dim.Name, j)
				}
			}
		}
	}
	return nil
}

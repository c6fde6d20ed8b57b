package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"agentops/internal/model"
	"agentops/internal/repository"
	"agentops/internal/scoring"
)

var (
	ErrTemplateNotFound = errors.New("risk template not found")
	ErrInvalidTemplate  = errors.New("invalid risk template")
)

// RiskService manages risk templates and computes automatic risk figures
type RiskService struct {
	riskRepo   repository.RiskRepo
	actionRepo repository.ActionRepo
}

// NewRiskService creates a new risk service
func NewRiskService(riskRepo repository.RiskRepo, actionRepo repository.ActionRepo) *RiskService {
	return &RiskService{riskRepo: riskRepo, actionRepo: actionRepo}
}

// Create validates and stores a new template
func (s *RiskService) Create(ctx context.Context, orgID string, template *model.RiskTemplate) (*model.RiskTemplate, error) {
	if err := validateTemplate(template); err != nil {
		return nil, err
	}

	template.ID = "rt_" + uuid.New().String()[:8]
	template.OrgID = orgID
	if template.Status == "" {
		template.Status = model.StatusActive
	}

	if err := s.riskRepo.Create(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// Get returns one template or ErrTemplateNotFound
func (s *RiskService) Get(ctx context.Context, orgID, id string) (*model.RiskTemplate, error) {
	template, err := s.riskRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}
	return template, nil
}

// List returns templates, optionally filtered by status
func (s *RiskService) List(ctx context.Context, orgID, status string) ([]*model.RiskTemplate, error) {
	return s.riskRepo.List(ctx, orgID, status)
}

// Update validates and replaces an existing template
func (s *RiskService) Update(ctx context.Context, orgID, id string, template *model.RiskTemplate) (*model.RiskTemplate, error) {
	existing, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if err := validateTemplate(template); err != nil {
		return nil, err
	}

	template.ID = existing.ID
	template.OrgID = existing.OrgID
	template.CreatedAt = existing.CreatedAt
	if template.Status == "" {
		template.Status = existing.Status
	}

	if err := s.riskRepo.Update(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// Archive retires a template
func (s *RiskService) Archive(ctx context.Context, orgID, id string) error {
	if _, err := s.Get(ctx, orgID, id); err != nil {
		return err
	}
	return s.riskRepo.SetStatus(ctx, orgID, id, model.StatusArchived)
}

// ComputeForAction computes automatic risk for a stored action. Returns nil
// when no active template covers the action type.
func (s *RiskService) ComputeForAction(ctx context.Context, orgID, actionID string) (*float64, error) {
	action, err := s.actionRepo.GetByID(ctx, orgID, actionID)
	if err != nil {
		return nil, err
	}
	if action == nil {
		return nil, ErrActionNotFound
	}
	return s.compute(ctx, orgID, action)
}

// ComputeInline computes automatic risk for an unsaved action payload
func (s *RiskService) ComputeInline(ctx context.Context, orgID string, action *model.ActionRecord) (*float64, error) {
	return s.compute(ctx, orgID, action)
}

func (s *RiskService) compute(ctx context.Context, orgID string, action *model.ActionRecord) (*float64, error) {
	templates, err := s.riskRepo.ListActive(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return scoring.ComputeAutoRisk(action, templates), nil
}

func validateTemplate(template *model.RiskTemplate) error {
	if template.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTemplate)
	}
	if template.BaseRisk < 0 || template.BaseRisk > 100 {
		return fmt.Errorf("%w: base_risk must be 0-100", ErrInvalidTemplate)
	}
	for i, rule := range template.Rules {
		if rule.Condition == "" {
			return fmt.Errorf("%w: rule %d has no condition", ErrInvalidTemplate, i)
		}
	}
	return nil
}

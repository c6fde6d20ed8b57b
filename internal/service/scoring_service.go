package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"agentops/internal/config"
	"agentops/internal/model"
	"agentops/internal/repository"
	"agentops/internal/scoring"
)

var (
	ErrActionNotFound  = errors.New("action record not found")
	ErrProfileArchived = errors.New("scoring profile is archived")
	ErrBatchTooLarge   = errors.New("batch exceeds the configured limit")
	ErrNoActions       = errors.New("no actions to score")
)

// WebSocket event types pushed to org dashboards.
const (
	EventScoreRecorded = "score_recorded"
)

// ScoringService runs profiles against actions and persists the score
// history
type ScoringService struct {
	profileRepo repository.ProfileRepo
	actionRepo  repository.ActionRepo
	scoreRepo   repository.ScoreRepo
	engine      *config.EngineConfig
	broadcaster Broadcaster
}

// NewScoringService creates a new scoring service
func NewScoringService(profileRepo repository.ProfileRepo, actionRepo repository.ActionRepo, scoreRepo repository.ScoreRepo, engine *config.EngineConfig) *ScoringService {
	return &ScoringService{
		profileRepo: profileRepo,
		actionRepo:  actionRepo,
		scoreRepo:   scoreRepo,
		engine:      engine,
	}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *ScoringService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// RecordAction persists one raw telemetry record
func (s *ScoringService) RecordAction(ctx context.Context, orgID string, action *model.ActionRecord) (*model.ActionRecord, error) {
	if action.AgentID == "" {
		return nil, fmt.Errorf("agent_id is required")
	}
	if action.ID == "" {
		action.ID = "ar_" + uuid.New().String()[:8]
	}
	action.OrgID = orgID

	if err := s.actionRepo.Create(ctx, action); err != nil {
		return nil, err
	}
	return action, nil
}

// ScoreAction scores one action against one profile and appends the result
// to the score history. The action is either referenced by ID or supplied
// inline, in which case it is persisted first.
func (s *ScoringService) ScoreAction(ctx context.Context, orgID, profileID, actionID string, inline *model.ActionRecord) (*model.ProfileScore, error) {
	profile, err := s.activeProfile(ctx, orgID, profileID)
	if err != nil {
		return nil, err
	}

	action, err := s.resolveAction(ctx, orgID, actionID, inline)
	if err != nil {
		return nil, err
	}

	score, err := scoring.ScoreAction(profile, action)
	if err != nil {
		return nil, err
	}
	score.ID = "ps_" + uuid.New().String()[:8]
	score.OrgID = orgID

	if err := s.scoreRepo.Create(ctx, score); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToOrg(orgID, EventScoreRecorded, score)
	}
	return score, nil
}

// BatchScore scores many actions against one profile. Per-action failures
// are reported inline and never abort the batch. Scored items are persisted
// in one insert.
func (s *ScoringService) BatchScore(ctx context.Context, orgID, profileID string, actionIDs []string, inline []*model.ActionRecord) (*model.BatchScoreResult, error) {
	profile, err := s.activeProfile(ctx, orgID, profileID)
	if err != nil {
		return nil, err
	}

	total := len(actionIDs) + len(inline)
	if total == 0 {
		return nil, ErrNoActions
	}
	if total > s.engine.MaxBatchSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, total, s.engine.MaxBatchSize)
	}

	actions := make([]*model.ActionRecord, 0, total)
	if len(actionIDs) > 0 {
		fetched, err := s.actionRepo.GetByIDs(ctx, orgID, actionIDs)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*model.ActionRecord, len(fetched))
		for _, a := range fetched {
			byID[a.ID] = a
		}
		// Preserve request order; missing IDs surface as inline errors.
		for _, id := range actionIDs {
			if a, ok := byID[id]; ok {
				actions = append(actions, a)
			} else {
				actions = append(actions, &model.ActionRecord{ID: id})
			}
		}
	}
	for _, a := range inline {
		if a.ID == "" {
			a.ID = "ar_" + uuid.New().String()[:8]
		}
		a.OrgID = orgID
		actions = append(actions, a)
	}

	result := scoring.BatchScore(profile, actions)

	var persisted []*model.ProfileScore
	for i := range result.Results {
		if sc := result.Results[i].Score; sc != nil {
			sc.ID = "ps_" + uuid.New().String()[:8]
			sc.OrgID = orgID
			persisted = append(persisted, sc)
		}
	}
	if err := s.scoreRepo.CreateMany(ctx, persisted); err != nil {
		return nil, err
	}

	if s.broadcaster != nil && len(persisted) > 0 {
		s.broadcaster.BroadcastToOrg(orgID, EventScoreRecorded, result.Summary)
	}
	return result, nil
}

// ListScores returns recent scores for a profile
func (s *ScoringService) ListScores(ctx context.Context, orgID, profileID string, limit int64) ([]*model.ProfileScore, error) {
	return s.scoreRepo.ListByProfile(ctx, orgID, profileID, limit)
}

// ListAgentScores returns recent scores for an agent across profiles
func (s *ScoringService) ListAgentScores(ctx context.Context, orgID, agentID string, limit int64) ([]*model.ProfileScore, error) {
	return s.scoreRepo.ListByAgent(ctx, orgID, agentID, limit)
}

// ScoreStats summarizes a profile's score history
func (s *ScoringService) ScoreStats(ctx context.Context, orgID, profileID string) (*model.ProfileScoreStats, error) {
	if _, err := s.activeProfile(ctx, orgID, profileID); err != nil && !errors.Is(err, ErrProfileArchived) {
		return nil, err
	}
	return s.scoreRepo.Stats(ctx, orgID, profileID)
}

func (s *ScoringService) activeProfile(ctx context.Context, orgID, profileID string) (*model.ScoringProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, orgID, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	if profile.Status != model.StatusActive {
		return profile, ErrProfileArchived
	}
	return profile, nil
}

func (s *ScoringService) resolveAction(ctx context.Context, orgID, actionID string, inline *model.ActionRecord) (*model.ActionRecord, error) {
	if inline != nil {
		return s.RecordAction(ctx, orgID, inline)
	}
	if actionID == "" {
		return nil, ErrActionNotFound
	}
	action, err := s.actionRepo.GetByID(ctx, orgID, actionID)
	if err != nil {
		return nil, err
	}
	if action == nil {
		return nil, ErrActionNotFound
	}
	return action, nil
}

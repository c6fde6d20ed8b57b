package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"agentops/internal/analytics"
	"agentops/internal/cache"
	"agentops/internal/config"
	"agentops/internal/model"
	"agentops/internal/repository"
)

// BackfillResult reports what one backfill run did
type BackfillResult struct {
	Scanned   int `json:"scanned"`
	Created   int `json:"created"`
	Refreshed int `json:"refreshed"`
	Skipped   int `json:"skipped"`
}

// BackfillService derives learning episodes from the raw action history so
// analytics can run for agents whose collectors never emit episodes
// directly. Episodes are keyed by source action, so reruns refresh instead
// of duplicating.
type BackfillService struct {
	actionRepo     repository.ActionRepo
	episodeRepo    repository.EpisodeRepo
	analyticsCache cache.AnalyticsCache
	engine         *config.EngineConfig
}

// NewBackfillService creates a new backfill service
func NewBackfillService(actionRepo repository.ActionRepo, episodeRepo repository.EpisodeRepo, analyticsCache cache.AnalyticsCache, engine *config.EngineConfig) *BackfillService {
	return &BackfillService{
		actionRepo:     actionRepo,
		episodeRepo:    episodeRepo,
		analyticsCache: analyticsCache,
		engine:         engine,
	}
}

// Run converts recent actions into episodes
func (s *BackfillService) Run(ctx context.Context, orgID string, lookbackDays int) (*BackfillResult, error) {
	if lookbackDays <= 0 {
		lookbackDays = s.engine.BackfillLookbackDays
	}
	since := time.Now().AddDate(0, 0, -lookbackDays)

	actions, err := s.actionRepo.ListRecent(ctx, orgID, "", since, int64(s.engine.BackfillMaxActions))
	if err != nil {
		return nil, err
	}

	result := &BackfillResult{Scanned: len(actions)}
	for _, action := range actions {
		if action.AgentID == "" {
			result.Skipped++
			continue
		}

		score, outcome := analytics.ScoreEpisode(action)
		episode := &model.LearningEpisode{
			ID:           "le_" + uuid.New().String()[:8],
			OrgID:        orgID,
			AgentID:      action.AgentID,
			ActionType:   action.ActionType,
			Score:        score,
			OutcomeLabel: outcome,
			SourceID:     action.ID,
			CreatedAt:    action.CreatedAt,
		}
		if action.DurationMS != nil {
			episode.DurationMS = *action.DurationMS
		}
		if action.CostEstimate != nil {
			episode.CostEstimate = *action.CostEstimate
		}

		created, err := s.episodeRepo.UpsertBySource(ctx, episode)
		if err != nil {
			return nil, err
		}
		if created {
			result.Created++
		} else {
			result.Refreshed++
		}
	}

	if result.Created > 0 || result.Refreshed > 0 {
		if err := s.analyticsCache.InvalidateSummary(ctx, orgID); err != nil {
			log.Printf("summary invalidation failed for org %s: %v", orgID, err)
		}
	}

	log.Printf("backfill for org %s: scanned=%d created=%d refreshed=%d skipped=%d",
		orgID, result.Scanned, result.Created, result.Refreshed, result.Skipped)
	return result, nil
}

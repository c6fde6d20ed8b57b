package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"agentops/internal/analytics"
	"agentops/internal/cache"
	"agentops/internal/config"
	"agentops/internal/model"
	"agentops/internal/repository"
)

// EventVelocityComputed is pushed after each per-agent velocity run.
const EventVelocityComputed = "velocity_computed"

var ErrInvalidEpisode = errors.New("invalid learning episode")

// LearningService runs velocity, curve, and maturity analytics over the
// episode stream and keeps the Redis snapshots fresh
type LearningService struct {
	episodeRepo    repository.EpisodeRepo
	learningRepo   repository.LearningRepo
	analyticsCache cache.AnalyticsCache
	ranking        cache.RankingCache
	engine         *config.EngineConfig
	broadcaster    Broadcaster
}

// NewLearningService creates a new learning service
func NewLearningService(episodeRepo repository.EpisodeRepo, learningRepo repository.LearningRepo, analyticsCache cache.AnalyticsCache, ranking cache.RankingCache, engine *config.EngineConfig) *LearningService {
	return &LearningService{
		episodeRepo:    episodeRepo,
		learningRepo:   learningRepo,
		analyticsCache: analyticsCache,
		ranking:        ranking,
		engine:         engine,
	}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *LearningService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// RecordEpisode appends one episode to the stream
func (s *LearningService) RecordEpisode(ctx context.Context, orgID string, episode *model.LearningEpisode) (*model.LearningEpisode, error) {
	if episode.AgentID == "" {
		return nil, fmt.Errorf("%w: agent_id is required", ErrInvalidEpisode)
	}
	if episode.Score < 0 || episode.Score > 100 {
		return nil, fmt.Errorf("%w: score must be 0-100", ErrInvalidEpisode)
	}
	switch episode.OutcomeLabel {
	case model.OutcomeSuccess, model.OutcomeFailure, model.OutcomePending:
	default:
		return nil, fmt.Errorf("%w: unknown outcome %q", ErrInvalidEpisode, episode.OutcomeLabel)
	}

	episode.ID = "le_" + uuid.New().String()[:8]
	episode.OrgID = orgID

	if err := s.episodeRepo.Create(ctx, episode); err != nil {
		return nil, err
	}

	if err := s.analyticsCache.InvalidateSummary(ctx, orgID); err != nil {
		log.Printf("summary invalidation failed for org %s: %v", orgID, err)
	}
	return episode, nil
}

// ComputeVelocity runs one velocity computation for one agent and persists
// the record, refreshes the Redis snapshot and the maturity ranking, and
// broadcasts the result.
func (s *LearningService) ComputeVelocity(ctx context.Context, orgID, agentID, period string, lookbackDays int) (*model.LearningVelocityRecord, error) {
	if period == "" {
		period = model.PeriodDaily
	}
	if lookbackDays <= 0 {
		lookbackDays = s.engine.VelocityLookbackDays
	}
	since := time.Now().AddDate(0, 0, -lookbackDays)

	episodes, err := s.episodeRepo.ListByAgent(ctx, orgID, agentID, since)
	if err != nil {
		return nil, err
	}

	record, err := analytics.ComputeVelocity(episodes, period, time.Now())
	if err != nil {
		return nil, err
	}

	level, maturityScore := analytics.ClassifyMaturity(record.EpisodeCount, record.SuccessRate, record.AvgScore)
	record.MaturityLevel = level
	record.MaturityScore = maturityScore
	record.ID = "lv_" + uuid.New().String()[:8]
	record.OrgID = orgID
	record.AgentID = agentID

	if err := s.learningRepo.CreateVelocity(ctx, record); err != nil {
		return nil, err
	}

	if err := s.analyticsCache.SetVelocity(ctx, record); err != nil {
		log.Printf("velocity cache write failed for agent %s: %v", agentID, err)
	}
	if err := s.ranking.UpdateScore(ctx, orgID, agentID, maturityScore); err != nil {
		log.Printf("ranking update failed for agent %s: %v", agentID, err)
	}
	if err := s.analyticsCache.InvalidateSummary(ctx, orgID); err != nil {
		log.Printf("summary invalidation failed for org %s: %v", orgID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToOrg(orgID, EventVelocityComputed, record)
	}
	return record, nil
}

// ComputeAllVelocity runs velocity for every agent with recent episodes.
// Agents with too little history are skipped, not errors.
func (s *LearningService) ComputeAllVelocity(ctx context.Context, orgID, period string, lookbackDays int) ([]*model.LearningVelocityRecord, error) {
	if lookbackDays <= 0 {
		lookbackDays = s.engine.VelocityLookbackDays
	}
	since := time.Now().AddDate(0, 0, -lookbackDays)

	agentIDs, err := s.episodeRepo.AgentIDs(ctx, orgID, since)
	if err != nil {
		return nil, err
	}

	records := make([]*model.LearningVelocityRecord, 0, len(agentIDs))
	for _, agentID := range agentIDs {
		record, err := s.ComputeVelocity(ctx, orgID, agentID, period, lookbackDays)
		if errors.Is(err, analytics.ErrTooFewEpisodes) || errors.Is(err, analytics.ErrTooFewWindows) {
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// ComputeCurves recomputes an agent's learning curves and appends the
// resulting points
func (s *LearningService) ComputeCurves(ctx context.Context, orgID, agentID string, lookbackDays int) ([]*model.LearningCurvePoint, error) {
	if lookbackDays <= 0 {
		lookbackDays = s.engine.VelocityLookbackDays
	}
	since := time.Now().AddDate(0, 0, -lookbackDays)

	episodes, err := s.episodeRepo.ListByAgent(ctx, orgID, agentID, since)
	if err != nil {
		return nil, err
	}

	points := analytics.ComputeLearningCurves(episodes, time.Now())
	for _, p := range points {
		p.ID = "lc_" + uuid.New().String()[:8]
		p.OrgID = orgID
	}

	if err := s.learningRepo.CreateCurvePoints(ctx, points); err != nil {
		return nil, err
	}
	return points, nil
}

// CurveHistory returns stored curve points
func (s *LearningService) CurveHistory(ctx context.Context, orgID, agentID, actionType string) ([]*model.LearningCurvePoint, error) {
	return s.learningRepo.ListCurvePoints(ctx, orgID, agentID, actionType)
}

// VelocityHistory returns stored velocity records, newest first
func (s *LearningService) VelocityHistory(ctx context.Context, orgID, agentID string, limit int64) ([]*model.LearningVelocityRecord, error) {
	return s.learningRepo.ListVelocity(ctx, orgID, agentID, limit)
}

// LatestVelocity returns the most recent velocity record for an agent,
// serving from Redis when the snapshot is warm
func (s *LearningService) LatestVelocity(ctx context.Context, orgID, agentID string) (*model.LearningVelocityRecord, error) {
	cached, err := s.analyticsCache.GetVelocity(ctx, orgID, agentID)
	if err != nil {
		log.Printf("velocity cache read failed for agent %s: %v", agentID, err)
	}
	if cached != nil {
		return cached, nil
	}
	return s.learningRepo.LatestVelocity(ctx, orgID, agentID, "")
}

// MaturityLevels returns the maturity ladder
func (s *LearningService) MaturityLevels() []model.MaturityLevel {
	return analytics.MaturityLevels()
}

// Ranking returns the top agents by continuous maturity score
func (s *LearningService) Ranking(ctx context.Context, orgID string, limit int) ([]cache.RankingEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.ranking.GetTop(ctx, orgID, limit)
}

// Summary builds the org-wide learning summary, serving from Redis when the
// snapshot is warm
func (s *LearningService) Summary(ctx context.Context, orgID string, lookbackDays int) (*model.LearningSummary, error) {
	cached, err := s.analyticsCache.GetSummary(ctx, orgID)
	if err != nil {
		log.Printf("summary cache read failed for org %s: %v", orgID, err)
	}
	if cached != nil {
		return cached, nil
	}

	if lookbackDays <= 0 {
		lookbackDays = s.engine.VelocityLookbackDays
	}
	since := time.Now().AddDate(0, 0, -lookbackDays)

	episodes, err := s.episodeRepo.ListByOrg(ctx, orgID, since)
	if err != nil {
		return nil, err
	}

	summary := s.buildSummary(ctx, orgID, episodes)

	if err := s.analyticsCache.SetSummary(ctx, orgID, summary); err != nil {
		log.Printf("summary cache write failed for org %s: %v", orgID, err)
	}
	return summary, nil
}

func (s *LearningService) buildSummary(ctx context.Context, orgID string, episodes []*model.LearningEpisode) *model.LearningSummary {
	summary := &model.LearningSummary{
		ByAgent:      []model.AgentLearningSummary{},
		ByActionType: []model.ActionTypeSummary{},
		Velocity:     []model.LearningVelocityRecord{},
	}

	byAgent := make(map[string][]*model.LearningEpisode)
	byType := make(map[string][]*model.LearningEpisode)
	for _, ep := range episodes {
		byAgent[ep.AgentID] = append(byAgent[ep.AgentID], ep)
		if ep.ActionType != "" {
			byType[ep.ActionType] = append(byType[ep.ActionType], ep)
		}
	}

	summary.Overall = overallStats(episodes)

	agentIDs := make([]string, 0, len(byAgent))
	for id := range byAgent {
		agentIDs = append(agentIDs, id)
	}
	sort.Strings(agentIDs)

	for _, agentID := range agentIDs {
		group := byAgent[agentID]
		agent := agentSummary(agentID, group)

		latest, err := s.LatestVelocity(ctx, orgID, agentID)
		if err != nil {
			log.Printf("latest velocity lookup failed for agent %s: %v", agentID, err)
		}
		if latest != nil {
			agent.Velocity = &latest.Velocity
			agent.Acceleration = &latest.Acceleration
			summary.Velocity = append(summary.Velocity, *latest)
		}

		summary.ByAgent = append(summary.ByAgent, agent)
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, actionType := range types {
		summary.ByActionType = append(summary.ByActionType, typeSummary(actionType, byType[actionType]))
	}

	return summary
}

func overallStats(episodes []*model.LearningEpisode) model.OverallLearningStats {
	stats := model.OverallLearningStats{TotalEpisodes: len(episodes)}
	if len(episodes) == 0 {
		return stats
	}

	scoreSum, durSum, durCount := 0.0, 0.0, 0
	for _, ep := range episodes {
		scoreSum += ep.Score
		stats.TotalCost += ep.CostEstimate
		switch ep.OutcomeLabel {
		case model.OutcomeSuccess:
			stats.SuccessCount++
		case model.OutcomeFailure:
			stats.FailureCount++
		default:
			stats.PendingCount++
		}
		if ep.DurationMS > 0 {
			durSum += ep.DurationMS
			durCount++
		}
	}

	stats.AvgScore = round3(scoreSum / float64(len(episodes)))
	stats.SuccessRate = round3(float64(stats.SuccessCount) / float64(len(episodes)))
	if durCount > 0 {
		stats.AvgDurationMS = round3(durSum / float64(durCount))
	}
	stats.TotalCost = round3(stats.TotalCost)
	return stats
}

func agentSummary(agentID string, episodes []*model.LearningEpisode) model.AgentLearningSummary {
	agent := model.AgentLearningSummary{AgentID: agentID, EpisodeCount: len(episodes)}

	scoreSum, durSum, durCount := 0.0, 0.0, 0
	for _, ep := range episodes {
		scoreSum += ep.Score
		agent.TotalCost += ep.CostEstimate
		switch ep.OutcomeLabel {
		case model.OutcomeSuccess:
			agent.SuccessCount++
		case model.OutcomeFailure:
			agent.FailureCount++
		}
		if ep.DurationMS > 0 {
			durSum += ep.DurationMS
			durCount++
		}
	}

	agent.AvgScore = round3(scoreSum / float64(len(episodes)))
	agent.SuccessRate = round3(float64(agent.SuccessCount) / float64(len(episodes)))
	if durCount > 0 {
		agent.AvgDurationMS = round3(durSum / float64(durCount))
	}
	agent.TotalCost = round3(agent.TotalCost)

	level, score := analytics.ClassifyMaturity(agent.EpisodeCount, agent.SuccessRate, agent.AvgScore)
	agent.MaturityLevel = level
	agent.MaturityScore = score
	return agent
}

func typeSummary(actionType string, episodes []*model.LearningEpisode) model.ActionTypeSummary {
	ts := model.ActionTypeSummary{ActionType: actionType, EpisodeCount: len(episodes)}

	scoreSum := 0.0
	for _, ep := range episodes {
		scoreSum += ep.Score
		switch ep.OutcomeLabel {
		case model.OutcomeSuccess:
			ts.SuccessCount++
		case model.OutcomeFailure:
			ts.FailureCount++
		}
	}

	ts.AvgScore = round3(scoreSum / float64(len(episodes)))
	ts.SuccessRate = round3(float64(ts.SuccessCount) / float64(len(episodes)))
	return ts
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

package service

import (
	"context"
	"time"

	"agentops/internal/config"
	"agentops/internal/model"
	"agentops/internal/repository"
	"agentops/internal/scoring"
)

// EventCalibrationReady is pushed when a calibration run produces usable
// suggestions.
const EventCalibrationReady = "calibration_ready"

// CalibrationService derives suggested scales and weights from the stored
// action history
type CalibrationService struct {
	actionRepo  repository.ActionRepo
	engine      *config.EngineConfig
	broadcaster Broadcaster
}

// NewCalibrationService creates a new calibration service
func NewCalibrationService(actionRepo repository.ActionRepo, engine *config.EngineConfig) *CalibrationService {
	return &CalibrationService{
		actionRepo: actionRepo,
		engine:     engine,
	}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *CalibrationService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Calibrate samples the recent history and suggests scales and weights.
// actionType narrows the sample when set; metrics defaults to the five
// canonical telemetry sources; lookbackDays defaults from the engine config.
func (s *CalibrationService) Calibrate(ctx context.Context, orgID, actionType string, metrics []string, lookbackDays int) (*model.CalibrationResult, error) {
	if lookbackDays <= 0 {
		lookbackDays = s.engine.CalibrationLookbackDays
	}
	since := time.Now().AddDate(0, 0, -lookbackDays)

	actions, err := s.actionRepo.ListRecent(ctx, orgID, actionType, since, int64(s.engine.CalibrationMaxActions))
	if err != nil {
		return nil, err
	}

	result := scoring.Calibrate(actions, metrics, lookbackDays)
	result.ActionType = actionType

	if s.broadcaster != nil && result.Status == model.CalibrationOK {
		s.broadcaster.BroadcastToOrg(orgID, EventCalibrationReady, result)
	}
	return result, nil
}

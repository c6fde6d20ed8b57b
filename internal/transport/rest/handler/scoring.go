package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"agentops/internal/model"
	"agentops/internal/scoring"
	"agentops/internal/service"
	"agentops/internal/transport/rest/middleware"
)

// ScoringHandler handles telemetry ingestion and scoring endpoints
type ScoringHandler struct {
	scoringSvc *service.ScoringService
}

// NewScoringHandler creates a new scoring handler
func NewScoringHandler(scoringSvc *service.ScoringService) *ScoringHandler {
	return &ScoringHandler{scoringSvc: scoringSvc}
}

// RecordAction handles POST /v1/actions
func (h *ScoringHandler) RecordAction(w http.ResponseWriter, r *http.Request) {
	var action model.ActionRecord
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.scoringSvc.RecordAction(r.Context(), middleware.GetOrgID(r.Context()), &action)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// scoreRequest carries either a stored action reference or an inline action.
type scoreRequest struct {
	ActionID string              `json:"action_id,omitempty"`
	Action   *model.ActionRecord `json:"action,omitempty"`
}

// Score handles POST /v1/profiles/{profileId}/score
func (h *ScoringHandler) Score(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["profileId"]

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ActionID == "" && req.Action == nil {
		writeError(w, http.StatusBadRequest, "action_id or action is required")
		return
	}

	score, err := h.scoringSvc.ScoreAction(r.Context(), middleware.GetOrgID(r.Context()), profileID, req.ActionID, req.Action)
	if err != nil {
		writeScoringError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, score)
}

// batchScoreRequest scores a mix of stored and inline actions in one call.
type batchScoreRequest struct {
	ActionIDs []string              `json:"action_ids,omitempty"`
	Actions   []*model.ActionRecord `json:"actions,omitempty"`
}

// BatchScore handles POST /v1/profiles/{profileId}/score/batch
func (h *ScoringHandler) BatchScore(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["profileId"]

	var req batchScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.scoringSvc.BatchScore(r.Context(), middleware.GetOrgID(r.Context()), profileID, req.ActionIDs, req.Actions)
	if err != nil {
		writeScoringError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// AgentScores handles GET /v1/agents/{agentId}/scores
func (h *ScoringHandler) AgentScores(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["agentId"]
	limit := parseLimit(r, 100)

	scores, err := h.scoringSvc.ListAgentScores(r.Context(), middleware.GetOrgID(r.Context()), agentID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if scores == nil {
		scores = []*model.ProfileScore{}
	}

	writeJSON(w, http.StatusOK, scores)
}

func writeScoringError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound), errors.Is(err, service.ErrActionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProfileArchived),
		errors.Is(err, service.ErrBatchTooLarge),
		errors.Is(err, service.ErrNoActions):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, scoring.ErrNoDimensions), errors.Is(err, scoring.ErrNoData):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

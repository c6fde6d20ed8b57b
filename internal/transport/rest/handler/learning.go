package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"agentops/internal/analytics"
	"agentops/internal/model"
	"agentops/internal/service"
	"agentops/internal/transport/rest/middleware"
)

// LearningHandler handles episode and learning analytics endpoints
type LearningHandler struct {
	learningSvc *service.LearningService
	backfillSvc *service.BackfillService
}

// NewLearningHandler creates a new learning handler
func NewLearningHandler(learningSvc *service.LearningService, backfillSvc *service.BackfillService) *LearningHandler {
	return &LearningHandler{learningSvc: learningSvc, backfillSvc: backfillSvc}
}

// RecordEpisode handles POST /v1/episodes
func (h *LearningHandler) RecordEpisode(w http.ResponseWriter, r *http.Request) {
	var episode model.LearningEpisode
	if err := json.NewDecoder(r.Body).Decode(&episode); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.learningSvc.RecordEpisode(r.Context(), middleware.GetOrgID(r.Context()), &episode)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEpisode) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// velocityRequest selects the window for a velocity run.
type velocityRequest struct {
	Period       string `json:"period,omitempty"`
	LookbackDays int    `json:"lookback_days,omitempty"`
}

// ComputeVelocity handles POST /v1/agents/{agentId}/velocity
func (h *LearningHandler) ComputeVelocity(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["agentId"]

	var req velocityRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	record, err := h.learningSvc.ComputeVelocity(r.Context(), middleware.GetOrgID(r.Context()), agentID, req.Period, req.LookbackDays)
	if err != nil {
		if errors.Is(err, analytics.ErrTooFewEpisodes) || errors.Is(err, analytics.ErrTooFewWindows) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// ComputeAllVelocity handles POST /v1/learning/velocity/run
func (h *LearningHandler) ComputeAllVelocity(w http.ResponseWriter, r *http.Request) {
	var req velocityRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	records, err := h.learningSvc.ComputeAllVelocity(r.Context(), middleware.GetOrgID(r.Context()), req.Period, req.LookbackDays)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// LatestVelocity handles GET /v1/agents/{agentId}/velocity
func (h *LearningHandler) LatestVelocity(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["agentId"]

	record, err := h.learningSvc.LatestVelocity(r.Context(), middleware.GetOrgID(r.Context()), agentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "no velocity record for agent")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// VelocityHistory handles GET /v1/agents/{agentId}/velocity/history
func (h *LearningHandler) VelocityHistory(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["agentId"]
	limit := parseLimit(r, 50)

	records, err := h.learningSvc.VelocityHistory(r.Context(), middleware.GetOrgID(r.Context()), agentID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []*model.LearningVelocityRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

// ComputeCurves handles POST /v1/agents/{agentId}/curves
func (h *LearningHandler) ComputeCurves(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["agentId"]

	lookbackDays := 0
	if raw := r.URL.Query().Get("lookback_days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			lookbackDays = n
		}
	}

	points, err := h.learningSvc.ComputeCurves(r.Context(), middleware.GetOrgID(r.Context()), agentID, lookbackDays)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if points == nil {
		points = []*model.LearningCurvePoint{}
	}

	writeJSON(w, http.StatusOK, points)
}

// CurveHistory handles GET /v1/agents/{agentId}/curves
func (h *LearningHandler) CurveHistory(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["agentId"]
	actionType := r.URL.Query().Get("action_type")

	points, err := h.learningSvc.CurveHistory(r.Context(), middleware.GetOrgID(r.Context()), agentID, actionType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if points == nil {
		points = []*model.LearningCurvePoint{}
	}

	writeJSON(w, http.StatusOK, points)
}

// MaturityLevels handles GET /v1/learning/maturity-levels
func (h *LearningHandler) MaturityLevels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.learningSvc.MaturityLevels())
}

// Ranking handles GET /v1/learning/ranking
func (h *LearningHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	limit := int(parseLimit(r, 20))

	entries, err := h.learningSvc.Ranking(r.Context(), middleware.GetOrgID(r.Context()), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Summary handles GET /v1/learning/summary
func (h *LearningHandler) Summary(w http.ResponseWriter, r *http.Request) {
	lookbackDays := 0
	if raw := r.URL.Query().Get("lookback_days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			lookbackDays = n
		}
	}

	summary, err := h.learningSvc.Summary(r.Context(), middleware.GetOrgID(r.Context()), lookbackDays)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// backfillRequest selects the window for an episode backfill run.
type backfillRequest struct {
	LookbackDays int `json:"lookback_days,omitempty"`
}

// Backfill handles POST /v1/learning/backfill
func (h *LearningHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	var req backfillRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	result, err := h.backfillSvc.Run(r.Context(), middleware.GetOrgID(r.Context()), req.LookbackDays)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

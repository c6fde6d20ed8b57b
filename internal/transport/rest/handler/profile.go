package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"agentops/internal/model"
	"agentops/internal/service"
	"agentops/internal/transport/rest/middleware"
)

// ProfileHandler handles scoring profile endpoints
type ProfileHandler struct {
	profileSvc *service.ProfileService
	scoringSvc *service.ScoringService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileSvc *service.ProfileService, scoringSvc *service.ScoringService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc, scoringSvc: scoringSvc}
}

// Create handles POST /v1/profiles
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var profile model.ScoringProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.profileSvc.Create(r.Context(), middleware.GetOrgID(r.Context()), &profile)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfile) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /v1/profiles
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	profiles, err := h.profileSvc.List(r.Context(), middleware.GetOrgID(r.Context()), status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profiles == nil {
		profiles = []*model.ScoringProfile{}
	}

	writeJSON(w, http.StatusOK, profiles)
}

// Get handles GET /v1/profiles/{profileId}
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["profileId"]

	profile, err := h.profileSvc.Get(r.Context(), middleware.GetOrgID(r.Context()), id)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Update handles PUT /v1/profiles/{profileId}
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["profileId"]

	var profile model.ScoringProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.profileSvc.Update(r.Context(), middleware.GetOrgID(r.Context()), id, &profile)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidProfile):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Archive handles POST /v1/profiles/{profileId}/archive
func (h *ProfileHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["profileId"]

	if err := h.profileSvc.Archive(r.Context(), middleware.GetOrgID(r.Context()), id); err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": model.StatusArchived})
}

// Activate handles POST /v1/profiles/{profileId}/activate
func (h *ProfileHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["profileId"]

	if err := h.profileSvc.Activate(r.Context(), middleware.GetOrgID(r.Context()), id); err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": model.StatusActive})
}

// Scores handles GET /v1/profiles/{profileId}/scores
func (h *ProfileHandler) Scores(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["profileId"]
	limit := parseLimit(r, 100)

	scores, err := h.scoringSvc.ListScores(r.Context(), middleware.GetOrgID(r.Context()), id, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if scores == nil {
		scores = []*model.ProfileScore{}
	}

	writeJSON(w, http.StatusOK, scores)
}

// Stats handles GET /v1/profiles/{profileId}/stats
func (h *ProfileHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["profileId"]

	stats, err := h.scoringSvc.ScoreStats(r.Context(), middleware.GetOrgID(r.Context()), id)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func parseLimit(r *http.Request, fallback int64) int64 {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

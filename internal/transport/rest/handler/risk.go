package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"agentops/internal/model"
	"agentops/internal/service"
	"agentops/internal/transport/rest/middleware"
)

// RiskHandler handles risk template endpoints
type RiskHandler struct {
	riskSvc *service.RiskService
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(riskSvc *service.RiskService) *RiskHandler {
	return &RiskHandler{riskSvc: riskSvc}
}

// Create handles POST /v1/risk-templates
func (h *RiskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var template model.RiskTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.riskSvc.Create(r.Context(), middleware.GetOrgID(r.Context()), &template)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTemplate) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /v1/risk-templates
func (h *RiskHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.riskSvc.List(r.Context(), middleware.GetOrgID(r.Context()), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if templates == nil {
		templates = []*model.RiskTemplate{}
	}

	writeJSON(w, http.StatusOK, templates)
}

// Get handles GET /v1/risk-templates/{templateId}
func (h *RiskHandler) Get(w http.ResponseWriter, r *http.Request) {
	template, err := h.riskSvc.Get(r.Context(), middleware.GetOrgID(r.Context()), mux.Vars(r)["templateId"])
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, template)
}

// Update handles PUT /v1/risk-templates/{templateId}
func (h *RiskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var template model.RiskTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.riskSvc.Update(r.Context(), middleware.GetOrgID(r.Context()), mux.Vars(r)["templateId"], &template)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidTemplate):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Archive handles POST /v1/risk-templates/{templateId}/archive
func (h *RiskHandler) Archive(w http.ResponseWriter, r *http.Request) {
	if err := h.riskSvc.Archive(r.Context(), middleware.GetOrgID(r.Context()), mux.Vars(r)["templateId"]); err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": model.StatusArchived})
}

// riskComputeRequest evaluates templates against a stored or inline action.
type riskComputeRequest struct {
	ActionID string              `json:"action_id,omitempty"`
	Action   *model.ActionRecord `json:"action,omitempty"`
}

// Compute handles POST /v1/risk/compute
func (h *RiskHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req riskComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orgID := middleware.GetOrgID(r.Context())

	var (
		risk *float64
		err  error
	)
	switch {
	case req.Action != nil:
		risk, err = h.riskSvc.ComputeInline(r.Context(), orgID, req.Action)
	case req.ActionID != "":
		risk, err = h.riskSvc.ComputeForAction(r.Context(), orgID, req.ActionID)
	default:
		writeError(w, http.StatusBadRequest, "action_id or action is required")
		return
	}
	if err != nil {
		if errors.Is(err, service.ErrActionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]*float64{"risk_score": risk})
}

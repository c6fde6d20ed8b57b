package handler

import (
	"encoding/json"
	"net/http"

	"agentops/internal/service"
	"agentops/internal/transport/rest/middleware"
)

// CalibrationHandler handles calibration endpoints
type CalibrationHandler struct {
	calibrationSvc *service.CalibrationService
}

// NewCalibrationHandler creates a new calibration handler
func NewCalibrationHandler(calibrationSvc *service.CalibrationService) *CalibrationHandler {
	return &CalibrationHandler{calibrationSvc: calibrationSvc}
}

// calibrateRequest narrows the calibration sample. All fields are optional.
type calibrateRequest struct {
	ActionType   string   `json:"action_type,omitempty"`
	Metrics      []string `json:"metrics,omitempty"`
	LookbackDays int      `json:"lookback_days,omitempty"`
}

// Calibrate handles POST /v1/calibrate
func (h *CalibrationHandler) Calibrate(w http.ResponseWriter, r *http.Request) {
	var req calibrateRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	result, err := h.calibrationSvc.Calibrate(r.Context(), middleware.GetOrgID(r.Context()), req.ActionType, req.Metrics, req.LookbackDays)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

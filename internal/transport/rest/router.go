package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"agentops/internal/service"
	"agentops/internal/transport/rest/handler"
	"agentops/internal/transport/rest/middleware"
	"agentops/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService        *service.AuthService
	ProfileService     *service.ProfileService
	ScoringService     *service.ScoringService
	RiskService        *service.RiskService
	CalibrationService *service.CalibrationService
	LearningService    *service.LearningService
	BackfillService    *service.BackfillService
	WSHub              *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	profileHandler := handler.NewProfileHandler(c.ProfileService, c.ScoringService)
	scoringHandler := handler.NewScoringHandler(c.ScoringService)
	riskHandler := handler.NewRiskHandler(c.RiskService)
	calibrationHandler := handler.NewCalibrationHandler(c.CalibrationService)
	learningHandler := handler.NewLearningHandler(c.LearningService, c.BackfillService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (public with token in query param)
	v1.HandleFunc("/ws/dashboard", wsHandler.DashboardWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Operator routes (require operator auth)
	api := v1.NewRoute().Subrouter()
	api.Use(authMW.RequireOperator)

	// Scoring profiles
	api.HandleFunc("/profiles", profileHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/profiles", profileHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/profiles/{profileId}", profileHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/profiles/{profileId}", profileHandler.Update).Methods("PUT", "OPTIONS")
	api.HandleFunc("/profiles/{profileId}/archive", profileHandler.Archive).Methods("POST", "OPTIONS")
	api.HandleFunc("/profiles/{profileId}/activate", profileHandler.Activate).Methods("POST", "OPTIONS")
	api.HandleFunc("/profiles/{profileId}/scores", profileHandler.Scores).Methods("GET", "OPTIONS")
	api.HandleFunc("/profiles/{profileId}/stats", profileHandler.Stats).Methods("GET", "OPTIONS")

	// Telemetry and scoring
	api.HandleFunc("/actions", scoringHandler.RecordAction).Methods("POST", "OPTIONS")
	api.HandleFunc("/profiles/{profileId}/score", scoringHandler.Score).Methods("POST", "OPTIONS")
	api.HandleFunc("/profiles/{profileId}/score/batch", scoringHandler.BatchScore).Methods("POST", "OPTIONS")
	api.HandleFunc("/agents/{agentId}/scores", scoringHandler.AgentScores).Methods("GET", "OPTIONS")

	// Risk templates
	api.HandleFunc("/risk-templates", riskHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/risk-templates", riskHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/risk-templates/{templateId}", riskHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/risk-templates/{templateId}", riskHandler.Update).Methods("PUT", "OPTIONS")
	api.HandleFunc("/risk-templates/{templateId}/archive", riskHandler.Archive).Methods("POST", "OPTIONS")
	api.HandleFunc("/risk/compute", riskHandler.Compute).Methods("POST", "OPTIONS")

	// Calibration
	api.HandleFunc("/calibrate", calibrationHandler.Calibrate).Methods("POST", "OPTIONS")

	// Learning analytics
	api.HandleFunc("/episodes", learningHandler.RecordEpisode).Methods("POST", "OPTIONS")
	api.HandleFunc("/agents/{agentId}/velocity", learningHandler.ComputeVelocity).Methods("POST", "OPTIONS")
	api.HandleFunc("/agents/{agentId}/velocity", learningHandler.LatestVelocity).Methods("GET", "OPTIONS")
	api.HandleFunc("/agents/{agentId}/velocity/history", learningHandler.VelocityHistory).Methods("GET", "OPTIONS")
	api.HandleFunc("/agents/{agentId}/curves", learningHandler.ComputeCurves).Methods("POST", "OPTIONS")
	api.HandleFunc("/agents/{agentId}/curves", learningHandler.CurveHistory).Methods("GET", "OPTIONS")
	api.HandleFunc("/learning/velocity/run", learningHandler.ComputeAllVelocity).Methods("POST", "OPTIONS")
	api.HandleFunc("/learning/maturity-levels", learningHandler.MaturityLevels).Methods("GET", "OPTIONS")
	api.HandleFunc("/learning/ranking", learningHandler.Ranking).Methods("GET", "OPTIONS")
	api.HandleFunc("/learning/summary", learningHandler.Summary).Methods("GET", "OPTIONS")
	api.HandleFunc("/learning/backfill", learningHandler.Backfill).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agentops/internal/cache"
	"agentops/internal/config"
	"agentops/internal/repository"
	"agentops/internal/service"
	"agentops/internal/transport/rest"
	"agentops/internal/transport/ws"
)

// @title Agent Ops Scoring API
// @version 1.0
// @description Scoring, calibration, and learning analytics for agent operations
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	log.Printf("Engine limits:")
	log.Printf("  Max batch:            %d", cfg.Engine.MaxBatchSize)
	log.Printf("  Calibration lookback: %dd (max %d actions)", cfg.Engine.CalibrationLookbackDays, cfg.Engine.CalibrationMaxActions)
	log.Printf("  Velocity lookback:    %dd", cfg.Engine.VelocityLookbackDays)
	log.Printf("  Backfill lookback:    %dd (max %d actions)", cfg.Engine.BackfillLookbackDays, cfg.Engine.BackfillMaxActions)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := cfg.RedisAddr
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	profileRepo := repository.NewProfileRepo(db)
	riskRepo := repository.NewRiskRepo(db)
	actionRepo := repository.NewActionRepo(db)
	scoreRepo := repository.NewScoreRepo(db)
	episodeRepo := repository.NewEpisodeRepo(db)
	learningRepo := repository.NewLearningRepo(db)

	// Initialize caches
	analyticsCache := cache.NewAnalyticsCache(rdb)
	ranking := cache.NewRankingCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWTSecret)
	profileSvc := service.NewProfileService(profileRepo)
	scoringSvc := service.NewScoringService(profileRepo, actionRepo, scoreRepo, cfg.Engine)
	riskSvc := service.NewRiskService(riskRepo, actionRepo)
	calibrationSvc := service.NewCalibrationService(actionRepo, cfg.Engine)
	learningSvc := service.NewLearningService(episodeRepo, learningRepo, analyticsCache, ranking, cfg.Engine)
	backfillSvc := service.NewBackfillService(actionRepo, episodeRepo, analyticsCache, cfg.Engine)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	scoringSvc.SetBroadcaster(wsHub)
	calibrationSvc.SetBroadcaster(wsHub)
	learningSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:        authSvc,
		ProfileService:     profileSvc,
		ScoringService:     scoringSvc,
		RiskService:        riskSvc,
		CalibrationService: calibrationSvc,
		LearningService:    learningSvc,
		BackfillService:    backfillSvc,
		WSHub:              wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/profiles")
		log.Println("  POST /v1/profiles/{id}/score")
		log.Println("  POST/GET /v1/risk-templates")
		log.Println("  POST /v1/calibrate")
		log.Println("  POST /v1/episodes")
		log.Println("  GET  /v1/learning/summary")
		log.Println("  WS   /v1/ws/dashboard")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

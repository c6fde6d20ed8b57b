package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agentops/internal/model"
)

func strPtr(s string) *string { return &s }

func floatPtr(v float64) *float64 { return &v }

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "agentops"
	}
	orgID := os.Getenv("ORG_ID")
	if orgID == "" {
		orgID = "org_default"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	now := time.Now()

	profile := model.ScoringProfile{
		ID:              "sp_" + uuid.New().String()[:8],
		OrgID:           orgID,
		Name:            "Production Action Quality",
		Description:     "Balanced quality profile for day-to-day agent work",
		CompositeMethod: model.MethodWeightedAverage,
		Status:          model.StatusActive,
		Dimensions: []model.ScoringDimension{
			{
				ID:         "sd_" + uuid.New().String()[:8],
				Name:       "speed",
				Weight:     0.2,
				DataSource: model.SourceDurationMS,
				Scale: []model.ScaleRule{
					{Label: "fast", Operator: model.OpLTE, Value: 60_000, Score: 100},
					{Label: "steady", Operator: model.OpLTE, Value: 300_000, Score: 75},
					{Label: "slow", Operator: model.OpLTE, Value: 1_800_000, Score: 50},
					{Label: "stalled", Operator: model.OpGT, Value: 1_800_000, Score: 20},
				},
				SortOrder: 1,
			},
			{
				ID:         "sd_" + uuid.New().String()[:8],
				Name:       "cost",
				Weight:     0.2,
				DataSource: model.SourceCostEstimate,
				Scale: []model.ScaleRule{
					{Label: "cheap", Operator: model.OpLTE, Value: 0.05, Score: 100},
					{Label: "moderate", Operator: model.OpLTE, Value: 1, Score: 70},
					{Label: "expensive", Operator: model.OpGT, Value: 1, Score: 30},
				},
				SortOrder: 2,
			},
			{
				ID:         "sd_" + uuid.New().String()[:8],
				Name:       "safety",
				Weight:     0.4,
				DataSource: model.SourceRiskScore,
				Scale: []model.ScaleRule{
					{Label: "low", Operator: model.OpLT, Value: 30, Score: 100},
					{Label: "medium", Operator: model.OpBetween, Value: 30, ValueHigh: floatPtr(60), Score: 60},
					{Label: "high", Operator: model.OpGT, Value: 60, Score: 15},
				},
				SortOrder: 3,
			},
			{
				ID:         "sd_" + uuid.New().String()[:8],
				Name:       "environment",
				Weight:     0.2,
				DataSource: model.SourceMetadataField,
				DataConfig: model.DimensionConfig{Field: "environment"},
				Scale: []model.ScaleRule{
					{Label: "staging", Operator: model.OpEQ, Value: 0, Text: "staging", Score: 100},
					{Label: "production", Operator: model.OpEQ, Value: 0, Text: "production", Score: 60},
				},
				SortOrder: 4,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.Collection("scoring_profiles").InsertOne(ctx, profile); err != nil {
		log.Fatalf("Failed to insert scoring profile: %v", err)
	}

	template := model.RiskTemplate{
		ID:          "rt_" + uuid.New().String()[:8],
		OrgID:       orgID,
		Name:        "Deploy Guardrails",
		Description: "Automatic risk for deployment actions",
		ActionType:  strPtr("deploy"),
		BaseRisk:    10,
		Rules: []model.RiskRule{
			{Condition: "metadata.environment == 'production'", Add: 25},
			{Condition: "metadata.modifies_data == true", Add: 20},
			{Condition: "metadata.reversible == false", Add: 15},
		},
		Status:    model.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.Collection("risk_templates").InsertOne(ctx, template); err != nil {
		log.Fatalf("Failed to insert risk template: %v", err)
	}

	// Two demo agents with different learning trajectories: alpha improves
	// steadily, beta plateaus.
	rng := rand.New(rand.NewSource(42))
	agents := []struct {
		id    string
		start float64
		gain  float64
	}{
		{"agent-alpha", 45, 1.8},
		{"agent-beta", 62, 0.2},
	}
	actionTypes := []string{"query", "deploy", "refactor"}

	var episodes []interface{}
	var actions []interface{}
	for _, agent := range agents {
		for day := 0; day < 21; day++ {
			for n := 0; n < 2; n++ {
				createdAt := now.AddDate(0, 0, day-21).Add(time.Duration(n*6) * time.Hour)
				score := agent.start + agent.gain*float64(day) + rng.Float64()*8 - 4
				if score > 100 {
					score = 100
				}
				if score < 0 {
					score = 0
				}

				outcome := model.OutcomeSuccess
				status := "completed"
				if score < 45 {
					outcome = model.OutcomeFailure
					status = "failed"
				}

				actionType := actionTypes[(day+n)%len(actionTypes)]
				duration := 20_000 + rng.Float64()*120_000
				cost := 0.01 + rng.Float64()*0.4
				actionID := "ar_" + uuid.New().String()[:8]

				actions = append(actions, model.ActionRecord{
					ID:           actionID,
					OrgID:        orgID,
					AgentID:      agent.id,
					ActionType:   actionType,
					RiskScore:    floatPtr(10 + rng.Float64()*50),
					Confidence:   floatPtr(50 + rng.Float64()*40),
					DurationMS:   floatPtr(duration),
					CostEstimate: floatPtr(cost),
					Metadata: map[string]interface{}{
						"environment": []string{"staging", "production"}[rng.Intn(2)],
						"status":      status,
						"reversible":  rng.Intn(2) == 0,
					},
					CreatedAt: createdAt,
				})

				episodes = append(episodes, model.LearningEpisode{
					ID:           "le_" + uuid.New().String()[:8],
					OrgID:        orgID,
					AgentID:      agent.id,
					ActionType:   actionType,
					Score:        score,
					OutcomeLabel: outcome,
					DurationMS:   duration,
					CostEstimate: cost,
					SourceID:     actionID,
					CreatedAt:    createdAt,
				})
			}
		}
	}

	if _, err := db.Collection("action_records").InsertMany(ctx, actions); err != nil {
		log.Fatalf("Failed to insert action records: %v", err)
	}
	if _, err := db.Collection("learning_episodes").InsertMany(ctx, episodes); err != nil {
		log.Fatalf("Failed to insert learning episodes: %v", err)
	}

	fmt.Printf("Seeded org %s: profile %q, template %q, %d actions, %d episodes\n",
		orgID, profile.Name, template.Name, len(actions), len(episodes))
}

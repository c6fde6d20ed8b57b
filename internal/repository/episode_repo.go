package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agentops/internal/model"
)

// EpisodeRepo handles MongoDB operations for the learning episode stream
type EpisodeRepo interface {
	Create(ctx context.Context, episode *model.LearningEpisode) error
	UpsertBySource(ctx context.Context, episode *model.LearningEpisode) (bool, error)
	ListByAgent(ctx context.Context, orgID, agentID string, since time.Time) ([]*model.LearningEpisode, error)
	ListByOrg(ctx context.Context, orgID string, since time.Time) ([]*model.LearningEpisode, error)
	AgentIDs(ctx context.Context, orgID string, since time.Time) ([]string, error)
}

type episodeRepo struct {
	collection *mongo.Collection
}

// NewEpisodeRepo creates a new learning episode repository
func NewEpisodeRepo(db *mongo.Database) EpisodeRepo {
	return &episodeRepo{
		collection: db.Collection("learning_episodes"),
	}
}

func (r *episodeRepo) Create(ctx context.Context, episode *model.LearningEpisode) error {
	if episode.CreatedAt.IsZero() {
		episode.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, episode)
	return err
}

// UpsertBySource inserts or refreshes the episode derived from one source
// action, keyed by (org_id, source_id). Returns true when a new episode was
// created rather than an existing one refreshed.
func (r *episodeRepo) UpsertBySource(ctx context.Context, episode *model.LearningEpisode) (bool, error) {
	if episode.CreatedAt.IsZero() {
		episode.CreatedAt = time.Now()
	}

	filter := bson.M{"org_id": episode.OrgID, "source_id": episode.SourceID}
	update := bson.M{
		"$set": bson.M{
			"agent_id":      episode.AgentID,
			"action_type":   episode.ActionType,
			"score":         episode.Score,
			"outcome_label": episode.OutcomeLabel,
			"duration_ms":   episode.DurationMS,
			"cost_estimate": episode.CostEstimate,
			"created_at":    episode.CreatedAt,
		},
		"$setOnInsert": bson.M{"_id": episode.ID},
	}

	opts := options.Update().SetUpsert(true)
	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return false, err
	}
	return result.UpsertedCount > 0, nil
}

func (r *episodeRepo) ListByAgent(ctx context.Context, orgID, agentID string, since time.Time) ([]*model.LearningEpisode, error) {
	return r.list(ctx, bson.M{
		"org_id":     orgID,
		"agent_id":   agentID,
		"created_at": bson.M{"$gte": since},
	})
}

func (r *episodeRepo) ListByOrg(ctx context.Context, orgID string, since time.Time) ([]*model.LearningEpisode, error) {
	return r.list(ctx, bson.M{
		"org_id":     orgID,
		"created_at": bson.M{"$gte": since},
	})
}

func (r *episodeRepo) list(ctx context.Context, filter bson.M) ([]*model.LearningEpisode, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var episodes []*model.LearningEpisode
	if err = cursor.All(ctx, &episodes); err != nil {
		return nil, err
	}
	return episodes, nil
}

func (r *episodeRepo) AgentIDs(ctx context.Context, orgID string, since time.Time) ([]string, error) {
	filter := bson.M{
		"org_id":     orgID,
		"created_at": bson.M{"$gte": since},
	}

	values, err := r.collection.Distinct(ctx, "agent_id", filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

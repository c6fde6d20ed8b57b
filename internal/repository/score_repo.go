package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agentops/internal/model"
)

// ScoreRepo handles MongoDB operations for the append-only score history
type ScoreRepo interface {
	Create(ctx context.Context, score *model.ProfileScore) error
	CreateMany(ctx context.Context, scores []*model.ProfileScore) error
	GetByID(ctx context.Context, orgID, id string) (*model.ProfileScore, error)
	ListByProfile(ctx context.Context, orgID, profileID string, limit int64) ([]*model.ProfileScore, error)
	ListByAgent(ctx context.Context, orgID, agentID string, limit int64) ([]*model.ProfileScore, error)
	Stats(ctx context.Context, orgID, profileID string) (*model.ProfileScoreStats, error)
}

type scoreRepo struct {
	collection *mongo.Collection
}

// NewScoreRepo creates a new profile score repository
func NewScoreRepo(db *mongo.Database) ScoreRepo {
	return &scoreRepo{
		collection: db.Collection("profile_scores"),
	}
}

func (r *scoreRepo) Create(ctx context.Context, score *model.ProfileScore) error {
	if score.ScoredAt.IsZero() {
		score.ScoredAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, score)
	return err
}

func (r *scoreRepo) CreateMany(ctx context.Context, scores []*model.ProfileScore) error {
	if len(scores) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(scores))
	for i, s := range scores {
		if s.ScoredAt.IsZero() {
			s.ScoredAt = now
		}
		docs[i] = s
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *scoreRepo) GetByID(ctx context.Context, orgID, id string) (*model.ProfileScore, error) {
	var score model.ProfileScore
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "org_id": orgID}).Decode(&score)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *scoreRepo) ListByProfile(ctx context.Context, orgID, profileID string, limit int64) ([]*model.ProfileScore, error) {
	return r.list(ctx, bson.M{"org_id": orgID, "profile_id": profileID}, limit)
}

func (r *scoreRepo) ListByAgent(ctx context.Context, orgID, agentID string, limit int64) ([]*model.ProfileScore, error) {
	return r.list(ctx, bson.M{"org_id": orgID, "agent_id": agentID}, limit)
}

func (r *scoreRepo) list(ctx context.Context, filter bson.M, limit int64) ([]*model.ProfileScore, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scored_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []*model.ProfileScore
	if err = cursor.All(ctx, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *scoreRepo) Stats(ctx context.Context, orgID, profileID string) (*model.ProfileScoreStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"org_id": orgID, "profile_id": profileID}}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"total_scores": bson.M{"$sum": 1},
			"avg_score":    bson.M{"$avg": "$composite_score"},
			"min_score":    bson.M{"$min": "$composite_score"},
			"max_score":    bson.M{"$max": "$composite_score"},
			"stddev_score": bson.M{"$stdDevPop": "$composite_score"},
			"agents":       bson.M{"$addToSet": "$agent_id"},
			"actions":      bson.M{"$addToSet": "$action_id"},
		}}},
		{{Key: "$project", Value: bson.M{
			"total_scores":   1,
			"avg_score":      1,
			"min_score":      1,
			"max_score":      1,
			"stddev_score":   1,
			"unique_agents":  bson.M{"$size": "$agents"},
			"unique_actions": bson.M{"$size": "$actions"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []model.ProfileScoreStats
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &model.ProfileScoreStats{}, nil
	}
	return &results[0], nil
}

package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agentops/internal/model"
)

// LearningRepo handles MongoDB operations for velocity records and learning
// curve points. Both collections are append-only.
type LearningRepo interface {
	CreateVelocity(ctx context.Context, record *model.LearningVelocityRecord) error
	LatestVelocity(ctx context.Context, orgID, agentID, period string) (*model.LearningVelocityRecord, error)
	ListVelocity(ctx context.Context, orgID, agentID string, limit int64) ([]*model.LearningVelocityRecord, error)
	CreateCurvePoints(ctx context.Context, points []*model.LearningCurvePoint) error
	ListCurvePoints(ctx context.Context, orgID, agentID, actionType string) ([]*model.LearningCurvePoint, error)
}

type learningRepo struct {
	velocity *mongo.Collection
	curves   *mongo.Collection
}

// NewLearningRepo creates a new learning analytics repository
func NewLearningRepo(db *mongo.Database) LearningRepo {
	return &learningRepo{
		velocity: db.Collection("learning_velocity"),
		curves:   db.Collection("learning_curves"),
	}
}

func (r *learningRepo) CreateVelocity(ctx context.Context, record *model.LearningVelocityRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := r.velocity.InsertOne(ctx, record)
	return err
}

func (r *learningRepo) LatestVelocity(ctx context.Context, orgID, agentID, period string) (*model.LearningVelocityRecord, error) {
	filter := bson.M{"org_id": orgID, "agent_id": agentID}
	if period != "" {
		filter["period"] = period
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var record model.LearningVelocityRecord
	err := r.velocity.FindOne(ctx, filter, opts).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *learningRepo) ListVelocity(ctx context.Context, orgID, agentID string, limit int64) ([]*model.LearningVelocityRecord, error) {
	filter := bson.M{"org_id": orgID}
	if agentID != "" {
		filter["agent_id"] = agentID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.velocity.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.LearningVelocityRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *learningRepo) CreateCurvePoints(ctx context.Context, points []*model.LearningCurvePoint) error {
	if len(points) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(points))
	for i, p := range points {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		docs[i] = p
	}

	_, err := r.curves.InsertMany(ctx, docs)
	return err
}

func (r *learningRepo) ListCurvePoints(ctx context.Context, orgID, agentID, actionType string) ([]*model.LearningCurvePoint, error) {
	filter := bson.M{"org_id": orgID}
	if agentID != "" {
		filter["agent_id"] = agentID
	}
	if actionType != "" {
		filter["action_type"] = actionType
	}

	opts := options.Find().SetSort(bson.D{{Key: "window_start", Value: 1}})
	cursor, err := r.curves.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var points []*model.LearningCurvePoint
	if err = cursor.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}

package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agentops/internal/model"
)

// ActionRepo handles MongoDB operations for raw action telemetry
type ActionRepo interface {
	Create(ctx context.Context, action *model.ActionRecord) error
	GetByID(ctx context.Context, orgID, id string) (*model.ActionRecord, error)
	GetByIDs(ctx context.Context, orgID string, ids []string) ([]*model.ActionRecord, error)
	ListRecent(ctx context.Context, orgID, actionType string, since time.Time, limit int64) ([]*model.ActionRecord, error)
}

type actionRepo struct {
	collection *mongo.Collection
}

// NewActionRepo creates a new action record repository
func NewActionRepo(db *mongo.Database) ActionRepo {
	return &actionRepo{
		collection: db.Collection("action_records"),
	}
}

func (r *actionRepo) Create(ctx context.Context, action *model.ActionRecord) error {
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, action)
	return err
}

func (r *actionRepo) GetByID(ctx context.Context, orgID, id string) (*model.ActionRecord, error) {
	var action model.ActionRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "org_id": orgID}).Decode(&action)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &action, nil
}

func (r *actionRepo) GetByIDs(ctx context.Context, orgID string, ids []string) ([]*model.ActionRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "org_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var actions []*model.ActionRecord
	if err = cursor.All(ctx, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

func (r *actionRepo) ListRecent(ctx context.Context, orgID, actionType string, since time.Time, limit int64) ([]*model.ActionRecord, error) {
	filter := bson.M{
		"org_id":     orgID,
		"created_at": bson.M{"$gte": since},
	}
	if actionType != "" {
		filter["action_type"] = actionType
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var actions []*model.ActionRecord
	if err = cursor.All(ctx, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

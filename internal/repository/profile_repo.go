package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agentops/internal/model"
)

// ProfileRepo handles MongoDB operations for scoring profiles
type ProfileRepo interface {
	Create(ctx context.Context, profile *model.ScoringProfile) error
	GetByID(ctx context.Context, orgID, id string) (*model.ScoringProfile, error)
	List(ctx context.Context, orgID, status string) ([]*model.ScoringProfile, error)
	ListActive(ctx context.Context, orgID string) ([]*model.ScoringProfile, error)
	Update(ctx context.Context, profile *model.ScoringProfile) error
	SetStatus(ctx context.Context, orgID, id, status string) error
}

type profileRepo struct {
	collection *mongo.Collection
}

// NewProfileRepo creates a new scoring profile repository
func NewProfileRepo(db *mongo.Database) ProfileRepo {
	return &profileRepo{
		collection: db.Collection("scoring_profiles"),
	}
}

func (r *profileRepo) Create(ctx context.Context, profile *model.ScoringProfile) error {
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, profile)
	return err
}

func (r *profileRepo) GetByID(ctx context.Context, orgID, id string) (*model.ScoringProfile, error) {
	var profile model.ScoringProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "org_id": orgID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) List(ctx context.Context, orgID, status string) ([]*model.ScoringProfile, error) {
	filter := bson.M{"org_id": orgID}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []*model.ScoringProfile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepo) ListActive(ctx context.Context, orgID string) ([]*model.ScoringProfile, error) {
	return r.List(ctx, orgID, model.StatusActive)
}

func (r *profileRepo) Update(ctx context.Context, profile *model.ScoringProfile) error {
	profile.UpdatedAt = time.Now()

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": profile.ID, "org_id": profile.OrgID}, profile)
	return err
}

func (r *profileRepo) SetStatus(ctx context.Context, orgID, id, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "org_id": orgID}, update)
	return err
}

package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agentops/internal/model"
)

// RiskRepo handles MongoDB operations for risk templates
type RiskRepo interface {
	Create(ctx context.Context, template *model.RiskTemplate) error
	GetByID(ctx context.Context, orgID, id string) (*model.RiskTemplate, error)
	List(ctx context.Context, orgID, status string) ([]*model.RiskTemplate, error)
	ListActive(ctx context.Context, orgID string) ([]*model.RiskTemplate, error)
	Update(ctx context.Context, template *model.RiskTemplate) error
	SetStatus(ctx context.Context, orgID, id, status string) error
}

type riskRepo struct {
	collection *mongo.Collection
}

// NewRiskRepo creates a new risk template repository
func NewRiskRepo(db *mongo.Database) RiskRepo {
	return &riskRepo{
		collection: db.Collection("risk_templates"),
	}
}

func (r *riskRepo) Create(ctx context.Context, template *model.RiskTemplate) error {
	now := time.Now()
	if template.CreatedAt.IsZero() {
		template.CreatedAt = now
	}
	template.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, template)
	return err
}

func (r *riskRepo) GetByID(ctx context.Context, orgID, id string) (*model.RiskTemplate, error) {
	var template model.RiskTemplate
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "org_id": orgID}).Decode(&template)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *riskRepo) List(ctx context.Context, orgID, status string) ([]*model.RiskTemplate, error) {
	filter := bson.M{"org_id": orgID}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []*model.RiskTemplate
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *riskRepo) ListActive(ctx context.Context, orgID string) ([]*model.RiskTemplate, error) {
	return r.List(ctx, orgID, model.StatusActive)
}

func (r *riskRepo) Update(ctx context.Context, template *model.RiskTemplate) error {
	template.UpdatedAt = time.Now()

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": template.ID, "org_id": template.OrgID}, template)
	return err
}

func (r *riskRepo) SetStatus(ctx context.Context, orgID, id, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "org_id": orgID}, update)
	return err
}

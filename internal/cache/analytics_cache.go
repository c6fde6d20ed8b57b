package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"agentops/internal/model"
)

// AnalyticsCache handles Redis operations for computed analytics snapshots:
// the latest velocity record per agent and the org-wide learning summary.
// Both are rebuilt by analytics runs; TTL only bounds staleness after the
// runs stop.
type AnalyticsCache interface {
	GetVelocity(ctx context.Context, orgID, agentID string) (*model.LearningVelocityRecord, error)
	SetVelocity(ctx context.Context, record *model.LearningVelocityRecord) error

	GetSummary(ctx context.Context, orgID string) (*model.LearningSummary, error)
	SetSummary(ctx context.Context, orgID string, summary *model.LearningSummary) error
	InvalidateSummary(ctx context.Context, orgID string) error
}

type analyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalyticsCache creates a new analytics cache
func NewAnalyticsCache(client *redis.Client) AnalyticsCache {
	return &analyticsCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

// Key helpers
func (c *analyticsCache) velocityKey(orgID, agentID string) string {
	return fmt.Sprintf("org:%s:agent:%s:velocity", orgID, agentID)
}

func (c *analyticsCache) summaryKey(orgID string) string {
	return fmt.Sprintf("org:%s:learning:summary", orgID)
}

func (c *analyticsCache) GetVelocity(ctx context.Context, orgID, agentID string) (*model.LearningVelocityRecord, error) {
	data, err := c.client.Get(ctx, c.velocityKey(orgID, agentID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var record model.LearningVelocityRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *analyticsCache) SetVelocity(ctx context.Context, record *model.LearningVelocityRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.velocityKey(record.OrgID, record.AgentID), data, c.ttl).Err()
}

func (c *analyticsCache) GetSummary(ctx context.Context, orgID string) (*model.LearningSummary, error) {
	data, err := c.client.Get(ctx, c.summaryKey(orgID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var summary model.LearningSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *analyticsCache) SetSummary(ctx context.Context, orgID string, summary *model.LearningSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.summaryKey(orgID), data, c.ttl).Err()
}

func (c *analyticsCache) InvalidateSummary(ctx context.Context, orgID string) error {
	return c.client.Del(ctx, c.summaryKey(orgID)).Err()
}

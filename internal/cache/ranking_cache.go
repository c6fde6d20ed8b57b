package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RankingCache handles Redis ZSET operations for the per-org agent maturity
// ranking. Scores are continuous maturity scores, refreshed on every
// analytics run.
type RankingCache interface {
	UpdateScore(ctx context.Context, orgID, agentID string, score float64) error
	GetTop(ctx context.Context, orgID string, limit int) ([]RankingEntry, error)
	GetRank(ctx context.Context, orgID, agentID string) (int64, error)
}

// RankingEntry is a single agent ranking entry
type RankingEntry struct {
	AgentID string  `json:"agent_id"`
	Score   float64 `json:"score"`
	Rank    int     `json:"rank"`
}

type rankingCache struct {
	client *redis.Client
}

// NewRankingCache creates a new agent ranking cache
func NewRankingCache(client *redis.Client) RankingCache {
	return &rankingCache{
		client: client,
	}
}

func (c *rankingCache) key(orgID string) string {
	return fmt.Sprintf("org:%s:maturity", orgID)
}

func (c *rankingCache) UpdateScore(ctx context.Context, orgID, agentID string, score float64) error {
	return c.client.ZAdd(ctx, c.key(orgID), redis.Z{
		Score:  score,
		Member: agentID,
	}).Err()
}

func (c *rankingCache) GetTop(ctx context.Context, orgID string, limit int) ([]RankingEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(orgID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, len(results))
	for i, z := range results {
		entries[i] = RankingEntry{
			AgentID: z.Member.(string),
			Score:   z.Score,
			Rank:    i + 1,
		}
	}
	return entries, nil
}

func (c *rankingCache) GetRank(ctx context.Context, orgID, agentID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, c.key(orgID), agentID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}

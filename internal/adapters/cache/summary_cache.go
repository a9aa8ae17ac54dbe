package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/climatecoach/carbon-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const summaryTTL = 30 * time.Minute

var _ domain.SummaryCache = (*RedisSummaryCache)(nil)

// RedisSummaryCache stores computed carbon summaries keyed per user. A miss
// returns (nil, nil) so callers recompute from stored footprints.
type RedisSummaryCache struct {
	client *redis.Client
}

func NewRedisSummaryCache(client *redis.Client) *RedisSummaryCache {
	return &RedisSummaryCache{client: client}
}

func (c *RedisSummaryCache) key(userID string) string {
	return fmt.Sprintf("summary:%s", userID)
}

func (c *RedisSummaryCache) Get(ctx context.Context, userID string) (*domain.CarbonSummary, error) {
	val, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("summary cache read failed: %w", err)
	}

	var summary domain.CarbonSummary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		log.Printf("[CACHE] Corrupted summary for user %s, cleaning up key", userID)
		c.client.Del(ctx, c.key(userID))
		return nil, nil
	}

	return &summary, nil
}

func (c *RedisSummaryCache) Set(ctx context.Context, userID string, summary *domain.CarbonSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("summary cache marshal failed: %w", err)
	}

	if err := c.client.Set(ctx, c.key(userID), data, summaryTTL).Err(); err != nil {
		return fmt.Errorf("summary cache write failed: %w", err)
	}

	return nil
}

func (c *RedisSummaryCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("summary cache invalidate failed: %w", err)
	}
	return nil
}

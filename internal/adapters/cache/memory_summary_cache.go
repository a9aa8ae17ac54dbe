package cache

import (
	"context"
	"sync"

	"github.com/climatecoach/carbon-engine/internal/core/domain"
)

var _ domain.SummaryCache = (*MemorySummaryCache)(nil)

// MemorySummaryCache is the fallback when Redis is not configured, and the
// cache used by tests. No TTL; entries live until invalidated or overwritten.
type MemorySummaryCache struct {
	store map[string]*domain.CarbonSummary

	mu sync.RWMutex
}

func NewMemorySummaryCache() *MemorySummaryCache {
	return &MemorySummaryCache{
		store: make(map[string]*domain.CarbonSummary),
	}
}

func (c *MemorySummaryCache) Get(ctx context.Context, userID string) (*domain.CarbonSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	summary, ok := c.store[userID]
	if !ok {
		return nil, nil
	}
	return summary, nil
}

func (c *MemorySummaryCache) Set(ctx context.Context, userID string, summary *domain.CarbonSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[userID] = summary
	return nil
}

func (c *MemorySummaryCache) Invalidate(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.store, userID)
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/climatecoach/carbon-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.ActivityRepository = (*CachedActivityRepository)(nil)

// CachedActivityRepository caches single-day lookups per (user, date) key.
// Range and sync queries always go to the next layer; their result sets are
// too variable to invalidate cheaply.
type CachedActivityRepository struct {
	next  domain.ActivityRepository
	cache *redis.Client
}

func NewCachedActivityRepository(next domain.ActivityRepository, cache *redis.Client) *CachedActivityRepository {
	return &CachedActivityRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedActivityRepository) cacheKey(userID string, date time.Time) string {
	return fmt.Sprintf("activity:%s:%s", userID, date.UTC().Format("2006-01-02"))
}

func (r *CachedActivityRepository) invalidate(ctx context.Context, userID string, date time.Time) {
	if err := r.cache.Del(ctx, r.cacheKey(userID, date)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", userID, err)
	}
}

func (r *CachedActivityRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.ActivityRecord, error) {
	key := r.cacheKey(userID, date)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var rec domain.ActivityRecord
		if err := json.Unmarshal([]byte(val), &rec); err == nil {
			return &rec, nil
		}

		log.Printf("[CACHE] Corrupted data for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	rec, err := r.next.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rec); err == nil {
		if setErr := r.cache.Set(ctx, key, data, 30*time.Minute).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return rec, nil
}

func (r *CachedActivityRepository) ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.ActivityRecord, error) {
	return r.next.ListByUserAndDateRange(ctx, userID, from, to)
}

func (r *CachedActivityRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.ActivityRecord, error) {
	return r.next.GetChanges(ctx, userID, since)
}

func (r *CachedActivityRepository) Upsert(ctx context.Context, rec *domain.ActivityRecord) error {
	if err := r.next.Upsert(ctx, rec); err != nil {
		return err
	}
	r.invalidate(ctx, rec.UserID, rec.Date)
	return nil
}

func (r *CachedActivityRepository) Delete(ctx context.Context, userID string, date time.Time) error {
	if err := r.next.Delete(ctx, userID, date); err != nil {
		return err
	}
	r.invalidate(ctx, userID, date)
	return nil
}

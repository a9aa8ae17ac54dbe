package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/climatecoach/carbon-engine/internal/core/domain"
)

func dayKey(userID string, date time.Time) string {
	return userID + ":" + date.UTC().Format("2006-01-02")
}

type InMemoryActivityRepository struct {
	store map[string]*domain.ActivityRecord

	mu sync.RWMutex
}

func NewInMemoryActivityRepository() *InMemoryActivityRepository {
	return &InMemoryActivityRepository{
		store: make(map[string]*domain.ActivityRecord),
	}
}

func (r *InMemoryActivityRepository) Upsert(ctx context.Context, rec *domain.ActivityRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dayKey(rec.UserID, rec.Date)
	if existing, ok := r.store[key]; ok {
		rec.ID = existing.ID
		rec.Version = existing.Version + 1
		rec.CreatedAt = existing.CreatedAt
	}
	rec.UpdatedAt = time.Now().UTC()
	rec.DeletedAt = nil

	r.store[key] = rec
	return nil
}

func (r *InMemoryActivityRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.ActivityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.store[dayKey(userID, date)]
	if !ok || rec.DeletedAt != nil {
		return nil, domain.ErrActivityNotFound
	}
	return rec, nil
}

func (r *InMemoryActivityRepository) ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.ActivityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*domain.ActivityRecord
	for key, rec := range r.store {
		if !strings.HasPrefix(key, userID+":") || rec.DeletedAt != nil {
			continue
		}
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	return records, nil
}

func (r *InMemoryActivityRepository) Delete(ctx context.Context, userID string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.store[dayKey(userID, date)]
	if !ok || rec.DeletedAt != nil {
		return domain.ErrActivityNotFound
	}

	now := time.Now().UTC()
	rec.DeletedAt = &now
	rec.UpdatedAt = now
	rec.Version++
	return nil
}

func (r *InMemoryActivityRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.ActivityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*domain.ActivityRecord
	for key, rec := range r.store {
		if !strings.HasPrefix(key, userID+":") {
			continue
		}
		if rec.UpdatedAt.After(since) {
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.Before(records[j].UpdatedAt)
	})

	return records, nil
}

type InMemoryFootprintRepository struct {
	store map[string]*domain.StoredFootprint

	mu sync.RWMutex
}

func NewInMemoryFootprintRepository() *InMemoryFootprintRepository {
	return &InMemoryFootprintRepository{
		store: make(map[string]*domain.StoredFootprint),
	}
}

func (r *InMemoryFootprintRepository) Upsert(ctx context.Context, userID string, date time.Time, fp domain.Footprint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[dayKey(userID, date)] = &domain.StoredFootprint{
		UserID:       userID,
		Date:         date,
		Footprint:    fp,
		CalculatedAt: time.Now().UTC(),
	}
	return nil
}

func (r *InMemoryFootprintRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.StoredFootprint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sf, ok := r.store[dayKey(userID, date)]
	if !ok {
		return nil, domain.ErrFootprintNotFound
	}
	return sf, nil
}

func (r *InMemoryFootprintRepository) ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.StoredFootprint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var footprints []*domain.StoredFootprint
	for key, sf := range r.store {
		if !strings.HasPrefix(key, userID+":") {
			continue
		}
		if sf.Date.Before(from) || sf.Date.After(to) {
			continue
		}
		footprints = append(footprints, sf)
	}

	sort.Slice(footprints, func(i, j int) bool {
		return footprints[i].Date.After(footprints[j].Date)
	})

	return footprints, nil
}

func (r *InMemoryFootprintRepository) Delete(ctx context.Context, userID string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dayKey(userID, date)
	if _, ok := r.store[key]; !ok {
		return domain.ErrFootprintNotFound
	}

	delete(r.store, key)
	return nil
}

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	r.store[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[user.ID]; !ok {
		return domain.ErrUserNotFound
	}

	r.store[user.ID] = user
	return nil
}

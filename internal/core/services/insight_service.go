package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/climatecoach/carbon-engine/internal/core/domain"
	"github.com/climatecoach/carbon-engine/internal/core/engine"
)

// InsightService is the read side of the engine: footprints, summaries,
// pattern analysis, and ranked recommendations. It never mutates activity
// data.
type InsightService struct {
	activities  domain.ActivityRepository
	footprints  domain.FootprintRepository
	users       domain.UserRepository
	analyzer    *engine.Analyzer
	recommender *engine.Recommender
	cache       domain.SummaryCache
}

func NewInsightService(activities domain.ActivityRepository, footprints domain.FootprintRepository, users domain.UserRepository, analyzer *engine.Analyzer, recommender *engine.Recommender, cache domain.SummaryCache) *InsightService {
	return &InsightService{
		activities:  activities,
		footprints:  footprints,
		users:       users,
		analyzer:    analyzer,
		recommender: recommender,
		cache:       cache,
	}
}

func (s *InsightService) Footprint(ctx context.Context, userID string, date time.Time) (*domain.StoredFootprint, error) {
	return s.footprints.GetByUserAndDate(ctx, userID, date.UTC().Truncate(24*time.Hour))
}

// Summary returns the rolling carbon summary, read-through cached. A cache
// miss (or unavailable cache) recomputes from stored footprints and warms
// the cache for the next read.
func (s *InsightService) Summary(ctx context.Context, userID string) (*domain.CarbonSummary, error) {
	cached, err := s.cache.Get(ctx, userID)
	if err == nil && cached != nil {
		return cached, nil
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -engine.DefaultWindowDays)

	footprints, err := s.footprints.ListByUserAndDateRange(ctx, userID, from, now)
	if err != nil {
		return nil, fmt.Errorf("insight service: failed to list footprints: %w", err)
	}

	summary := s.analyzer.Summarize(footprints)

	// Cache write is best-effort; the computed summary still stands.
	_ = s.cache.Set(ctx, userID, &summary)

	return &summary, nil
}

// Patterns analyzes the last 30 days of raw activity and returns the
// high-impact usage profile.
func (s *InsightService) Patterns(ctx context.Context, userID string) (*domain.HighImpactProfile, error) {
	history, err := s.recentHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := s.analyzer.Analyze(history, engine.DefaultWindowDays)
	return &profile, nil
}

// Recommendations ranks tailored tips for one user. The analysis window is
// the last 30 days; the given date supplies the single-day footprint used
// for personalization (a day with no footprint contributes zeros).
func (s *InsightService) Recommendations(ctx context.Context, userID string, date time.Time, topN int) ([]domain.Recommendation, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("insight service: failed to load user: %w", err)
	}

	var footprint domain.Footprint
	stored, err := s.footprints.GetByUserAndDate(ctx, userID, date.UTC().Truncate(24*time.Hour))
	if err != nil && !errors.Is(err, domain.ErrFootprintNotFound) {
		return nil, fmt.Errorf("insight service: failed to load footprint: %w", err)
	}
	if stored != nil {
		footprint = stored.Footprint
	}

	history, err := s.recentHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := s.analyzer.Analyze(history, engine.DefaultWindowDays)

	return s.recommender.Recommend(footprint, profile, user.Profile, topN), nil
}

func (s *InsightService) recentHistory(ctx context.Context, userID string) ([]*domain.ActivityRecord, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -engine.DefaultWindowDays)

	history, err := s.activities.ListByUserAndDateRange(ctx, userID, from, now)
	if err != nil {
		return nil, fmt.Errorf("insight service: failed to list activities: %w", err)
	}
	return history, nil
}

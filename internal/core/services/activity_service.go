package services

import (
	"context"
	"errors"
	"time"

	"github.com/climatecoach/carbon-engine/internal/core/domain"
	"github.com/climatecoach/carbon-engine/internal/core/engine"
	"github.com/climatecoach/carbon-engine/internal/core/workers"
)

type ActivityService struct {
	activities domain.ActivityRepository
	footprints domain.FootprintRepository
	calculator *engine.Calculator
	worker     *workers.SummaryWorker
}

func NewActivityService(activities domain.ActivityRepository, footprints domain.FootprintRepository, calculator *engine.Calculator, worker *workers.SummaryWorker) *ActivityService {
	return &ActivityService{
		activities: activities,
		footprints: footprints,
		calculator: calculator,
		worker:     worker,
	}
}

type LogActivityInput struct {
	UserID    string
	Date      time.Time
	Transport domain.TransportActivity
	Energy    domain.EnergyActivity
	Food      domain.FoodActivity
	Shopping  domain.ShoppingActivity
	Waste     domain.WasteActivity
	Water     domain.WaterActivity
}

// Log validates and stores one day's activities together with the computed
// footprint. Logging the same (user, date) again replaces the previous
// record and footprint; the operation is idempotent on that key.
func (s *ActivityService) Log(ctx context.Context, input LogActivityInput) (*domain.ActivityRecord, domain.Footprint, error) {
	record := domain.NewActivityRecord(input.UserID, input.Date)
	record.Transport = input.Transport
	record.Energy = input.Energy
	record.Food = input.Food
	record.Shopping = input.Shopping
	record.Waste = input.Waste
	record.Water = input.Water

	footprint, err := s.calculator.Compute(*record)
	if err != nil {
		return nil, domain.Footprint{}, err
	}

	if err := s.activities.Upsert(ctx, record); err != nil {
		return nil, domain.Footprint{}, err
	}

	if err := s.footprints.Upsert(ctx, record.UserID, record.Date, footprint); err != nil {
		return nil, domain.Footprint{}, err
	}

	s.worker.Enqueue(record.UserID)

	return record, footprint, nil
}

func (s *ActivityService) GetByDate(ctx context.Context, userID string, date time.Time) (*domain.ActivityRecord, error) {
	return s.activities.GetByUserAndDate(ctx, userID, date.UTC().Truncate(24*time.Hour))
}

func (s *ActivityService) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.ActivityRecord, error) {
	return s.activities.ListByUserAndDateRange(ctx, userID, from, to)
}

// Delete soft-deletes the record for one date and removes its stored
// footprint so summaries no longer count the day.
func (s *ActivityService) Delete(ctx context.Context, userID string, date time.Time) error {
	day := date.UTC().Truncate(24 * time.Hour)

	if err := s.activities.Delete(ctx, userID, day); err != nil {
		return err
	}

	if err := s.footprints.Delete(ctx, userID, day); err != nil && !errors.Is(err, domain.ErrFootprintNotFound) {
		return err
	}

	s.worker.Enqueue(userID)

	return nil
}

// GetDelta returns every record changed after 'since', for offline sync.
func (s *ActivityService) GetDelta(ctx context.Context, userID string, since time.Time) ([]*domain.ActivityRecord, error) {
	return s.activities.GetChanges(ctx, userID, since)
}

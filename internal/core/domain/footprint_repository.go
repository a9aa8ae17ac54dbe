package domain

import (
	"context"
	"errors"
	"time"
)

var ErrFootprintNotFound = errors.New("footprint not found")

// StoredFootprint is a Footprint persisted against its (user, date) key.
type StoredFootprint struct {
	UserID       string    `json:"user_id"`
	Date         time.Time `json:"date"`
	Footprint    Footprint `json:"footprint"`
	CalculatedAt time.Time `json:"calculated_at"`
}

type FootprintRepository interface {
	// Upsert stores the footprint keyed by (user, date), mirroring the
	// activity record it was computed from. Idempotent on the composite key.
	Upsert(ctx context.Context, userID string, date time.Time, footprint Footprint) error

	// GetByUserAndDate retrieves the footprint for one calendar date.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*StoredFootprint, error)

	// ListByUserAndDateRange retrieves footprints within [from, to], most
	// recent first.
	ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*StoredFootprint, error)

	// Delete removes the footprint for one date, used when the underlying
	// activity record is deleted.
	Delete(ctx context.Context, userID string, date time.Time) error
}

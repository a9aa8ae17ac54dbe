package domain

import (
	"context"
	"errors"
	"time"
)

var ErrActivityNotFound = errors.New("activity record not found")

type ActivityRepository interface {
	// Upsert persists the record for its (user, date) key. Logging the same
	// day twice replaces the previous record; the operation is idempotent on
	// the composite key.
	Upsert(ctx context.Context, record *ActivityRecord) error

	// GetByUserAndDate retrieves the active record for one calendar date.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*ActivityRecord, error)

	// ListByUserAndDateRange retrieves active records within [from, to],
	// most recent first. This feeds the pattern analyzer's history window.
	ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*ActivityRecord, error)

	// Delete performs a soft delete of the record for one date.
	Delete(ctx context.Context, userID string, date time.Time) error

	// GetChanges returns all records touched after 'since', oldest first.
	// Used by offline clients to sync deltas.
	GetChanges(ctx context.Context, userID string, since time.Time) ([]*ActivityRecord, error)
}

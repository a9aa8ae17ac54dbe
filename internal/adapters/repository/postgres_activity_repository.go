package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/climatecoach/carbon-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresActivityRepository struct {
	db *sqlx.DB
}

func NewPostgresActivityRepository(db *sqlx.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresActivityRepository) scanRow(row scannable) (*domain.ActivityRecord, error) {
	var rec domain.ActivityRecord
	var transportJSON, energyJSON, foodJSON, shoppingJSON, wasteJSON, waterJSON []byte

	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Date,
		&transportJSON, &energyJSON, &foodJSON,
		&shoppingJSON, &wasteJSON, &waterJSON,
		&rec.Version, &rec.DeletedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	blocks := []struct {
		raw []byte
		dst interface{}
	}{
		{transportJSON, &rec.Transport},
		{energyJSON, &rec.Energy},
		{foodJSON, &rec.Food},
		{shoppingJSON, &rec.Shopping},
		{wasteJSON, &rec.Waste},
		{waterJSON, &rec.Water},
	}
	for _, b := range blocks {
		if len(b.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(b.raw, b.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activity block: %w", err)
		}
	}

	return &rec, nil
}

func marshalBlocks(rec *domain.ActivityRecord) (transport, energy, food, shopping, waste, water []byte, err error) {
	if transport, err = json.Marshal(rec.Transport); err != nil {
		return
	}
	if energy, err = json.Marshal(rec.Energy); err != nil {
		return
	}
	if food, err = json.Marshal(rec.Food); err != nil {
		return
	}
	if shopping, err = json.Marshal(rec.Shopping); err != nil {
		return
	}
	if waste, err = json.Marshal(rec.Waste); err != nil {
		return
	}
	water, err = json.Marshal(rec.Water)
	return
}

// Upsert inserts the day's record or replaces the existing one for the same
// (user, date). A replace bumps the version and clears any soft delete, so
// re-logging a deleted day resurrects it.
func (r *PostgresActivityRepository) Upsert(ctx context.Context, rec *domain.ActivityRecord) error {
	transportJSON, energyJSON, foodJSON, shoppingJSON, wasteJSON, waterJSON, err := marshalBlocks(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal activity blocks: %w", err)
	}

	query := `
        INSERT INTO activities (
            id, user_id, activity_date,
            transport, energy, food, shopping, waste, water,
            version, deleted_at, created_at, updated_at
        ) VALUES (
            $1, $2, $3,
            $4, $5, $6, $7, $8, $9,
            1, NULL, $10, $11
        )
        ON CONFLICT (user_id, activity_date) DO UPDATE SET
            transport = EXCLUDED.transport,
            energy = EXCLUDED.energy,
            food = EXCLUDED.food,
            shopping = EXCLUDED.shopping,
            waste = EXCLUDED.waste,
            water = EXCLUDED.water,
            version = activities.version + 1,
            deleted_at = NULL,
            updated_at = NOW()
        RETURNING id, version, created_at, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		rec.ID, rec.UserID, rec.Date,
		transportJSON, energyJSON, foodJSON, shoppingJSON, wasteJSON, waterJSON,
		rec.CreatedAt, rec.UpdatedAt,
	)

	if err := row.Scan(&rec.ID, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return fmt.Errorf("upsert query failed: %w", err)
	}

	return nil
}

func (r *PostgresActivityRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.ActivityRecord, error) {
	query := `
        SELECT * FROM activities
        WHERE user_id = $1 AND activity_date = $2 AND deleted_at IS NULL`

	row := r.db.QueryRowContext(ctx, query, userID, date)

	rec, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return rec, nil
}

func (r *PostgresActivityRepository) ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.ActivityRecord, error) {
	query := `
        SELECT * FROM activities
        WHERE user_id = $1 AND activity_date BETWEEN $2 AND $3 AND deleted_at IS NULL
        ORDER BY activity_date DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var records []*domain.ActivityRecord

	for rows.Next() {
		rec, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *PostgresActivityRepository) Delete(ctx context.Context, userID string, date time.Time) error {
	query := `
        UPDATE activities
        SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
        WHERE user_id = $1 AND activity_date = $2 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, userID, date)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrActivityNotFound
	}

	return nil
}

func (r *PostgresActivityRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.ActivityRecord, error) {
	query := `
        SELECT * FROM activities
        WHERE user_id = $1 AND updated_at > $2
        ORDER BY updated_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("sync query error: %w", err)
	}
	defer rows.Close()

	var records []*domain.ActivityRecord

	for rows.Next() {
		rec, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("sync row scan error: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

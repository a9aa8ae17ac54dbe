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
)

type PostgresFootprintRepository struct {
	db *sqlx.DB
}

func NewPostgresFootprintRepository(db *sqlx.DB) *PostgresFootprintRepository {
	return &PostgresFootprintRepository{db: db}
}

func (r *PostgresFootprintRepository) scanRow(row scannable) (*domain.StoredFootprint, error) {
	var sf domain.StoredFootprint
	var breakdownJSON []byte

	err := row.Scan(
		&sf.UserID, &sf.Date,
		&sf.Footprint.TransportCO2, &sf.Footprint.EnergyCO2, &sf.Footprint.FoodCO2,
		&sf.Footprint.ShoppingCO2, &sf.Footprint.WasteCO2, &sf.Footprint.WaterCO2,
		&sf.Footprint.TotalCO2, &breakdownJSON, &sf.CalculatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(breakdownJSON) > 0 {
		if err := json.Unmarshal(breakdownJSON, &sf.Footprint.Breakdown); err != nil {
			return nil, fmt.Errorf("failed to unmarshal breakdown: %w", err)
		}
	}

	return &sf, nil
}

func (r *PostgresFootprintRepository) Upsert(ctx context.Context, userID string, date time.Time, fp domain.Footprint) error {
	breakdownJSON, err := json.Marshal(fp.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	query := `
        INSERT INTO carbon_footprints (
            user_id, footprint_date,
            transport_co2, energy_co2, food_co2, shopping_co2, waste_co2, water_co2,
            total_co2, breakdown, calculated_at
        ) VALUES (
            $1, $2,
            $3, $4, $5, $6, $7, $8,
            $9, $10, NOW()
        )
        ON CONFLICT (user_id, footprint_date) DO UPDATE SET
            transport_co2 = EXCLUDED.transport_co2,
            energy_co2 = EXCLUDED.energy_co2,
            food_co2 = EXCLUDED.food_co2,
            shopping_co2 = EXCLUDED.shopping_co2,
            waste_co2 = EXCLUDED.waste_co2,
            water_co2 = EXCLUDED.water_co2,
            total_co2 = EXCLUDED.total_co2,
            breakdown = EXCLUDED.breakdown,
            calculated_at = NOW()`

	_, err = r.db.ExecContext(ctx, query,
		userID, date,
		fp.TransportCO2, fp.EnergyCO2, fp.FoodCO2, fp.ShoppingCO2, fp.WasteCO2, fp.WaterCO2,
		fp.TotalCO2, breakdownJSON,
	)
	if err != nil {
		return fmt.Errorf("footprint upsert failed: %w", err)
	}

	return nil
}

func (r *PostgresFootprintRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.StoredFootprint, error) {
	query := `
        SELECT * FROM carbon_footprints
        WHERE user_id = $1 AND footprint_date = $2`

	row := r.db.QueryRowContext(ctx, query, userID, date)

	sf, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFootprintNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return sf, nil
}

func (r *PostgresFootprintRepository) ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.StoredFootprint, error) {
	query := `
        SELECT * FROM carbon_footprints
        WHERE user_id = $1 AND footprint_date BETWEEN $2 AND $3
        ORDER BY footprint_date DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var footprints []*domain.StoredFootprint

	for rows.Next() {
		sf, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		footprints = append(footprints, sf)
	}

	return footprints, nil
}

func (r *PostgresFootprintRepository) Delete(ctx context.Context, userID string, date time.Time) error {
	query := `DELETE FROM carbon_footprints WHERE user_id = $1 AND footprint_date = $2`

	res, err := r.db.ExecContext(ctx, query, userID, date)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrFootprintNotFound
	}

	return nil
}

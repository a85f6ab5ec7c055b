package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
)

// QuarterRepository provides data access methods for quarter day-count and
// brokerage rate configuration. Both are consumed by calculations as explicit
// inputs; a calculation fails rather than guess a missing value.
type QuarterRepository struct {
	db *sql.DB
}

// NewQuarterRepository creates a new QuarterRepository with the provided database connection.
func NewQuarterRepository(db *sql.DB) *QuarterRepository {
	return &QuarterRepository{db: db}
}

// GetQuarterConfig retrieves the configured day count for a fiscal quarter.
// Returns apperrors.ErrQuarterNotConfigured when no row exists; the caller
// must not substitute a calendar day count.
func (r *QuarterRepository) GetQuarterConfig(year, quarter int) (model.QuarterConfig, error) {
	query := `
		SELECT year, quarter, days_in_quarter
		FROM quarter_config
		WHERE year = ? AND quarter = ?
	`

	var qc model.QuarterConfig
	err := r.db.QueryRow(query, year, quarter).Scan(&qc.Year, &qc.Quarter, &qc.DaysInQuarter)
	if errors.Is(err, sql.ErrNoRows) {
		return model.QuarterConfig{}, apperrors.ErrQuarterNotConfigured
	}
	if err != nil {
		return model.QuarterConfig{}, fmt.Errorf("failed to query quarter_config table: %w", err)
	}

	return qc, nil
}

// UpsertQuarterConfig creates or replaces the day count for a fiscal quarter.
func (r *QuarterRepository) UpsertQuarterConfig(ctx context.Context, qc model.QuarterConfig) error {
	query := `
		INSERT INTO quarter_config (year, quarter, days_in_quarter)
		VALUES (?, ?, ?)
		ON CONFLICT (year, quarter) DO UPDATE SET days_in_quarter = excluded.days_in_quarter
	`

	if _, err := r.db.ExecContext(ctx, query, qc.Year, qc.Quarter, qc.DaysInQuarter); err != nil {
		return fmt.Errorf("failed to upsert quarter_config: %w", err)
	}

	return nil
}

// GetRate retrieves the configured brokerage rate.
// Returns apperrors.ErrRateNotConfigured when no rate has been set.
func (r *QuarterRepository) GetRate() (model.BrokerageRate, error) {
	query := `SELECT id, rate, updated_at FROM brokerage_rate WHERE id = 1`

	var rate model.BrokerageRate
	var rateStr string
	err := r.db.QueryRow(query).Scan(&rate.ID, &rateStr, &rate.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BrokerageRate{}, apperrors.ErrRateNotConfigured
	}
	if err != nil {
		return model.BrokerageRate{}, fmt.Errorf("failed to query brokerage_rate table: %w", err)
	}

	rate.Rate, err = ParseDecimal(rateStr)
	if err != nil {
		return model.BrokerageRate{}, err
	}

	return rate, nil
}

// SetRate creates or replaces the configured brokerage rate.
func (r *QuarterRepository) SetRate(ctx context.Context, rate model.BrokerageRate) error {
	query := `
		INSERT INTO brokerage_rate (id, rate, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET rate = excluded.rate, updated_at = excluded.updated_at
	`

	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := r.db.ExecContext(ctx, query, rate.Rate.String(), updatedAt); err != nil {
		return fmt.Errorf("failed to set brokerage rate: %w", err)
	}

	return nil
}

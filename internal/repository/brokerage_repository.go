package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
	"github.com/shopspring/decimal"
)

// BrokerageRepository provides data access methods for brokerage calculation
// detail rows and the daily (monthly period) and quarterly summary tables.
//
// Writes follow the engine's recomputation contract: detail rows for a
// (client, period) are replaced wholesale inside one transaction together
// with their summary row, so a failed recalculation leaves the previous
// state untouched. The quarterly payment fields are owned by the external
// payment workflow and are carried forward across recalculation.
type BrokerageRepository struct {
	db *sql.DB
}

// NewBrokerageRepository creates a new BrokerageRepository with the provided database connection.
func NewBrokerageRepository(db *sql.DB) *BrokerageRepository {
	return &BrokerageRepository{db: db}
}

// MonthCalculation couples a monthly summary with the detail rows that
// produced it, for atomic persistence.
type MonthCalculation struct {
	Summary model.DailySummary
	Details []model.BrokerageDetail
}

// SaveMonthCalculation atomically replaces all detail rows for the
// (client, period) and upserts the monthly summary row.
func (r *BrokerageRepository) SaveMonthCalculation(ctx context.Context, mc MonthCalculation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := saveMonthInTx(ctx, tx, mc); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit calculation: %w", err)
	}

	return nil
}

// SaveQuarterCalculation atomically persists a full quarter recalculation:
// the three constituent month replacements plus the quarterly summary row.
//
// The quarterly upsert overwrites only the financial fields; is_paid,
// paid_amount and paid_date keep whatever the existing row holds, so routine
// recalculation never un-marks a paid quarter. When resetPayment is set the
// payment fields are deliberately cleared back to unpaid.
func (r *BrokerageRepository) SaveQuarterCalculation(
	ctx context.Context,
	months []MonthCalculation,
	q model.QuarterlySummary,
	resetPayment bool,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for _, mc := range months {
		if err := saveMonthInTx(ctx, tx, mc); err != nil {
			return err
		}
	}

	upsert := `
		INSERT INTO quarterly_summary (
			client_id, year, quarter, days_in_quarter,
			total_brokerage, total_holding_value, total_turnover,
			total_trades, total_holding_days,
			avg_daily_holding, avg_daily_turnover,
			is_paid, paid_amount, paid_date, calculated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, FALSE, NULL, NULL, ?)
		ON CONFLICT (client_id, year, quarter) DO UPDATE SET
			days_in_quarter = excluded.days_in_quarter,
			total_brokerage = excluded.total_brokerage,
			total_holding_value = excluded.total_holding_value,
			total_turnover = excluded.total_turnover,
			total_trades = excluded.total_trades,
			total_holding_days = excluded.total_holding_days,
			avg_daily_holding = excluded.avg_daily_holding,
			avg_daily_turnover = excluded.avg_daily_turnover,
	`
	if resetPayment {
		upsert += `
			is_paid = FALSE,
			paid_amount = NULL,
			paid_date = NULL,
		`
	}
	upsert += `
			calculated_at = excluded.calculated_at
	`

	_, err = tx.ExecContext(ctx, upsert,
		q.ClientID, q.Year, q.Quarter, q.DaysInQuarter,
		q.TotalBrokerage.String(), q.TotalHoldingValue.String(), q.TotalTurnover.String(),
		q.TotalTrades, q.TotalHoldingDays,
		q.AvgDailyHolding.String(), q.AvgDailyTurnover.String(),
		q.CalculatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert quarterly_summary: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit calculation: %w", err)
	}

	return nil
}

// saveMonthInTx replaces the details and summary for one month inside an
// already-open transaction.
func saveMonthInTx(ctx context.Context, tx *sql.Tx, mc MonthCalculation) error {
	s := mc.Summary
	periodStart := s.PeriodStart.Format("2006-01-02")

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM brokerage_detail WHERE client_id = ? AND period_start = ?`,
		s.ClientID, periodStart); err != nil {
		return fmt.Errorf("failed to clear prior detail rows: %w", err)
	}

	insert := `
		INSERT INTO brokerage_detail (
			id, client_id, stock_id, symbol, exchange, trade_id, quantity,
			acquired_price, acquired_date, disposed_price, disposed_date,
			holding_start, holding_end, holding_days, total_days_in_period,
			position_value, disposal_value, disposed_in_period,
			formula, calculation_formula, brokerage_amount,
			period_start, period_end, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, d := range mc.Details {
		if _, err := tx.ExecContext(ctx, insert,
			d.ID, d.ClientID, d.StockID, d.Symbol, d.Exchange, d.TradeID, d.Quantity,
			d.AcquiredPrice.String(), d.AcquiredDate.Format("2006-01-02"),
			nullDecimalString(d.DisposedPrice), nullDateString(d.DisposedDate),
			d.HoldingStart.Format("2006-01-02"), d.HoldingEnd.Format("2006-01-02"),
			d.HoldingDays, d.TotalDaysInPeriod,
			d.PositionValue.String(), nullDecimalString(d.DisposalValue), d.DisposedInPeriod,
			d.Formula, d.CalculationFormula, d.BrokerageAmount.String(),
			d.PeriodStart.Format("2006-01-02"), d.PeriodEnd.Format("2006-01-02"),
			d.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("failed to insert brokerage_detail: %w", err)
		}
	}

	upsert := `
		INSERT INTO daily_summary (
			client_id, period_start, period_end, total_days,
			total_brokerage, total_holding_value, total_turnover,
			total_trades, total_holding_days, calculated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (client_id, period_start) DO UPDATE SET
			period_end = excluded.period_end,
			total_days = excluded.total_days,
			total_brokerage = excluded.total_brokerage,
			total_holding_value = excluded.total_holding_value,
			total_turnover = excluded.total_turnover,
			total_trades = excluded.total_trades,
			total_holding_days = excluded.total_holding_days,
			calculated_at = excluded.calculated_at
	`

	if _, err := tx.ExecContext(ctx, upsert,
		s.ClientID, periodStart, s.PeriodEnd.Format("2006-01-02"), s.TotalDays,
		s.TotalBrokerage.String(), s.TotalHoldingValue.String(), s.TotalTurnover.String(),
		s.TotalTrades, s.TotalHoldingDays,
		s.CalculatedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to upsert daily_summary: %w", err)
	}

	return nil
}

// GetDailySummary retrieves the monthly summary for a client and period start.
// Returns apperrors.ErrSummaryNotFound when the period has never been calculated.
func (r *BrokerageRepository) GetDailySummary(clientID string, periodStart time.Time) (model.DailySummary, error) {
	query := `
		SELECT client_id, period_start, period_end, total_days,
		       total_brokerage, total_holding_value, total_turnover,
		       total_trades, total_holding_days, calculated_at
		FROM daily_summary
		WHERE client_id = ? AND period_start = ?
	`

	var s model.DailySummary
	var startStr, endStr, brokStr, holdStr, turnStr, calcStr string

	err := r.db.QueryRow(query, clientID, periodStart.Format("2006-01-02")).Scan(
		&s.ClientID, &startStr, &endStr, &s.TotalDays,
		&brokStr, &holdStr, &turnStr,
		&s.TotalTrades, &s.TotalHoldingDays, &calcStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DailySummary{}, apperrors.ErrSummaryNotFound
	}
	if err != nil {
		return model.DailySummary{}, fmt.Errorf("failed to scan daily_summary results: %w", err)
	}

	if s.PeriodStart, err = ParseTime(startStr); err != nil {
		return model.DailySummary{}, err
	}
	if s.PeriodEnd, err = ParseTime(endStr); err != nil {
		return model.DailySummary{}, err
	}
	if s.TotalBrokerage, err = ParseDecimal(brokStr); err != nil {
		return model.DailySummary{}, err
	}
	if s.TotalHoldingValue, err = ParseDecimal(holdStr); err != nil {
		return model.DailySummary{}, err
	}
	if s.TotalTurnover, err = ParseDecimal(turnStr); err != nil {
		return model.DailySummary{}, err
	}
	if s.CalculatedAt, err = ParseTime(calcStr); err != nil {
		return model.DailySummary{}, err
	}

	return s, nil
}

// GetQuarterlySummary retrieves the quarterly summary for a client.
// Returns apperrors.ErrSummaryNotFound when the quarter has never been calculated.
func (r *BrokerageRepository) GetQuarterlySummary(clientID string, year, quarter int) (model.QuarterlySummary, error) {
	query := `
		SELECT client_id, year, quarter, days_in_quarter,
		       total_brokerage, total_holding_value, total_turnover,
		       total_trades, total_holding_days,
		       avg_daily_holding, avg_daily_turnover,
		       is_paid, paid_amount, paid_date, calculated_at
		FROM quarterly_summary
		WHERE client_id = ? AND year = ? AND quarter = ?
	`

	var q model.QuarterlySummary
	var brokStr, holdStr, turnStr, avgHoldStr, avgTurnStr, calcStr string
	var paidAmount, paidDate sql.NullString

	err := r.db.QueryRow(query, clientID, year, quarter).Scan(
		&q.ClientID, &q.Year, &q.Quarter, &q.DaysInQuarter,
		&brokStr, &holdStr, &turnStr,
		&q.TotalTrades, &q.TotalHoldingDays,
		&avgHoldStr, &avgTurnStr,
		&q.IsPaid, &paidAmount, &paidDate, &calcStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.QuarterlySummary{}, apperrors.ErrSummaryNotFound
	}
	if err != nil {
		return model.QuarterlySummary{}, fmt.Errorf("failed to scan quarterly_summary results: %w", err)
	}

	if q.TotalBrokerage, err = ParseDecimal(brokStr); err != nil {
		return model.QuarterlySummary{}, err
	}
	if q.TotalHoldingValue, err = ParseDecimal(holdStr); err != nil {
		return model.QuarterlySummary{}, err
	}
	if q.TotalTurnover, err = ParseDecimal(turnStr); err != nil {
		return model.QuarterlySummary{}, err
	}
	if q.AvgDailyHolding, err = ParseDecimal(avgHoldStr); err != nil {
		return model.QuarterlySummary{}, err
	}
	if q.AvgDailyTurnover, err = ParseDecimal(avgTurnStr); err != nil {
		return model.QuarterlySummary{}, err
	}
	if q.PaidAmount, err = parseNullDecimal(paidAmount); err != nil {
		return model.QuarterlySummary{}, err
	}
	if q.PaidDate, err = parseNullTime(paidDate); err != nil {
		return model.QuarterlySummary{}, err
	}
	if q.CalculatedAt, err = ParseTime(calcStr); err != nil {
		return model.QuarterlySummary{}, err
	}

	return q, nil
}

// GetDetails retrieves all detail rows for a client with period_start inside
// [from, to). For a single month pass the month start and end; for a quarter
// pass the quarter bounds to collect its three months.
func (r *BrokerageRepository) GetDetails(clientID string, from, to time.Time) ([]model.BrokerageDetail, error) {
	query := `
		SELECT id, client_id, stock_id, symbol, exchange, trade_id, quantity,
		       acquired_price, acquired_date, disposed_price, disposed_date,
		       holding_start, holding_end, holding_days, total_days_in_period,
		       position_value, disposal_value, disposed_in_period,
		       formula, calculation_formula, brokerage_amount,
		       period_start, period_end, created_at
		FROM brokerage_detail
		WHERE client_id = ? AND period_start >= ? AND period_start < ?
		ORDER BY period_start ASC, symbol ASC, acquired_date ASC, trade_id ASC, holding_start ASC
	`

	rows, err := r.db.Query(query, clientID,
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query brokerage_detail table: %w", err)
	}
	defer rows.Close()

	details := []model.BrokerageDetail{}
	for rows.Next() {
		var d model.BrokerageDetail
		var acquiredPriceStr, acquiredDateStr string
		var disposedPrice, disposedDate, disposalValue sql.NullString
		var holdStartStr, holdEndStr, posValStr, amountStr string
		var periodStartStr, periodEndStr, createdAtStr string

		if err := rows.Scan(
			&d.ID, &d.ClientID, &d.StockID, &d.Symbol, &d.Exchange, &d.TradeID, &d.Quantity,
			&acquiredPriceStr, &acquiredDateStr, &disposedPrice, &disposedDate,
			&holdStartStr, &holdEndStr, &d.HoldingDays, &d.TotalDaysInPeriod,
			&posValStr, &disposalValue, &d.DisposedInPeriod,
			&d.Formula, &d.CalculationFormula, &amountStr,
			&periodStartStr, &periodEndStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan brokerage_detail results: %w", err)
		}

		if d.AcquiredPrice, err = ParseDecimal(acquiredPriceStr); err != nil {
			return nil, err
		}
		if d.AcquiredDate, err = ParseTime(acquiredDateStr); err != nil {
			return nil, err
		}
		if d.DisposedPrice, err = parseNullDecimal(disposedPrice); err != nil {
			return nil, err
		}
		if d.DisposedDate, err = parseNullTime(disposedDate); err != nil {
			return nil, err
		}
		if d.HoldingStart, err = ParseTime(holdStartStr); err != nil {
			return nil, err
		}
		if d.HoldingEnd, err = ParseTime(holdEndStr); err != nil {
			return nil, err
		}
		if d.PositionValue, err = ParseDecimal(posValStr); err != nil {
			return nil, err
		}
		if d.DisposalValue, err = parseNullDecimal(disposalValue); err != nil {
			return nil, err
		}
		if d.BrokerageAmount, err = ParseDecimal(amountStr); err != nil {
			return nil, err
		}
		if d.PeriodStart, err = ParseTime(periodStartStr); err != nil {
			return nil, err
		}
		if d.PeriodEnd, err = ParseTime(periodEndStr); err != nil {
			return nil, err
		}
		if d.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		details = append(details, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating brokerage_detail table: %w", err)
	}

	return details, nil
}

// RecordQuarterPayment writes the externally-owned payment fields onto an
// existing quarterly summary. This is the only write path that sets is_paid.
// Returns apperrors.ErrSummaryNotFound when the quarter has not been
// calculated yet; a payment cannot be recorded against a summary that does
// not exist.
func (r *BrokerageRepository) RecordQuarterPayment(
	ctx context.Context,
	clientID string,
	year, quarter int,
	amount decimal.Decimal,
	paidDate time.Time,
) error {
	query := `
		UPDATE quarterly_summary
		SET is_paid = TRUE, paid_amount = ?, paid_date = ?
		WHERE client_id = ? AND year = ? AND quarter = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		amount.String(), paidDate.Format("2006-01-02"),
		clientID, year, quarter)
	if err != nil {
		return fmt.Errorf("failed to record quarter payment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check payment update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSummaryNotFound
	}

	return nil
}

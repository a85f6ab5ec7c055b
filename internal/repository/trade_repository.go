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

// TradeRepository provides data access methods for the trade ledger.
// The calculation engine consumes its output read-only; trades are only
// created and corrected through the CRUD endpoints.
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

func scanTrade(scan func(dest ...any) error) (model.Trade, error) {
	var t model.Trade
	var priceStr, dateStr, createdAtStr string

	if err := scan(&t.ID, &t.ClientID, &t.StockID, &t.Side, &t.Quantity,
		&priceStr, &dateStr, &createdAtStr); err != nil {
		return model.Trade{}, err
	}

	var err error
	t.Price, err = ParseDecimal(priceStr)
	if err != nil {
		return model.Trade{}, err
	}
	t.TradeDate, err = ParseTime(dateStr)
	if err != nil {
		return model.Trade{}, err
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Trade{}, err
	}

	return t, nil
}

// GetTradesByClient retrieves the complete trade history for one client in
// the total order the position matcher requires: trade date ascending, with
// insertion order (created_at, id) breaking same-day ties. The full history
// is always returned; lot matching depends on trades before any requested
// billing period.
func (r *TradeRepository) GetTradesByClient(clientID string) ([]model.Trade, error) {
	query := `
		SELECT id, client_id, stock_id, side, quantity, price, trade_date, created_at
		FROM trade
		WHERE client_id = ?
		ORDER BY trade_date ASC, created_at ASC, id ASC
	`

	rows, err := r.db.Query(query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades := []model.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade table results: %w", err)
		}
		trades = append(trades, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}

	return trades, nil
}

// GetTrade retrieves a single trade by ID.
// Returns apperrors.ErrTradeNotFound if no trade exists with the given ID.
func (r *TradeRepository) GetTrade(tradeID string) (model.Trade, error) {
	query := `
		SELECT id, client_id, stock_id, side, quantity, price, trade_date, created_at
		FROM trade
		WHERE id = ?
	`

	row := r.db.QueryRow(query, tradeID)
	t, err := scanTrade(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Trade{}, apperrors.ErrTradeNotFound
	}
	if err != nil {
		return model.Trade{}, fmt.Errorf("failed to scan trade table results: %w", err)
	}

	return t, nil
}

// GetTradeResponsesByClient retrieves trades for a client enriched with
// client code and stock symbol/exchange for API responses. Passing an empty
// clientID returns all trades.
func (r *TradeRepository) GetTradeResponsesByClient(clientID string) ([]model.TradeResponse, error) {
	query := `
		SELECT
			t.id,
			t.client_id,
			c.code,
			t.stock_id,
			s.symbol,
			s.exchange,
			t.side,
			t.quantity,
			t.price,
			t.trade_date
		FROM trade t
		JOIN client c ON t.client_id = c.id
		JOIN stock s ON t.stock_id = s.id
	`

	var args []any
	if clientID == "" {
		query += ` ORDER BY t.trade_date ASC, t.created_at ASC, t.id ASC`
	} else {
		query += ` WHERE t.client_id = ? ORDER BY t.trade_date ASC, t.created_at ASC, t.id ASC`
		args = append(args, clientID)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades := []model.TradeResponse{}
	for rows.Next() {
		var t model.TradeResponse
		var priceStr, dateStr string

		if err := rows.Scan(&t.ID, &t.ClientID, &t.ClientCode, &t.StockID, &t.Symbol,
			&t.Exchange, &t.Side, &t.Quantity, &priceStr, &dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan trade table results: %w", err)
		}

		t.Price, err = ParseDecimal(priceStr)
		if err != nil {
			return nil, err
		}
		t.TradeDate, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		t.NetAmount = t.Price.Mul(decimal.NewFromInt(t.Quantity))

		trades = append(trades, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}

	return trades, nil
}

// InsertTrade inserts a new trade row. CreatedAt is recorded with full
// timestamp precision because it participates in the same-day ordering
// tiebreak.
func (r *TradeRepository) InsertTrade(ctx context.Context, t *model.Trade) error {
	query := `
		INSERT INTO trade (id, client_id, stock_id, side, quantity, price, trade_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.ClientID, t.StockID, t.Side, t.Quantity,
		t.Price.String(),
		t.TradeDate.UTC().Format("2006-01-02"),
		t.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}

// DeleteTrade removes a trade row (a recorded-in-error correction; the
// affected periods must be recalculated afterwards).
func (r *TradeRepository) DeleteTrade(ctx context.Context, tradeID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trade WHERE id = ?`, tradeID)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTradeNotFound
	}

	return nil
}

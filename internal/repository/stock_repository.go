package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
	"github.com/shopspring/decimal"
)

// StockRepository provides data access methods for the stock table.
type StockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new StockRepository with the provided database connection.
func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{db: db}
}

func scanStock(scan func(dest ...any) error) (model.Stock, error) {
	var s model.Stock
	var isin sql.NullString
	var priceStr, createdAtStr string

	if err := scan(&s.ID, &s.Symbol, &s.Exchange, &s.Name, &isin, &priceStr, &createdAtStr); err != nil {
		return model.Stock{}, err
	}

	s.Isin = isin.String

	var err error
	s.CurrentPrice, err = ParseDecimal(priceStr)
	if err != nil {
		return model.Stock{}, err
	}
	s.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Stock{}, err
	}

	return s, nil
}

// GetStock retrieves a single stock by ID.
// Returns apperrors.ErrStockNotFound if no stock exists with the given ID.
func (r *StockRepository) GetStock(stockID string) (model.Stock, error) {
	query := `
		SELECT id, symbol, exchange, name, isin, current_price, created_at
		FROM stock
		WHERE id = ?
	`

	row := r.db.QueryRow(query, stockID)
	s, err := scanStock(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Stock{}, apperrors.ErrStockNotFound
	}
	if err != nil {
		return model.Stock{}, fmt.Errorf("failed to scan stock table results: %w", err)
	}

	return s, nil
}

// GetAllStocks retrieves all stocks ordered by symbol.
func (r *StockRepository) GetAllStocks() ([]model.Stock, error) {
	query := `
		SELECT id, symbol, exchange, name, isin, current_price, created_at
		FROM stock
		ORDER BY symbol ASC, exchange ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock table: %w", err)
	}
	defer rows.Close()

	stocks := []model.Stock{}
	for rows.Next() {
		s, err := scanStock(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock table results: %w", err)
		}
		stocks = append(stocks, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock table: %w", err)
	}

	return stocks, nil
}

// GetStocksByIDs retrieves the given stocks as a map keyed by stock ID.
// IDs with no matching row are simply absent from the result; callers that
// require every ID to resolve should check for missing keys.
func (r *StockRepository) GetStocksByIDs(stockIDs []string) (map[string]model.Stock, error) {
	if len(stockIDs) == 0 {
		return make(map[string]model.Stock), nil
	}

	placeholders := make([]string, len(stockIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	query := `
		SELECT id, symbol, exchange, name, isin, current_price, created_at
		FROM stock
		WHERE id IN (` + strings.Join(placeholders, ",") + `)
	`

	args := make([]any, len(stockIDs))
	for i, id := range stockIDs {
		args[i] = id
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock table: %w", err)
	}
	defer rows.Close()

	stocks := make(map[string]model.Stock, len(stockIDs))
	for rows.Next() {
		s, err := scanStock(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock table results: %w", err)
		}
		stocks[s.ID] = s
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock table: %w", err)
	}

	return stocks, nil
}

// InsertStock inserts a new stock row.
// Returns apperrors.ErrDuplicateEntry when (symbol, exchange) already exists.
func (r *StockRepository) InsertStock(ctx context.Context, s *model.Stock) error {
	query := `
		INSERT INTO stock (id, symbol, exchange, name, isin, current_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Symbol, s.Exchange, s.Name, s.Isin,
		s.CurrentPrice.String(), s.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert stock: %w", err)
	}

	return nil
}

// InsertStocks batch-inserts stock rows inside a single transaction.
// Used by the CSV reference-data import.
func (r *StockRepository) InsertStocks(ctx context.Context, stocks []model.Stock) error {
	if len(stocks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `
		INSERT INTO stock (id, symbol, exchange, name, isin, current_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	for _, s := range stocks {
		if _, err := tx.ExecContext(ctx, query,
			s.ID, s.Symbol, s.Exchange, s.Name, s.Isin,
			s.CurrentPrice.String(), s.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return apperrors.ErrDuplicateEntry
			}
			return fmt.Errorf("failed to insert stock %s: %w", s.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stock import: %w", err)
	}

	return nil
}

// UpdateCurrentPrice updates the display reference price for a stock.
func (r *StockRepository) UpdateCurrentPrice(ctx context.Context, stockID string, price decimal.Decimal) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE stock SET current_price = ? WHERE id = ?`, price.String(), stockID)
	if err != nil {
		return fmt.Errorf("failed to update stock price: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStockNotFound
	}

	return nil
}

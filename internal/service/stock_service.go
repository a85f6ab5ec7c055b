package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
	"github.com/Ayushkalathiya945/investment--sub001/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockService handles stock master data operations, including bulk CSV import.
type StockService struct {
	stockRepo *repository.StockRepository
}

// NewStockService creates a new StockService with the provided repository dependency.
func NewStockService(stockRepo *repository.StockRepository) *StockService {
	return &StockService{stockRepo: stockRepo}
}

// GetStock retrieves a stock by ID.
func (s *StockService) GetStock(stockID string) (model.Stock, error) {
	return s.stockRepo.GetStock(stockID)
}

// GetAllStocks retrieves all stocks ordered by symbol.
func (s *StockService) GetAllStocks() ([]model.Stock, error) {
	return s.stockRepo.GetAllStocks()
}

// CreateStock creates a new stock with a generated ID.
func (s *StockService) CreateStock(ctx context.Context, req request.CreateStockRequest) (*model.Stock, error) {
	price := decimal.Zero
	if req.CurrentPrice != "" {
		parsed, err := decimal.NewFromString(req.CurrentPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid current price: %w", err)
		}
		price = parsed
	}

	stock := &model.Stock{
		ID:           uuid.New().String(),
		Symbol:       strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Exchange:     strings.ToUpper(strings.TrimSpace(req.Exchange)),
		Name:         req.Name,
		Isin:         req.Isin,
		CurrentPrice: price,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.stockRepo.InsertStock(ctx, stock); err != nil {
		return nil, err
	}

	return stock, nil
}

// UpdateCurrentPrice sets the reference price used to value open positions.
func (s *StockService) UpdateCurrentPrice(ctx context.Context, stockID string, req request.UpdateStockPriceRequest) (*model.Stock, error) {
	stock, err := s.stockRepo.GetStock(stockID)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(req.CurrentPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid current price: %w", err)
	}
	if price.IsNegative() {
		return nil, apperrors.ErrMissingRequiredField
	}

	if err := s.stockRepo.UpdateCurrentPrice(ctx, stockID, price); err != nil {
		return nil, err
	}

	stock.CurrentPrice = price
	return &stock, nil
}

// expectedCSVHeaders defines the required column layout for stock imports.
var expectedCSVHeaders = []string{"symbol", "exchange", "name", "isin", "current_price"}

// ImportStocksCSV reads stock master data from a CSV stream and inserts all
// rows in one transaction. The header row must match the expected layout
// exactly. Returns the number of stocks imported.
func (s *StockService) ImportStocksCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return 0, apperrors.ErrInvalidCSVHeaders
	}
	if len(headers) != len(expectedCSVHeaders) {
		return 0, apperrors.ErrInvalidCSVHeaders
	}
	for i, h := range headers {
		if strings.ToLower(strings.TrimSpace(h)) != expectedCSVHeaders[i] {
			return 0, apperrors.ErrInvalidCSVHeaders
		}
	}

	var stocks []model.Stock
	now := time.Now().UTC()
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return 0, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		price := decimal.Zero
		if record[4] != "" {
			price, err = decimal.NewFromString(record[4])
			if err != nil {
				return 0, fmt.Errorf("invalid price on CSV line %d: %w", line, err)
			}
		}

		stocks = append(stocks, model.Stock{
			ID:           uuid.New().String(),
			Symbol:       strings.ToUpper(strings.TrimSpace(record[0])),
			Exchange:     strings.ToUpper(strings.TrimSpace(record[1])),
			Name:         record[2],
			Isin:         record[3],
			CurrentPrice: price,
			CreatedAt:    now,
		})
	}

	if len(stocks) == 0 {
		return 0, nil
	}

	if err := s.stockRepo.InsertStocks(ctx, stocks); err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrFailedToImportStocks, err)
	}

	return len(stocks), nil
}

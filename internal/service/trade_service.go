package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
	"github.com/Ayushkalathiya945/investment--sub001/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeService handles trade ledger business logic operations.
type TradeService struct {
	tradeRepo  *repository.TradeRepository
	clientRepo *repository.ClientRepository
	stockRepo  *repository.StockRepository
}

// NewTradeService creates a new TradeService with the provided repository dependencies.
func NewTradeService(
	tradeRepo *repository.TradeRepository,
	clientRepo *repository.ClientRepository,
	stockRepo *repository.StockRepository,
) *TradeService {
	return &TradeService{
		tradeRepo:  tradeRepo,
		clientRepo: clientRepo,
		stockRepo:  stockRepo,
	}
}

// GetTradesPerClient retrieves enriched trades for one client, or all trades
// when clientID is empty.
func (s *TradeService) GetTradesPerClient(clientID string) ([]model.TradeResponse, error) {
	if clientID != "" {
		if _, err := s.clientRepo.GetClient(clientID); err != nil {
			return nil, err
		}
	}
	return s.tradeRepo.GetTradeResponsesByClient(clientID)
}

// CreateTrade records a new trade for a client and stock. Validates that
// both referenced entities exist. The trade enters the ledger with a
// full-precision creation timestamp, which breaks same-day ordering ties
// deterministically for the position matcher.
//
// Note: recording a sell that oversells the client's open position is not
// rejected here. The ledger accepts what the broker reports, and the
// calculation engine surfaces the integrity error with the shortfall when a
// period containing the trade is calculated.
func (s *TradeService) CreateTrade(ctx context.Context, req request.CreateTradeRequest) (*model.Trade, error) {
	if _, err := s.clientRepo.GetClient(req.ClientID); err != nil {
		return nil, err
	}
	if _, err := s.stockRepo.GetStock(req.StockID); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}

	tradeDate, err := time.Parse("2006-01-02", req.TradeDate)
	if err != nil {
		return nil, fmt.Errorf("invalid trade date: %w", err)
	}

	trade := &model.Trade{
		ID:        uuid.New().String(),
		ClientID:  req.ClientID,
		StockID:   req.StockID,
		Side:      req.Side,
		Quantity:  req.Quantity,
		Price:     price,
		TradeDate: tradeDate.UTC(),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.tradeRepo.InsertTrade(ctx, trade); err != nil {
		return nil, err
	}

	return trade, nil
}

// DeleteTrade removes a trade recorded in error. Periods that included the
// trade must be recalculated; the scheduler's nightly run picks up the
// current month, older periods need an explicit calculate call.
func (s *TradeService) DeleteTrade(ctx context.Context, tradeID string) error {
	if _, err := s.tradeRepo.GetTrade(tradeID); err != nil {
		return err
	}
	return s.tradeRepo.DeleteTrade(ctx, tradeID)
}

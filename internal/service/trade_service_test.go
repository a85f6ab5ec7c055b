package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
	"github.com/Ayushkalathiya945/investment--sub001/internal/testutil"
)

// TestTradeService_CreateTrade tests trade recording.
//
// WHY: The ledger is the system of record for every calculation. Referential
// checks and the deterministic ordering of same-day trades decide whether
// FIFO matching is reproducible.
func TestTradeService_CreateTrade(t *testing.T) {
	ctx := context.Background()

	t.Run("records a trade for existing client and stock", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)
		client := testutil.CreateClient(t, db, "ACC-1")
		stock := testutil.CreateStock(t, db, "AAA")

		// Execute
		trade, err := svc.CreateTrade(ctx, request.CreateTradeRequest{
			ClientID:  client.ID,
			StockID:   stock.ID,
			Side:      model.TradeSideBuy,
			Quantity:  100,
			Price:     "10.50",
			TradeDate: "2026-06-05",
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateTrade() returned unexpected error: %v", err)
		}
		if trade.ID == "" {
			t.Error("Expected generated trade ID")
		}
		if !trade.TradeDate.Equal(time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected trade date 2026-06-05, got %v", trade.TradeDate)
		}
	})

	t.Run("rejects trade for unknown client", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)
		stock := testutil.CreateStock(t, db, "AAA")

		_, err := svc.CreateTrade(ctx, request.CreateTradeRequest{
			ClientID:  testutil.MakeID(),
			StockID:   stock.ID,
			Side:      model.TradeSideBuy,
			Quantity:  100,
			Price:     "10.50",
			TradeDate: "2026-06-05",
		})

		if !errors.Is(err, apperrors.ErrClientNotFound) {
			t.Errorf("Expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("rejects trade for unknown stock", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)
		client := testutil.CreateClient(t, db, "ACC-1")

		_, err := svc.CreateTrade(ctx, request.CreateTradeRequest{
			ClientID:  client.ID,
			StockID:   testutil.MakeID(),
			Side:      model.TradeSideBuy,
			Quantity:  100,
			Price:     "10.50",
			TradeDate: "2026-06-05",
		})

		if !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Errorf("Expected ErrStockNotFound, got %v", err)
		}
	})

	t.Run("accepts an oversell into the ledger", func(t *testing.T) {
		// The ledger records what the broker reports; integrity errors surface
		// at calculation time, not at recording time.
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)
		client := testutil.CreateClient(t, db, "ACC-1")
		stock := testutil.CreateStock(t, db, "AAA")

		_, err := svc.CreateTrade(ctx, request.CreateTradeRequest{
			ClientID:  client.ID,
			StockID:   stock.ID,
			Side:      model.TradeSideSell,
			Quantity:  100,
			Price:     "10.50",
			TradeDate: "2026-06-05",
		})

		if err != nil {
			t.Errorf("Expected ledger to accept the trade, got %v", err)
		}
	})
}

// TestTradeService_SameDayOrdering tests that same-day trades keep their
// recording order.
//
// WHY: FIFO matching needs a total order. Two buys on the same date must
// match sells in the order they entered the ledger, or recalculation could
// pick different lots on different runs.
func TestTradeService_SameDayOrdering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTradeService(t, db)
	client := testutil.CreateClient(t, db, "ACC-1")
	stock := testutil.CreateStock(t, db, "AAA")

	first := testutil.NewTrade(client.ID, stock.ID).WithQuantity(10).WithPrice("10.00").On("2026-06-05").Build(t, db)
	testutil.NewTrade(client.ID, stock.ID).WithQuantity(20).WithPrice("11.00").On("2026-06-05").
		CreatedAfter(first).Build(t, db)

	trades, err := svc.GetTradesPerClient(client.ID)
	if err != nil {
		t.Fatalf("GetTradesPerClient() returned unexpected error: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("Expected 2 trades, got %d", len(trades))
	}
	if trades[0].Quantity != 10 || trades[1].Quantity != 20 {
		t.Errorf("Expected recording order preserved, got %d then %d",
			trades[0].Quantity, trades[1].Quantity)
	}
}

// TestTradeService_DeleteTrade tests removal of erroneous trades.
func TestTradeService_DeleteTrade(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an existing trade", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)
		client := testutil.CreateClient(t, db, "ACC-1")
		stock := testutil.CreateStock(t, db, "AAA")
		trade := testutil.NewTrade(client.ID, stock.ID).Build(t, db)

		if err := svc.DeleteTrade(ctx, trade.ID); err != nil {
			t.Fatalf("DeleteTrade() returned unexpected error: %v", err)
		}

		trades, err := svc.GetTradesPerClient(client.ID)
		if err != nil {
			t.Fatalf("GetTradesPerClient() returned unexpected error: %v", err)
		}
		if len(trades) != 0 {
			t.Errorf("Expected no trades after deletion, got %d", len(trades))
		}
	})

	t.Run("deleting an unknown trade is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)

		if err := svc.DeleteTrade(ctx, testutil.MakeID()); !errors.Is(err, apperrors.ErrTradeNotFound) {
			t.Errorf("Expected ErrTradeNotFound, got %v", err)
		}
	})
}

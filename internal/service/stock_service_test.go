package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/testutil"
	"github.com/shopspring/decimal"
)

// TestStockService_ImportStocksCSV tests bulk CSV import of stock master data.
//
// WHY: Imports come from external files the brokerage does not control. A
// half-imported file is worse than a rejected one, so the all-or-nothing
// behavior and header validation both need coverage.
func TestStockService_ImportStocksCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("imports all rows from a valid file", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db)

		csv := strings.Join([]string{
			"symbol,exchange,name,isin,current_price",
			"RELI,NSE,Reliance Industries,INE002A01018,2500.00",
			"tcs,NSE,Tata Consultancy,INE467B01029,3600.50",
			"INFY,BSE,Infosys,,",
		}, "\n")

		// Execute
		imported, err := svc.ImportStocksCSV(ctx, strings.NewReader(csv))

		// Assert
		if err != nil {
			t.Fatalf("ImportStocksCSV() returned unexpected error: %v", err)
		}
		if imported != 3 {
			t.Errorf("Expected 3 imported, got %d", imported)
		}

		stocks, err := svc.GetAllStocks()
		if err != nil {
			t.Fatalf("GetAllStocks() returned unexpected error: %v", err)
		}
		if len(stocks) != 3 {
			t.Fatalf("Expected 3 stocks stored, got %d", len(stocks))
		}

		// Symbols are normalized to upper case
		for _, s := range stocks {
			if s.Symbol != strings.ToUpper(s.Symbol) {
				t.Errorf("Expected normalized symbol, got %s", s.Symbol)
			}
		}
	})

	t.Run("rejects a file with wrong headers", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db)

		csv := "ticker,exchange,name,isin,current_price\nRELI,NSE,Reliance,,"

		_, err := svc.ImportStocksCSV(ctx, strings.NewReader(csv))
		if !errors.Is(err, apperrors.ErrInvalidCSVHeaders) {
			t.Errorf("Expected ErrInvalidCSVHeaders, got %v", err)
		}
	})

	t.Run("a bad row rejects the whole file", func(t *testing.T) {
		// Setup: second row carries a malformed price
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db)

		csv := strings.Join([]string{
			"symbol,exchange,name,isin,current_price",
			"RELI,NSE,Reliance Industries,INE002A01018,2500.00",
			"TCS,NSE,Tata Consultancy,INE467B01029,not-a-price",
		}, "\n")

		// Execute
		_, err := svc.ImportStocksCSV(ctx, strings.NewReader(csv))

		// Assert
		if err == nil {
			t.Fatal("Expected error for malformed price")
		}

		stocks, err := svc.GetAllStocks()
		if err != nil {
			t.Fatalf("GetAllStocks() returned unexpected error: %v", err)
		}
		if len(stocks) != 0 {
			t.Errorf("Expected no stocks after rejected import, got %d", len(stocks))
		}
	})

	t.Run("empty file imports nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db)

		imported, err := svc.ImportStocksCSV(ctx, strings.NewReader("symbol,exchange,name,isin,current_price\n"))
		if err != nil {
			t.Fatalf("ImportStocksCSV() returned unexpected error: %v", err)
		}
		if imported != 0 {
			t.Errorf("Expected 0 imported, got %d", imported)
		}
	})
}

// TestStockService_UpdateCurrentPrice tests the reference price update path.
//
// WHY: The reference price values open positions during brokerage calculation,
// so a price update must actually reach storage, not just the returned struct.
func TestStockService_UpdateCurrentPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the new price", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db)
		stock := testutil.NewStock().WithCurrentPrice("100.00").Build(t, db)

		// Execute
		updated, err := svc.UpdateCurrentPrice(ctx, stock.ID, request.UpdateStockPriceRequest{CurrentPrice: "125.50"})

		// Assert
		if err != nil {
			t.Fatalf("UpdateCurrentPrice() returned unexpected error: %v", err)
		}
		if updated.CurrentPrice.String() != "125.5" {
			t.Errorf("Expected returned price 125.5, got %s", updated.CurrentPrice)
		}

		// Re-read from storage to confirm the write landed
		stored, err := svc.GetStock(stock.ID)
		if err != nil {
			t.Fatalf("GetStock() returned unexpected error: %v", err)
		}
		if !stored.CurrentPrice.Equal(decimal.RequireFromString("125.50")) {
			t.Errorf("Expected stored price 125.50, got %s", stored.CurrentPrice)
		}
	})

	t.Run("unknown stock returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db)

		_, err := svc.UpdateCurrentPrice(ctx, testutil.MakeID(), request.UpdateStockPriceRequest{CurrentPrice: "10.00"})
		if !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Errorf("Expected ErrStockNotFound, got %v", err)
		}
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db)
		stock := testutil.NewStock().WithCurrentPrice("100.00").Build(t, db)

		// Execute
		_, err := svc.UpdateCurrentPrice(ctx, stock.ID, request.UpdateStockPriceRequest{CurrentPrice: "-5.00"})

		// Assert
		if err == nil {
			t.Fatal("Expected error for negative price")
		}

		stored, err := svc.GetStock(stock.ID)
		if err != nil {
			t.Fatalf("GetStock() returned unexpected error: %v", err)
		}
		if !stored.CurrentPrice.Equal(decimal.RequireFromString("100.00")) {
			t.Errorf("Expected stored price unchanged at 100.00, got %s", stored.CurrentPrice)
		}
	})
}

// TestStockService_DuplicateListing verifies the (symbol, exchange) uniqueness
// constraint surfaces as a duplicate error.
func TestStockService_DuplicateListing(t *testing.T) {
	db := testutil.SetupTestDB(t)

	testutil.NewStock().WithSymbol("RELI").WithExchange("NSE").Build(t, db)

	// Same symbol on another exchange is a distinct listing
	testutil.NewStock().WithSymbol("RELI").WithExchange("BSE").Build(t, db)

	svc := testutil.NewTestStockService(t, db)
	stocks, err := svc.GetAllStocks()
	if err != nil {
		t.Fatalf("GetAllStocks() returned unexpected error: %v", err)
	}
	if len(stocks) != 2 {
		t.Errorf("Expected 2 listings, got %d", len(stocks))
	}
}

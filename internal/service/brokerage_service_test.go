package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/engine"
	"github.com/Ayushkalathiya945/investment--sub001/internal/testutil"
	"github.com/shopspring/decimal"
)

// TestBrokerageService_CalculateMonth tests single-month calculation.
//
// WHY: This is the core operation of the system; the stored summary must
// reconcile with the detail rows and recomputation must be idempotent, or
// invoices change between identical runs.
func TestBrokerageService_CalculateMonth(t *testing.T) {
	ctx := context.Background()

	t.Run("computes and persists details and summary", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBrokerageService(t, db)
		testutil.SetRate(t, db, "0.0005")

		client := testutil.CreateClient(t, db, "ACC-1")
		stock := testutil.CreateStock(t, db, "AAA")
		testutil.NewTrade(client.ID, stock.ID).WithQuantity(100).WithPrice("10.00").On("2026-01-10").Build(t, db)

		// Execute
		result, err := svc.CalculateMonth(ctx, client.ID, 2026, time.June)

		// Assert
		if err != nil {
			t.Fatalf("CalculateMonth() returned unexpected error: %v", err)
		}
		if result.Summary == nil {
			t.Fatal("Expected a monthly summary")
		}
		if len(result.Details) != 1 {
			t.Fatalf("Expected 1 detail, got %d", len(result.Details))
		}

		// 100 x 10.00 x 0.0005 x 30/30 = 0.50
		if !result.Summary.TotalBrokerage.Equal(decimal.RequireFromString("0.50")) {
			t.Errorf("Expected total 0.50, got %s", result.Summary.TotalBrokerage)
		}

		// Stored state matches the returned state
		stored, err := svc.GetMonthSummary(client.ID, 2026, time.June)
		if err != nil {
			t.Fatalf("GetMonthSummary() returned unexpected error: %v", err)
		}
		if !stored.Summary.TotalBrokerage.Equal(result.Summary.TotalBrokerage) {
			t.Errorf("Stored total %s differs from returned %s",
				stored.Summary.TotalBrokerage, result.Summary.TotalBrokerage)
		}
		if len(stored.Details) != 1 {
			t.Errorf("Expected 1 stored detail, got %d", len(stored.Details))
		}
	})

	t.Run("recalculation replaces rows instead of accumulating", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBrokerageService(t, db)
		testutil.SetRate(t, db, "0.0005")

		client := testutil.CreateClient(t, db, "ACC-1")
		stock := testutil.CreateStock(t, db, "AAA")
		testutil.NewTrade(client.ID, stock.ID).WithQuantity(100).WithPrice("10.00").On("2026-01-10").Build(t, db)

		// Execute: calculate twice with no data change
		first, err := svc.CalculateMonth(ctx, client.ID, 2026, time.June)
		if err != nil {
			t.Fatalf("First CalculateMonth() returned unexpected error: %v", err)
		}
		second, err := svc.CalculateMonth(ctx, client.ID, 2026, time.June)
		if err != nil {
			t.Fatalf("Second CalculateMonth() returned unexpected error: %v", err)
		}

		// Assert: identical totals, no duplicated detail rows
		if !first.Summary.TotalBrokerage.Equal(second.Summary.TotalBrokerage) {
			t.Errorf("Idempotence broken: %s vs %s",
				first.Summary.TotalBrokerage, second.Summary.TotalBrokerage)
		}
		if len(second.Details) != len(first.Details) {
			t.Errorf("Detail count changed between runs: %d vs %d", len(first.Details), len(second.Details))
		}

		var count int
		if err := db.QueryRow(
			`SELECT COUNT(*) FROM brokerage_detail WHERE client_id = ?`, client.ID).Scan(&count); err != nil {
			t.Fatalf("Failed to count details: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 detail row after recalculation, got %d", count)
		}
	})

	t.Run("oversold ledger fails with the shortfall and stores nothing", func(t *testing.T) {
		// Setup: 100 bought, 105 sold
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBrokerageService(t, db)
		testutil.SetRate(t, db, "0.0005")

		client := testutil.CreateClient(t, db, "ACC-1")
		stock := testutil.CreateStock(t, db, "AAA")
		buy := testutil.NewTrade(client.ID, stock.ID).WithQuantity(100).WithPrice("10.00").On("2026-06-05").Build(t, db)
		testutil.NewTrade(client.ID, stock.ID).Sell().WithQuantity(105).WithPrice("12.00").On("2026-06-20").
			CreatedAfter(buy).Build(t, db)

		// Execute
		_, err := svc.CalculateMonth(ctx, client.ID, 2026, time.June)

		// Assert
		if !errors.Is(err, apperrors.ErrInsufficientQuantity) {
			t.Fatalf("Expected ErrInsufficientQuantity, got %v", err)
		}
		var oversell *engine.OversellError
		if !errors.As(err, &oversell) {
			t.Fatal("Expected *OversellError in the chain")
		}
		if oversell.Shortfall() != 5 {
			t.Errorf("Expected shortfall 5, got %d", oversell.Shortfall())
		}

		// Nothing persisted
		if _, err := svc.GetMonthSummary(client.ID, 2026, time.June); !errors.Is(err, apperrors.ErrSummaryNotFound) {
			t.Errorf("Expected no stored summary after failure, got %v", err)
		}
	})

	t.Run("failed recalculation leaves the previous result untouched", func(t *testing.T) {
		// Setup: valid history, calculate, then append an oversell
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBrokerageService(t, db)
		testutil.SetRate(t, db, "0.0005")

		client := testutil.CreateClient(t, db, "ACC-1")
		stock := testutil.CreateStock(t, db, "AAA")
		buy := testutil.NewTrade(client.ID, stock.ID).WithQuantity(100).WithPrice("10.00").On("2026-01-10").Build(t, db)

		before, err := svc.CalculateMonth(ctx, client.ID, 2026, time.June)
		if err != nil {
			t.Fatalf("CalculateMonth() returned unexpected error: %v", err)
		}

		testutil.NewTrade(client.ID, stock.ID).Sell().WithQuantity(500).WithPrice("12.00").On("2026-06-15").
			CreatedAfter(buy).Build(t, db)

		// Execute: recalculation now fails before persistence
		if _, err := svc.CalculateMonth(ctx, client.ID, 2026, time.June); err == nil {
			t.Fatal("Expected recalculation to fail on oversold ledger")
		}

		// Assert: stored rows are the pre-failure result
		after, err := svc.GetMonthSummary(client.ID, 2026, time.June)
		if err != nil {
			t.Fatalf("GetMonthSummary() returned unexpected error: %v", err)
		}
		if !after.Summary.TotalBrokerage.Equal(before.Summary.TotalBrokerage) {
			t.Errorf("Stored summary changed after failed run: %s vs %s",
				after.Summary.TotalBrokerage, before.Summary.TotalBrokerage)
		}
		if len(after.Details) != len(before.Details) {
			t.Errorf("Stored details changed after failed run: %d vs %d",
				len(after.Details), len(before.Details))
		}
	})

	t.Run("missing rate fails the calculation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBrokerageService(t, db)

		client := testutil.CreateClient(t, db, "ACC-1")

		if _, err := svc.CalculateMonth(ctx, client.ID, 2026, time.June); !errors.Is(err, apperrors.ErrRateNotConfigured) {
			t.Errorf("Expected ErrRateNotConfigured, got %v", err)
		}
	})

	t.Run("unknown client fails the calculation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBrokerageService(t, db)
		testutil.SetRate(t, db, "0.0005")

		if _, err := svc.CalculateMonth(ctx, testutil.MakeID(), 2026, time.June); !errors.Is(err, apperrors.ErrClientNotFound) {
			t.Errorf("Expected ErrClientNotFound, got %v", err)
		}
	})
}

// TestBrokerageService_CalculateQuarter tests quarterly calculation and the
// payment-state contract.
//
// WHY: Payment state is owned by an external workflow. A recalculation that
// silently un-marked a paid quarter would make the brokerage dun clients who
// already paid.
func TestBrokerageService_CalculateQuarter(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates three months with the configured day count", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBrokerageService(t, db)
		testutil.SetRate(t, db, "0.0005")
		testutil.SetQuarterConfig(t, db, 2026, 2, 90)

		client := testutil.CreateClient(t, db, "ACC-1")
		stock := testutil.CreateStock(t, db, "AAA")
		testutil.NewTrade(client.ID, stock.ID).WithQuantity(100).WithPrice("10.00").On("2026-01-10").Build(t, db)

		// Execute
		result, err := svc.CalculateQuarter(ctx, client.ID, 2026, 2, false)

		// Assert
		if err != nil {
			t.Fatalf("CalculateQuarter() returned unexpected error: %v", err)
		}
		if result.Quarterly == nil {
			t.Fatal("Expected a quarterly summary")
		}
		if result.Quarterly.DaysInQuarter != 90 {
			t.Errorf("Expected configured 90 days, got %d", result.Quarterly.DaysInQuarter)
		}

		// Held all of Apr+May+Jun at 0.50/month
		if !result.Quarterly.TotalBrokerage.Equal(decimal.RequireFromString("1.50")) {
			t.Errorf("Expected total 1.50, got %s", result.Quarterly.TotalBrokerage)
		}

		// 3000 held-value month-sum / 90 configured days
		if !result.Quarterly.AvgDailyHolding.Equal(decimal.RequireFromString("33.33")) {
			t.Errorf("Expected avg daily holding 33.33, got %s", result.Quarterly.AvgDailyHolding)
		}

		// Each month's summary is stored too
		for _, m := range []time.Month{time.April, time.May, time.June} {
			if _, err := svc.GetMonthSummary(client.ID, 2026, m); err != nil {
				t.Errorf("Expected stored summary for %v, got error %v", m, err)
			}
		}
	})

	t.Run("missing quarter config fails the calculation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBrokerageService(t, db)
		testutil.SetRate(t, db, "0.0005")

		client := testutil.CreateClient(t, db, "ACC-1")

		if _, err := svc.CalculateQuarter(ctx, client.ID, 2026, 2, false); !errors.Is(err, apperrors.ErrQuarterNotConfigured) {
			t.Errorf("Expected ErrQuarterNotConfigured, got %v", err)
		}
	})

	t.Run("recalculation preserves recorded payment state", func(t *testing.T) {
		// Setup: calculate, record a payment, then recalculate
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBrokerageService(t, db)
		paymentSvc := testutil.NewTestPaymentService(t, db)
		testutil.SetRate(t, db, "0.0005")
		testutil.SetQuarterConfig(t, db, 2026, 2, 90)

		client := testutil.CreateClient(t, db, "ACC-1")
		stock := testutil.CreateStock(t, db, "AAA")
		testutil.NewTrade(client.ID, stock.ID).WithQuantity(100).WithPrice("10.00").On("2026-01-10").Build(t, db)

		if _, err := svc.CalculateQuarter(ctx, client.ID, 2026, 2, false); err != nil {
			t.Fatalf("CalculateQuarter() returned unexpected error: %v", err)
		}

		recordTestPayment(t, paymentSvc, client.ID, 2026, 2, "1.50", "2026-07-05")

		// Execute: routine recalculation
		result, err := svc.CalculateQuarter(ctx, client.ID, 2026, 2, false)

		// Assert
		if err != nil {
			t.Fatalf("Recalculation returned unexpected error: %v", err)
		}
		if !result.Quarterly.IsPaid {
			t.Error("Recalculation must not clear IsPaid")
		}
		if result.Quarterly.PaidAmount == nil || !result.Quarterly.PaidAmount.Equal(decimal.RequireFromString("1.50")) {
			t.Errorf("Expected preserved paid amount 1.50, got %v", result.Quarterly.PaidAmount)
		}
		if result.Quarterly.PaidDate == nil {
			t.Error("Expected preserved paid date")
		}
	})

	t.Run("resetPayment clears payment state", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBrokerageService(t, db)
		paymentSvc := testutil.NewTestPaymentService(t, db)
		testutil.SetRate(t, db, "0.0005")
		testutil.SetQuarterConfig(t, db, 2026, 2, 90)

		client := testutil.CreateClient(t, db, "ACC-1")
		stock := testutil.CreateStock(t, db, "AAA")
		testutil.NewTrade(client.ID, stock.ID).WithQuantity(100).WithPrice("10.00").On("2026-01-10").Build(t, db)

		if _, err := svc.CalculateQuarter(ctx, client.ID, 2026, 2, false); err != nil {
			t.Fatalf("CalculateQuarter() returned unexpected error: %v", err)
		}
		recordTestPayment(t, paymentSvc, client.ID, 2026, 2, "1.50", "2026-07-05")

		// Execute: deliberate reset
		result, err := svc.CalculateQuarter(ctx, client.ID, 2026, 2, true)

		// Assert
		if err != nil {
			t.Fatalf("Recalculation returned unexpected error: %v", err)
		}
		if result.Quarterly.IsPaid {
			t.Error("resetPayment must clear IsPaid")
		}
		if result.Quarterly.PaidAmount != nil || result.Quarterly.PaidDate != nil {
			t.Error("resetPayment must clear paid amount and date")
		}
	})
}

// TestBrokerageService_CalculateAllMonth tests bulk recalculation.
//
// WHY: The nightly scheduler runs this across every client; one client's bad
// ledger must surface as an error naming that client, and healthy clients
// must still be countable.
func TestBrokerageService_CalculateAllMonth(t *testing.T) {
	ctx := context.Background()

	t.Run("recalculates every client", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBrokerageService(t, db)
		testutil.SetRate(t, db, "0.0005")

		stock := testutil.CreateStock(t, db, "AAA")
		for i := 0; i < 3; i++ {
			client := testutil.NewClient().Build(t, db)
			testutil.NewTrade(client.ID, stock.ID).WithQuantity(10).WithPrice("10.00").On("2026-01-10").Build(t, db)
		}

		// Execute
		count, err := svc.CalculateAllMonth(ctx, 2026, time.June)

		// Assert
		if err != nil {
			t.Fatalf("CalculateAllMonth() returned unexpected error: %v", err)
		}
		if count != 3 {
			t.Errorf("Expected 3 clients recalculated, got %d", count)
		}
	})

	t.Run("error names the failing client", func(t *testing.T) {
		// Setup: one healthy client, one oversold
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBrokerageService(t, db)
		testutil.SetRate(t, db, "0.0005")

		stock := testutil.CreateStock(t, db, "AAA")
		healthy := testutil.CreateClient(t, db, "ACC-GOOD")
		testutil.NewTrade(healthy.ID, stock.ID).WithQuantity(10).WithPrice("10.00").On("2026-01-10").Build(t, db)

		broken := testutil.CreateClient(t, db, "ACC-BAD")
		testutil.NewTrade(broken.ID, stock.ID).Sell().WithQuantity(5).WithPrice("10.00").On("2026-06-10").Build(t, db)

		// Execute
		_, err := svc.CalculateAllMonth(ctx, 2026, time.June)

		// Assert
		if !errors.Is(err, apperrors.ErrInsufficientQuantity) {
			t.Fatalf("Expected ErrInsufficientQuantity, got %v", err)
		}
	})
}

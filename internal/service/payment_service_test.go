package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/service"
	"github.com/Ayushkalathiya945/investment--sub001/internal/testutil"
	"github.com/shopspring/decimal"
)

// recordTestPayment marks a quarter paid through the payment service and
// fails the test on error.
func recordTestPayment(t *testing.T, svc *service.PaymentService, clientID string, year, quarter int, amount, paidDate string) {
	t.Helper()

	_, err := svc.RecordQuarterPayment(context.Background(), request.RecordPaymentRequest{
		ClientID: clientID,
		Year:     year,
		Quarter:  quarter,
		Amount:   amount,
		PaidDate: paidDate,
	})
	if err != nil {
		t.Fatalf("RecordQuarterPayment() returned unexpected error: %v", err)
	}
}

// TestPaymentService_RecordQuarterPayment tests the payment workflow.
//
// WHY: Payment state is externally owned financial truth. It must only ever
// attach to a calculated quarter, and the stored record must round-trip the
// amount and date exactly.
func TestPaymentService_RecordQuarterPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("records payment on a calculated quarter", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		brokerageSvc := testutil.NewTestBrokerageService(t, db)
		paymentSvc := testutil.NewTestPaymentService(t, db)
		testutil.SetRate(t, db, "0.0005")
		testutil.SetQuarterConfig(t, db, 2026, 2, 90)

		client := testutil.CreateClient(t, db, "ACC-1")
		stock := testutil.CreateStock(t, db, "AAA")
		testutil.NewTrade(client.ID, stock.ID).WithQuantity(100).WithPrice("10.00").On("2026-01-10").Build(t, db)

		if _, err := brokerageSvc.CalculateQuarter(ctx, client.ID, 2026, 2, false); err != nil {
			t.Fatalf("CalculateQuarter() returned unexpected error: %v", err)
		}

		// Execute
		summary, err := paymentSvc.RecordQuarterPayment(ctx, request.RecordPaymentRequest{
			ClientID: client.ID,
			Year:     2026,
			Quarter:  2,
			Amount:   "1.50",
			PaidDate: "2026-07-05",
		})

		// Assert
		if err != nil {
			t.Fatalf("RecordQuarterPayment() returned unexpected error: %v", err)
		}
		if !summary.IsPaid {
			t.Error("Expected IsPaid after recording")
		}
		if summary.PaidAmount == nil || !summary.PaidAmount.Equal(decimal.RequireFromString("1.50")) {
			t.Errorf("Expected paid amount 1.50, got %v", summary.PaidAmount)
		}
		if summary.PaidDate == nil || !summary.PaidDate.Equal(time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected paid date 2026-07-05, got %v", summary.PaidDate)
		}
	})

	t.Run("rejects payment against an uncalculated quarter", func(t *testing.T) {
		// Setup: client exists but no calculation has run
		db := testutil.SetupTestDB(t)
		paymentSvc := testutil.NewTestPaymentService(t, db)
		client := testutil.CreateClient(t, db, "ACC-1")

		// Execute
		_, err := paymentSvc.RecordQuarterPayment(ctx, request.RecordPaymentRequest{
			ClientID: client.ID,
			Year:     2026,
			Quarter:  2,
			Amount:   "1.50",
			PaidDate: "2026-07-05",
		})

		// Assert
		if !errors.Is(err, apperrors.ErrSummaryNotFound) {
			t.Errorf("Expected ErrSummaryNotFound, got %v", err)
		}
	})

	t.Run("rejects payment for an unknown client", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		paymentSvc := testutil.NewTestPaymentService(t, db)

		_, err := paymentSvc.RecordQuarterPayment(ctx, request.RecordPaymentRequest{
			ClientID: testutil.MakeID(),
			Year:     2026,
			Quarter:  2,
			Amount:   "1.50",
			PaidDate: "2026-07-05",
		})

		if !errors.Is(err, apperrors.ErrClientNotFound) {
			t.Errorf("Expected ErrClientNotFound, got %v", err)
		}
	})
}

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/testutil"
	"github.com/shopspring/decimal"
)

// TestConfigService_QuarterConfig tests quarter day-count configuration.
//
// WHY: The day count is a billing parameter agreed with clients, not derived
// data; it must round-trip exactly and reject impossible values instead of
// clamping them.
func TestConfigService_QuarterConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("set and get round-trips", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestConfigService(t, db)

		if _, err := svc.SetQuarterConfig(ctx, request.SetQuarterConfigRequest{
			Year: 2026, Quarter: 2, DaysInQuarter: 90,
		}); err != nil {
			t.Fatalf("SetQuarterConfig() returned unexpected error: %v", err)
		}

		qc, err := svc.GetQuarterConfig(2026, 2)
		if err != nil {
			t.Fatalf("GetQuarterConfig() returned unexpected error: %v", err)
		}
		if qc.DaysInQuarter != 90 {
			t.Errorf("Expected 90 days, got %d", qc.DaysInQuarter)
		}
	})

	t.Run("setting again replaces the day count", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestConfigService(t, db)

		for _, days := range []int{90, 91} {
			if _, err := svc.SetQuarterConfig(ctx, request.SetQuarterConfigRequest{
				Year: 2026, Quarter: 2, DaysInQuarter: days,
			}); err != nil {
				t.Fatalf("SetQuarterConfig(%d) returned unexpected error: %v", days, err)
			}
		}

		qc, err := svc.GetQuarterConfig(2026, 2)
		if err != nil {
			t.Fatalf("GetQuarterConfig() returned unexpected error: %v", err)
		}
		if qc.DaysInQuarter != 91 {
			t.Errorf("Expected replaced value 91, got %d", qc.DaysInQuarter)
		}
	})

	t.Run("unconfigured quarter is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestConfigService(t, db)

		if _, err := svc.GetQuarterConfig(2026, 3); !errors.Is(err, apperrors.ErrQuarterNotConfigured) {
			t.Errorf("Expected ErrQuarterNotConfigured, got %v", err)
		}
	})

	t.Run("day count out of range is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestConfigService(t, db)

		for _, days := range []int{0, 93} {
			if _, err := svc.SetQuarterConfig(ctx, request.SetQuarterConfigRequest{
				Year: 2026, Quarter: 2, DaysInQuarter: days,
			}); err == nil {
				t.Errorf("Expected error for %d days", days)
			}
		}
	})
}

// TestConfigService_Rate tests brokerage rate configuration.
func TestConfigService_Rate(t *testing.T) {
	ctx := context.Background()

	t.Run("set and get round-trips exactly", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestConfigService(t, db)

		if _, err := svc.SetRate(ctx, request.SetRateRequest{Rate: "0.0005"}); err != nil {
			t.Fatalf("SetRate() returned unexpected error: %v", err)
		}

		rate, err := svc.GetRate()
		if err != nil {
			t.Fatalf("GetRate() returned unexpected error: %v", err)
		}
		if !rate.Rate.Equal(decimal.RequireFromString("0.0005")) {
			t.Errorf("Expected rate 0.0005, got %s", rate.Rate)
		}
	})

	t.Run("missing rate is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestConfigService(t, db)

		if _, err := svc.GetRate(); !errors.Is(err, apperrors.ErrRateNotConfigured) {
			t.Errorf("Expected ErrRateNotConfigured, got %v", err)
		}
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestConfigService(t, db)

		if _, err := svc.SetRate(ctx, request.SetRateRequest{Rate: "-0.001"}); err == nil {
			t.Error("Expected error for negative rate")
		}
	})
}

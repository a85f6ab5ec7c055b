package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/engine"
)

// TestMonthPeriod tests billing period construction for calendar months.
//
// WHY: TotalDays is the denominator of every held fee; leap years and month
// lengths must come out exactly right.
func TestMonthPeriod(t *testing.T) {
	t.Run("thirty-day month", func(t *testing.T) {
		p, err := engine.MonthPeriod(2026, time.June)
		if err != nil {
			t.Fatalf("MonthPeriod() returned unexpected error: %v", err)
		}
		if p.TotalDays != 30 {
			t.Errorf("Expected 30 days for June, got %d", p.TotalDays)
		}
		if !p.End.Equal(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected exclusive end July 1, got %v", p.End)
		}
	})

	t.Run("february in a leap year", func(t *testing.T) {
		p, err := engine.MonthPeriod(2028, time.February)
		if err != nil {
			t.Fatalf("MonthPeriod() returned unexpected error: %v", err)
		}
		if p.TotalDays != 29 {
			t.Errorf("Expected 29 days for Feb 2028, got %d", p.TotalDays)
		}
	})

	t.Run("february in a non-leap year", func(t *testing.T) {
		p, err := engine.MonthPeriod(2026, time.February)
		if err != nil {
			t.Fatalf("MonthPeriod() returned unexpected error: %v", err)
		}
		if p.TotalDays != 28 {
			t.Errorf("Expected 28 days for Feb 2026, got %d", p.TotalDays)
		}
	})

	t.Run("invalid month is rejected", func(t *testing.T) {
		if _, err := engine.MonthPeriod(2026, time.Month(13)); !errors.Is(err, apperrors.ErrInvalidPeriod) {
			t.Errorf("Expected ErrInvalidPeriod, got %v", err)
		}
	})
}

// TestQuarterPeriod tests fiscal quarter construction.
//
// WHY: The configured day count is authoritative and may differ from the
// calendar span; the constructor must carry it through untouched and reject
// implausible values instead of clamping them.
func TestQuarterPeriod(t *testing.T) {
	t.Run("configured day count is carried verbatim", func(t *testing.T) {
		// Q2 2026 spans 91 calendar days; the brokerage bills 90
		p, err := engine.QuarterPeriod(2026, 2, 90)
		if err != nil {
			t.Fatalf("QuarterPeriod() returned unexpected error: %v", err)
		}
		if p.TotalDays != 90 {
			t.Errorf("Expected configured 90 days, got %d", p.TotalDays)
		}
		if !p.Start.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected Q2 start April 1, got %v", p.Start)
		}
		if !p.End.Equal(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected Q2 end July 1, got %v", p.End)
		}
	})

	t.Run("quarter number out of range is rejected", func(t *testing.T) {
		if _, err := engine.QuarterPeriod(2026, 5, 90); !errors.Is(err, apperrors.ErrInvalidQuarter) {
			t.Errorf("Expected ErrInvalidQuarter, got %v", err)
		}
	})

	t.Run("day count out of range is rejected", func(t *testing.T) {
		for _, days := range []int{0, 93, -1} {
			if _, err := engine.QuarterPeriod(2026, 2, days); !errors.Is(err, apperrors.ErrInvalidQuarter) {
				t.Errorf("Expected ErrInvalidQuarter for %d days, got %v", days, err)
			}
		}
	})
}

// TestQuarterMonths verifies the month makeup of each fiscal quarter.
func TestQuarterMonths(t *testing.T) {
	expected := map[int][3]time.Month{
		1: {time.January, time.February, time.March},
		2: {time.April, time.May, time.June},
		3: {time.July, time.August, time.September},
		4: {time.October, time.November, time.December},
	}

	for quarter, months := range expected {
		got, err := engine.QuarterMonths(quarter)
		if err != nil {
			t.Fatalf("QuarterMonths(%d) returned unexpected error: %v", quarter, err)
		}
		if got != months {
			t.Errorf("QuarterMonths(%d) = %v, expected %v", quarter, got, months)
		}
	}

	if _, err := engine.QuarterMonths(0); !errors.Is(err, apperrors.ErrInvalidQuarter) {
		t.Errorf("Expected ErrInvalidQuarter for quarter 0, got %v", err)
	}
}

// TestPeriodContains tests the half-open interval membership check.
func TestPeriodContains(t *testing.T) {
	p, err := engine.MonthPeriod(2026, time.June)
	if err != nil {
		t.Fatalf("MonthPeriod() returned unexpected error: %v", err)
	}

	cases := []struct {
		date string
		want bool
	}{
		{"2026-06-01", true},
		{"2026-06-30", true},
		{"2026-07-01", false},
		{"2026-05-31", false},
	}

	for _, c := range cases {
		if got := p.Contains(date(c.date)); got != c.want {
			t.Errorf("Contains(%s) = %v, expected %v", c.date, got, c.want)
		}
	}
}

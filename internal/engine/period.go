package engine

import (
	"fmt"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
)

// Period is a half-open billing interval [Start, End). TotalDays is the
// number of billable days in the period: calendar days for a month, the
// externally configured days-in-quarter value for a quarter. TotalDays for a
// quarter may therefore differ from the calendar span of [Start, End).
type Period struct {
	Start     time.Time
	End       time.Time
	TotalDays int
}

// MonthPeriod builds the billing period for a calendar month: first of the
// month to the first of the next month, with TotalDays set to the calendar
// day count of the month.
func MonthPeriod(year int, month time.Month) (Period, error) {
	if month < time.January || month > time.December {
		return Period{}, fmt.Errorf("%w: month %d", apperrors.ErrInvalidPeriod, month)
	}
	if year < 1900 || year > 9999 {
		return Period{}, fmt.Errorf("%w: year %d", apperrors.ErrInvalidPeriod, year)
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	return Period{
		Start:     start,
		End:       end,
		TotalDays: int(end.Sub(start).Hours() / 24),
	}, nil
}

// QuarterPeriod builds the billing period for a fiscal quarter: the union of
// its three calendar months, carrying the externally configured
// daysInQuarter. The configured value is authoritative; it is never replaced
// by a computed calendar day count.
func QuarterPeriod(year, quarter, daysInQuarter int) (Period, error) {
	if quarter < 1 || quarter > 4 {
		return Period{}, fmt.Errorf("%w: quarter %d", apperrors.ErrInvalidQuarter, quarter)
	}
	if daysInQuarter < 1 || daysInQuarter > 92 {
		return Period{}, fmt.Errorf("%w: daysInQuarter %d outside 1-92", apperrors.ErrInvalidQuarter, daysInQuarter)
	}
	if year < 1900 || year > 9999 {
		return Period{}, fmt.Errorf("%w: year %d", apperrors.ErrInvalidPeriod, year)
	}

	start := time.Date(year, time.Month(3*(quarter-1)+1), 1, 0, 0, 0, 0, time.UTC)

	return Period{
		Start:     start,
		End:       start.AddDate(0, 3, 0),
		TotalDays: daysInQuarter,
	}, nil
}

// QuarterMonths returns the three calendar months making up a fiscal quarter.
func QuarterMonths(quarter int) ([3]time.Month, error) {
	if quarter < 1 || quarter > 4 {
		return [3]time.Month{}, fmt.Errorf("%w: quarter %d", apperrors.ErrInvalidQuarter, quarter)
	}
	first := time.Month(3*(quarter-1) + 1)
	return [3]time.Month{first, first + 1, first + 2}, nil
}

// Contains reports whether the given date falls inside [Start, End).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

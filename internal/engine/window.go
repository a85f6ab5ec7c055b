package engine

import "time"

// Window is the portion of a lot's lifetime that falls inside one billing
// period: a clipped half-open interval [Start, End) with its day count and a
// flag for whether the lot was closed inside the period.
type Window struct {
	Start time.Time
	End   time.Time

	// Days counts calendar days in [Start, End), inclusive of the start day
	// and exclusive of the end day, with a floor of 1 for a lot that was
	// alive for part of a single day inside the period (see minHoldingDays).
	Days int

	// ClosedInPeriod is true when the lot's disposal date falls inside the
	// period. It selects the disposed fee formula.
	ClosedInPeriod bool
}

// minHoldingDays is the floor applied when a lot is acquired and disposed on
// the same day inside a period. A position that genuinely existed for part of
// a day is billed for one day rather than zero.
//
// The floor is policy, not arithmetic: dropping it to 0 would make same-day
// round trips free of holding fees entirely.
const minHoldingDays = 1

// Clip computes the overlap between a lot's lifetime and a billing period.
//
// holdingStart is the later of the acquisition date and the period start;
// holdingEnd is the earlier of the disposal date (period end for open lots)
// and the period end. The second return value is false when the lot lies
// fully outside the period and contributes nothing to it.
//
// Day counting is date-granular: inputs are truncated to midnight UTC, and
// Days = holdingEnd - holdingStart in days. The one exception is the same-day
// floor: a lot acquired and disposed on the same day within the period yields
// Days = minHoldingDays instead of an empty window.
func Clip(lot Lot, p Period) (Window, bool) {
	start := maxDate(dateOf(lot.AcquiredAt), p.Start)

	end := p.End
	if lot.DisposedAt != nil {
		end = minDate(dateOf(*lot.DisposedAt), p.End)
	}

	if start.After(end) {
		return Window{}, false
	}

	closedInPeriod := lot.DisposedAt != nil && p.Contains(dateOf(*lot.DisposedAt))

	days := int(end.Sub(start).Hours() / 24)
	if days == 0 {
		// start == end. The lot was alive inside the period for part of this
		// single day only when the disposal happened before the period end;
		// start == end == p.End means the lot was acquired at or after the
		// period boundary and is outside.
		if !end.Before(p.End) {
			return Window{}, false
		}
		days = minHoldingDays
	}

	return Window{
		Start:          start,
		End:            end,
		Days:           days,
		ClosedInPeriod: closedInPeriod,
	}, true
}

// dateOf truncates a timestamp to midnight UTC. All interval arithmetic in
// the engine happens at date granularity to match how trade dates are stored.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

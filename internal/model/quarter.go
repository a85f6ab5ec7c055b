package model

import "github.com/shopspring/decimal"

// QuarterConfig is the authoritative day count for a fiscal quarter.
// The value is configured externally (1..92) and consumed by the calculation
// engine; the engine never derives the day count from the calendar itself,
// because non-standard fiscal calendars are allowed.
type QuarterConfig struct {
	Year          int `json:"year"`
	Quarter       int `json:"quarter"`
	DaysInQuarter int `json:"daysInQuarter"`
}

// BrokerageRate is the configured brokerage rate, a decimal fraction
// (e.g. 0.01 for 1%). The engine receives it as an explicit parameter of
// every calculation.
type BrokerageRate struct {
	ID        int             `json:"id"`
	Rate      decimal.Decimal `json:"rate"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fee formula identifiers recorded on every detail row.
const (
	// FormulaHeld prorates the fee on the position value by the fraction of
	// the period the lot was held: positionValue x rate x holdingDays/totalDays.
	FormulaHeld = "held"

	// FormulaDisposed charges a transaction-style fee on the realized
	// disposal: disposalValue x rate. Not prorated by days.
	FormulaDisposed = "disposed"
)

// BrokerageDetail is one row per (lot, period) overlap: the atomic output of
// the fee formula engine. Rows are immutable once produced and are replaced
// wholesale whenever the (client, period) combination is recalculated.
type BrokerageDetail struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId"`
	StockID  string `json:"stockId"`
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`

	// TradeID references the buy trade that opened the lot.
	TradeID  string `json:"tradeId"`
	Quantity int64  `json:"quantity"`

	AcquiredPrice decimal.Decimal  `json:"acquiredPrice"`
	AcquiredDate  time.Time        `json:"acquiredDate"`
	DisposedPrice *decimal.Decimal `json:"disposedPrice,omitempty"`
	DisposedDate  *time.Time       `json:"disposedDate,omitempty"`

	// Clipped holding interval within the period, [HoldingStart, HoldingEnd).
	HoldingStart      time.Time `json:"holdingStart"`
	HoldingEnd        time.Time `json:"holdingEnd"`
	HoldingDays       int       `json:"holdingDays"`
	TotalDaysInPeriod int       `json:"totalDaysInPeriod"`

	PositionValue    decimal.Decimal  `json:"positionValue"`
	DisposalValue    *decimal.Decimal `json:"disposalValue,omitempty"`
	DisposedInPeriod bool             `json:"disposedInPeriod"`

	// CalculationFormula records, verbatim, the formula identifier and the
	// numeric inputs used, so every amount is auditable without re-deriving
	// it from raw trades.
	Formula            string          `json:"formula"`
	CalculationFormula string          `json:"calculationFormula"`
	BrokerageAmount    decimal.Decimal `json:"brokerageAmount"`

	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// DailySummary aggregates all brokerage details for a client within one
// monthly billing period, keyed by the period start date. It is created on
// the first calculation for a period and overwritten in place on every
// recalculation.
type DailySummary struct {
	ClientID          string          `json:"clientId"`
	PeriodStart       time.Time       `json:"periodStart"`
	PeriodEnd         time.Time       `json:"periodEnd"`
	TotalDays         int             `json:"totalDays"`
	TotalBrokerage    decimal.Decimal `json:"totalBrokerage"`
	TotalHoldingValue decimal.Decimal `json:"totalHoldingValue"`
	TotalTurnover     decimal.Decimal `json:"totalTurnover"`
	TotalTrades       int             `json:"totalTrades"`
	TotalHoldingDays  int             `json:"totalHoldingDays"`
	CalculatedAt      time.Time       `json:"calculatedAt"`
}

// QuarterlySummary aggregates the three constituent monthly results of a
// fiscal quarter. The payment fields (IsPaid, PaidAmount, PaidDate) are owned
// by the external payment-recording workflow: recalculation carries them
// forward from the existing row and never resets them to defaults unless
// explicitly told to.
type QuarterlySummary struct {
	ClientID          string          `json:"clientId"`
	Year              int             `json:"year"`
	Quarter           int             `json:"quarter"`
	DaysInQuarter     int             `json:"daysInQuarter"`
	TotalBrokerage    decimal.Decimal `json:"totalBrokerage"`
	TotalHoldingValue decimal.Decimal `json:"totalHoldingValue"`
	TotalTurnover     decimal.Decimal `json:"totalTurnover"`
	TotalTrades       int             `json:"totalTrades"`
	TotalHoldingDays  int             `json:"totalHoldingDays"`

	// Averages over the configured days in the quarter, not calendar days.
	AvgDailyHolding  decimal.Decimal `json:"avgDailyHolding"`
	AvgDailyTurnover decimal.Decimal `json:"avgDailyTurnover"`

	IsPaid     bool             `json:"isPaid"`
	PaidAmount *decimal.Decimal `json:"paidAmount,omitempty"`
	PaidDate   *time.Time       `json:"paidDate,omitempty"`

	CalculatedAt time.Time `json:"calculatedAt"`
}

// CalculationResult is the full output of one calculation run: the summary
// row(s) plus the detail rows that produced them. Monthly runs populate
// Summary; quarterly runs populate Quarterly.
type CalculationResult struct {
	Summary   *DailySummary     `json:"summary,omitempty"`
	Quarterly *QuarterlySummary `json:"quarterly,omitempty"`
	Details   []BrokerageDetail `json:"details"`
}

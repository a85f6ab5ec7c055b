package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock represents tradeable reference data for a listed instrument.
// CurrentPrice is a reference price used for valuation display only; the
// brokerage fee formulas use trade prices, never this field.
type Stock struct {
	ID           string          `json:"id"`
	Symbol       string          `json:"symbol"`
	Exchange     string          `json:"exchange"`
	Name         string          `json:"name"`
	Isin         string          `json:"isin,omitempty"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	CreatedAt    time.Time       `json:"createdAt,omitempty"`
}

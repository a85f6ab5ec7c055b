package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade side values.
const (
	TradeSideBuy  = "buy"
	TradeSideSell = "sell"
)

// Trade represents a single buy or sell recorded for a client and stock.
// Trades are created by the ledger and are read-only to the calculation
// engine. For a given client and stock, trades are totally ordered by
// (TradeDate, CreatedAt, ID); the CreatedAt/ID tiebreak gives same-day trades
// a stable insertion order so that recomputation is deterministic.
type Trade struct {
	ID        string          `json:"id"`
	ClientID  string          `json:"clientId"`
	StockID   string          `json:"stockId"`
	Side      string          `json:"side"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	TradeDate time.Time       `json:"tradeDate"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}

// NetAmount returns quantity x price for the trade.
func (t Trade) NetAmount() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Quantity))
}

// TradeResponse represents a trade with enriched data for API responses.
type TradeResponse struct {
	ID         string          `json:"id"`
	ClientID   string          `json:"clientId"`
	ClientCode string          `json:"clientCode"`
	StockID    string          `json:"stockId"`
	Symbol     string          `json:"symbol"`
	Exchange   string          `json:"exchange"`
	Side       string          `json:"side"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	NetAmount  decimal.Decimal `json:"netAmount"`
	TradeDate  time.Time       `json:"tradeDate"`
}

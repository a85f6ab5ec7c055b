// Package engine implements the holding-period brokerage calculation engine:
// FIFO lot matching over a client's trade history, clipping of lot lifetimes
// to billing periods, and the two fee formulas (held vs. disposed).
//
// Everything in this package is a pure function of its explicit inputs.
// Configuration (brokerage rate, days in quarter) is passed as parameters,
// never read from ambient state, so that identical inputs always produce
// identical output and recomputation is idempotent.
//
// All monetary arithmetic uses shopspring/decimal, never float64.
package engine

import (
	"fmt"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
	"github.com/shopspring/decimal"
)

// Lot is a traceable quantity slice opened by one buy trade, open until
// matched against a sell. Lots are derived from the trade stream on every
// calculation run and are never persisted.
type Lot struct {
	ClientID string
	StockID  string

	// TradeID references the buy trade that opened the lot.
	TradeID  string
	Quantity int64

	AcquiredAt    time.Time
	AcquiredPrice decimal.Decimal

	// DisposedAt/DisposedPrice are nil while the lot is still open.
	DisposedAt    *time.Time
	DisposedPrice *decimal.Decimal
}

// Open reports whether the lot has not been closed by a sell.
func (l Lot) Open() bool {
	return l.DisposedAt == nil
}

// OversellError reports a sell trade requesting more quantity than is open
// for the client and stock. The engine surfaces the shortfall and refuses to
// fabricate lots; which historical trade is wrong is for the operator to
// decide.
type OversellError struct {
	StockID   string
	TradeID   string
	Requested int64
	Available int64
}

func (e *OversellError) Error() string {
	return fmt.Sprintf("sell of %d exceeds open quantity %d for stock %s (shortfall %d)",
		e.Requested, e.Available, e.StockID, e.Shortfall())
}

// Unwrap lets callers match the error with errors.Is(err, apperrors.ErrInsufficientQuantity).
func (e *OversellError) Unwrap() error {
	return apperrors.ErrInsufficientQuantity
}

// Shortfall returns the quantity that could not be matched against open lots.
func (e *OversellError) Shortfall() int64 {
	return e.Requested - e.Available
}

// openSlice is one entry in the FIFO queue of open quantity. The queue is a
// slice with a front cursor rather than a linked structure; consumed entries
// are skipped by advancing the cursor.
type openSlice struct {
	tradeID  string
	quantity int64
	date     time.Time
	price    decimal.Decimal
}

// MatchLots reconstructs the open and closed lots for one client and stock
// from its complete, time-ordered trade list, using first-in-first-out
// matching.
//
// On a buy, a new slice of that quantity/price/date joins the back of the
// open queue. On a sell, quantity is consumed from the front, oldest slice
// first; a slice larger than the remaining sell quantity splits into a closed
// portion and a still-open remainder that keeps its original acquisition
// date and price.
//
// Matching is a pure function of the ordered input: identical trades always
// yield identical lots, which is what makes recalculation idempotent.
//
// Returns an *OversellError (wrapping apperrors.ErrInsufficientQuantity) when
// a sell requests more than the total open quantity; no lots are fabricated
// and no partial result is returned. Trades with non-positive quantity are
// rejected with apperrors.ErrNegativeQuantity.
func MatchLots(trades []model.Trade) ([]Lot, error) {
	var lots []Lot
	var queue []openSlice
	front := 0

	for _, t := range trades {
		if t.Quantity <= 0 {
			return nil, fmt.Errorf("trade %s: %w", t.ID, apperrors.ErrNegativeQuantity)
		}

		switch t.Side {
		case model.TradeSideBuy:
			queue = append(queue, openSlice{
				tradeID:  t.ID,
				quantity: t.Quantity,
				date:     t.TradeDate,
				price:    t.Price,
			})

		case model.TradeSideSell:
			var available int64
			for i := front; i < len(queue); i++ {
				available += queue[i].quantity
			}
			if t.Quantity > available {
				return nil, &OversellError{
					StockID:   t.StockID,
					TradeID:   t.ID,
					Requested: t.Quantity,
					Available: available,
				}
			}

			remaining := t.Quantity
			for remaining > 0 {
				s := &queue[front]
				closed := min(s.quantity, remaining)

				disposedAt := t.TradeDate
				disposedPrice := t.Price
				lots = append(lots, Lot{
					ClientID:      t.ClientID,
					StockID:       t.StockID,
					TradeID:       s.tradeID,
					Quantity:      closed,
					AcquiredAt:    s.date,
					AcquiredPrice: s.price,
					DisposedAt:    &disposedAt,
					DisposedPrice: &disposedPrice,
				})

				s.quantity -= closed
				remaining -= closed
				if s.quantity == 0 {
					front++
				}
			}

		default:
			return nil, fmt.Errorf("trade %s: unknown side %q: %w", t.ID, t.Side, apperrors.ErrDataInconsistency)
		}
	}

	// Whatever is left in the queue is still held.
	for i := front; i < len(queue); i++ {
		s := queue[i]
		if s.quantity == 0 {
			continue
		}
		var clientID, stockID string
		if len(trades) > 0 {
			clientID = trades[0].ClientID
			stockID = trades[0].StockID
		}
		lots = append(lots, Lot{
			ClientID:      clientID,
			StockID:       stockID,
			TradeID:       s.tradeID,
			Quantity:      s.quantity,
			AcquiredAt:    s.date,
			AcquiredPrice: s.price,
		})
	}

	return lots, nil
}

package engine

import (
	"fmt"

	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
	"github.com/shopspring/decimal"
)

// amountScale is the currency minor unit: final brokerage amounts are rounded
// to 2 decimal places, half away from zero (round-half-up for the positive
// amounts this engine produces). Rounding is applied exactly once per detail,
// at the end of the formula, never on intermediate values or sums.
const amountScale int32 = 2

// ComputeDetail applies the fee formula to one lot-period overlap and returns
// the resulting detail row.
//
// The formula is selected by the window's ClosedInPeriod flag:
//
//   - held: the lot was still open at period end (or closed after it). The
//     fee prorates the position value by the fraction of the period held:
//     positionValue x rate x holdingDays/totalDaysInPeriod.
//
//   - disposed: the lot was closed inside the period. The fee is
//     transaction-style on the realized disposal, not prorated by days:
//     disposalValue x rate.
//
// The returned detail records the formula identifier and its numeric inputs
// verbatim in CalculationFormula, so the amount is auditable without
// re-deriving it from raw trades. The detail's ID is left empty; persistence
// assigns it.
func ComputeDetail(lot Lot, stock model.Stock, w Window, p Period, rate decimal.Decimal) model.BrokerageDetail {
	qty := decimal.NewFromInt(lot.Quantity)
	positionValue := qty.Mul(lot.AcquiredPrice)

	detail := model.BrokerageDetail{
		ClientID:          lot.ClientID,
		StockID:           lot.StockID,
		Symbol:            stock.Symbol,
		Exchange:          stock.Exchange,
		TradeID:           lot.TradeID,
		Quantity:          lot.Quantity,
		AcquiredPrice:     lot.AcquiredPrice,
		AcquiredDate:      dateOf(lot.AcquiredAt),
		HoldingStart:      w.Start,
		HoldingEnd:        w.End,
		HoldingDays:       w.Days,
		TotalDaysInPeriod: p.TotalDays,
		PositionValue:     positionValue,
		DisposedInPeriod:  w.ClosedInPeriod,
		PeriodStart:       p.Start,
		PeriodEnd:         p.End,
	}

	if lot.DisposedAt != nil {
		d := dateOf(*lot.DisposedAt)
		detail.DisposedDate = &d
		detail.DisposedPrice = lot.DisposedPrice
		dv := qty.Mul(*lot.DisposedPrice)
		detail.DisposalValue = &dv
	}

	if w.ClosedInPeriod {
		amount := detail.DisposalValue.Mul(rate).Round(amountScale)
		detail.Formula = model.FormulaDisposed
		detail.CalculationFormula = fmt.Sprintf(
			"disposed: disposalValue %s x rate %s = %s",
			detail.DisposalValue, rate, amount,
		)
		detail.BrokerageAmount = amount
		return detail
	}

	amount := positionValue.
		Mul(rate).
		Mul(decimal.NewFromInt(int64(w.Days))).
		Div(decimal.NewFromInt(int64(p.TotalDays))).
		Round(amountScale)
	detail.Formula = model.FormulaHeld
	detail.CalculationFormula = fmt.Sprintf(
		"held: positionValue %s x rate %s x days %d/%d = %s",
		positionValue, rate, w.Days, p.TotalDays, amount,
	)
	detail.BrokerageAmount = amount
	return detail
}

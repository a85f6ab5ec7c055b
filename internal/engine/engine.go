package engine

import (
	"sort"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
	"github.com/shopspring/decimal"
)

// ComputeDetails runs the full per-client pipeline for one billing period:
// FIFO lot matching per stock, clipping to the period, and fee formula
// application. The trade list must be the client's complete, time-ordered
// history (matching depends on trades before the period; a lot bought last
// year and still held this month accrues fees this month).
//
// stocks maps stock ID to reference data for symbol/exchange enrichment.
// Lots with no overlap with the period are skipped. The returned details are
// deterministically ordered (by symbol, then acquisition date, then opening
// trade, then holding start), so identical inputs yield identical output.
func ComputeDetails(trades []model.Trade, stocks map[string]model.Stock, p Period, rate decimal.Decimal) ([]model.BrokerageDetail, error) {
	byStock := make(map[string][]model.Trade)
	stockIDs := make([]string, 0, len(byStock))
	for _, t := range trades {
		if _, seen := byStock[t.StockID]; !seen {
			stockIDs = append(stockIDs, t.StockID)
		}
		byStock[t.StockID] = append(byStock[t.StockID], t)
	}
	sort.Strings(stockIDs)

	details := []model.BrokerageDetail{}
	for _, stockID := range stockIDs {
		lots, err := MatchLots(byStock[stockID])
		if err != nil {
			return nil, err
		}

		stock := stocks[stockID]
		for _, lot := range lots {
			w, ok := Clip(lot, p)
			if !ok {
				continue
			}
			details = append(details, ComputeDetail(lot, stock, w, p, rate))
		}
	}

	sort.SliceStable(details, func(i, j int) bool {
		a, b := details[i], details[j]
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}
		if !a.AcquiredDate.Equal(b.AcquiredDate) {
			return a.AcquiredDate.Before(b.AcquiredDate)
		}
		if a.TradeID != b.TradeID {
			return a.TradeID < b.TradeID
		}
		return a.HoldingStart.Before(b.HoldingStart)
	})

	return details, nil
}

// Summarize aggregates detail rows into the period summary for one client:
// total brokerage across all details, position values of held lots into
// TotalHoldingValue, disposal values of disposed lots into TotalTurnover,
// holding days into TotalHoldingDays, and the count of distinct opening
// trades into TotalTrades.
//
// Sums are exact decimal sums of the already-rounded per-detail amounts; no
// additional rounding is applied here.
func Summarize(clientID string, p Period, details []model.BrokerageDetail, calculatedAt time.Time) model.DailySummary {
	s := model.DailySummary{
		ClientID:          clientID,
		PeriodStart:       p.Start,
		PeriodEnd:         p.End,
		TotalDays:         p.TotalDays,
		TotalBrokerage:    decimal.Zero,
		TotalHoldingValue: decimal.Zero,
		TotalTurnover:     decimal.Zero,
		CalculatedAt:      calculatedAt,
	}

	seenTrades := make(map[string]struct{})
	for _, d := range details {
		s.TotalBrokerage = s.TotalBrokerage.Add(d.BrokerageAmount)
		s.TotalHoldingDays += d.HoldingDays

		if d.DisposedInPeriod && d.DisposalValue != nil {
			s.TotalTurnover = s.TotalTurnover.Add(*d.DisposalValue)
		} else {
			s.TotalHoldingValue = s.TotalHoldingValue.Add(d.PositionValue)
		}

		if _, ok := seenTrades[d.TradeID]; !ok {
			seenTrades[d.TradeID] = struct{}{}
			s.TotalTrades++
		}
	}

	return s
}

// AggregateQuarter rolls the three constituent monthly summaries of a fiscal
// quarter up into a quarterly summary. Averages divide the quarter totals by
// the CONFIGURED days-in-quarter value, not by the calendar span, and are
// rounded to the currency minor unit once here.
//
// The payment fields are left at their zero values: ownership of
// IsPaid/PaidAmount/PaidDate belongs to the external payment workflow, and
// preserving them across recalculation is the persistence layer's job.
func AggregateQuarter(clientID string, year, quarter, daysInQuarter int, months []model.DailySummary, calculatedAt time.Time) model.QuarterlySummary {
	q := model.QuarterlySummary{
		ClientID:          clientID,
		Year:              year,
		Quarter:           quarter,
		DaysInQuarter:     daysInQuarter,
		TotalBrokerage:    decimal.Zero,
		TotalHoldingValue: decimal.Zero,
		TotalTurnover:     decimal.Zero,
		CalculatedAt:      calculatedAt,
	}

	for _, m := range months {
		q.TotalBrokerage = q.TotalBrokerage.Add(m.TotalBrokerage)
		q.TotalHoldingValue = q.TotalHoldingValue.Add(m.TotalHoldingValue)
		q.TotalTurnover = q.TotalTurnover.Add(m.TotalTurnover)
		q.TotalTrades += m.TotalTrades
		q.TotalHoldingDays += m.TotalHoldingDays
	}

	days := decimal.NewFromInt(int64(daysInQuarter))
	q.AvgDailyHolding = q.TotalHoldingValue.Div(days).Round(amountScale)
	q.AvgDailyTurnover = q.TotalTurnover.Div(days).Round(amountScale)

	return q
}

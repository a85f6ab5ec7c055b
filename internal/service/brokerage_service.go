package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/engine"
	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
	"github.com/Ayushkalathiya945/investment--sub001/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// calculateAllConcurrency bounds the number of clients recalculated in
// parallel by CalculateAllMonth/CalculateAllQuarter. Each client's pipeline
// only reads trades and writes its own summary rows, so parallelism across
// clients is safe; the limit just keeps sqlite contention reasonable.
const calculateAllConcurrency = 4

// BrokerageService orchestrates the holding-period brokerage calculation
// pipeline: trade history -> FIFO lots -> clipped holding windows -> fee
// details -> persisted summaries.
//
// The pipeline itself (internal/engine) is pure; this service supplies its
// inputs (trades, stock reference data, configured rate and quarter day
// counts), assigns row identities, and persists the result atomically per
// (client, period). Recalculation for the same client is serialized through
// a per-client mutex so that concurrent requests never interleave the
// read-modify-write that preserves quarterly payment state.
type BrokerageService struct {
	tradeRepo     *repository.TradeRepository
	stockRepo     *repository.StockRepository
	clientRepo    *repository.ClientRepository
	quarterRepo   *repository.QuarterRepository
	brokerageRepo *repository.BrokerageRepository
	locks         *keyedMutex
}

// NewBrokerageService creates a new BrokerageService with the provided repository dependencies.
func NewBrokerageService(
	tradeRepo *repository.TradeRepository,
	stockRepo *repository.StockRepository,
	clientRepo *repository.ClientRepository,
	quarterRepo *repository.QuarterRepository,
	brokerageRepo *repository.BrokerageRepository,
) *BrokerageService {
	return &BrokerageService{
		tradeRepo:     tradeRepo,
		stockRepo:     stockRepo,
		clientRepo:    clientRepo,
		quarterRepo:   quarterRepo,
		brokerageRepo: brokerageRepo,
		locks:         newKeyedMutex(),
	}
}

// CalculateMonth recomputes the brokerage details and monthly summary for one
// client and calendar month, replacing any prior result for that period.
//
// The computation is idempotent: it is a pure function of the client's trade
// history and the configured rate, so recalculating without a data change
// reproduces the same rows. Persistence is all-or-nothing: if any part of
// the pipeline fails, the previously stored result is left untouched.
//
// Returns the stored summary and the full detail list.
//
// Error cases (all recoverable by fixing data or configuration, none
// retryable as-is):
//   - apperrors.ErrClientNotFound
//   - apperrors.ErrRateNotConfigured
//   - apperrors.ErrInvalidPeriod
//   - apperrors.ErrInsufficientQuantity (as *engine.OversellError with the shortfall)
func (s *BrokerageService) CalculateMonth(ctx context.Context, clientID string, year int, month time.Month) (model.CalculationResult, error) {
	if _, err := s.clientRepo.GetClient(clientID); err != nil {
		return model.CalculationResult{}, err
	}

	unlock := s.locks.Lock(clientID)
	defer unlock()

	mc, err := s.computeMonth(clientID, year, month)
	if err != nil {
		return model.CalculationResult{}, err
	}

	if err := s.brokerageRepo.SaveMonthCalculation(ctx, mc); err != nil {
		return model.CalculationResult{}, err
	}

	return model.CalculationResult{
		Summary: &mc.Summary,
		Details: mc.Details,
	}, nil
}

// CalculateQuarter recomputes a full fiscal quarter for one client: the three
// constituent months are recalculated and the quarterly summary aggregated
// from them, all persisted in a single transaction.
//
// The quarter's day count comes from quarter configuration and is never
// derived from the calendar; a missing configuration fails the calculation
// with apperrors.ErrQuarterNotConfigured.
//
// Payment state (isPaid/paidAmount/paidDate) on an existing quarterly summary
// is preserved across the recalculation: a quarter already marked paid stays
// paid while its financial totals update. Passing resetPayment=true
// deliberately clears the payment fields back to unpaid.
func (s *BrokerageService) CalculateQuarter(ctx context.Context, clientID string, year, quarter int, resetPayment bool) (model.CalculationResult, error) {
	if _, err := s.clientRepo.GetClient(clientID); err != nil {
		return model.CalculationResult{}, err
	}

	qc, err := s.quarterRepo.GetQuarterConfig(year, quarter)
	if err != nil {
		return model.CalculationResult{}, err
	}

	// Validates quarter number, year and the configured day count bounds.
	if _, err := engine.QuarterPeriod(year, quarter, qc.DaysInQuarter); err != nil {
		return model.CalculationResult{}, err
	}

	months, err := engine.QuarterMonths(quarter)
	if err != nil {
		return model.CalculationResult{}, err
	}

	unlock := s.locks.Lock(clientID)
	defer unlock()

	now := time.Now().UTC()
	monthCalcs := make([]repository.MonthCalculation, 0, len(months))
	summaries := make([]model.DailySummary, 0, len(months))
	details := []model.BrokerageDetail{}

	for _, month := range months {
		mc, err := s.computeMonth(clientID, year, month)
		if err != nil {
			return model.CalculationResult{}, err
		}
		monthCalcs = append(monthCalcs, mc)
		summaries = append(summaries, mc.Summary)
		details = append(details, mc.Details...)
	}

	quarterly := engine.AggregateQuarter(clientID, year, quarter, qc.DaysInQuarter, summaries, now)

	if err := s.brokerageRepo.SaveQuarterCalculation(ctx, monthCalcs, quarterly, resetPayment); err != nil {
		return model.CalculationResult{}, err
	}

	// Read the stored row back so the response reflects carried-forward
	// payment state, not the engine's zero values.
	stored, err := s.brokerageRepo.GetQuarterlySummary(clientID, year, quarter)
	if err != nil {
		return model.CalculationResult{}, err
	}

	return model.CalculationResult{
		Quarterly: &stored,
		Details:   details,
	}, nil
}

// computeMonth runs the pure pipeline for one client-month and stamps the
// resulting rows with identities and a calculation timestamp. It does not
// persist anything.
func (s *BrokerageService) computeMonth(clientID string, year int, month time.Month) (repository.MonthCalculation, error) {
	period, err := engine.MonthPeriod(year, month)
	if err != nil {
		return repository.MonthCalculation{}, err
	}

	rate, err := s.quarterRepo.GetRate()
	if err != nil {
		return repository.MonthCalculation{}, err
	}

	trades, err := s.tradeRepo.GetTradesByClient(clientID)
	if err != nil {
		return repository.MonthCalculation{}, err
	}

	stockIDs := make([]string, 0)
	seen := make(map[string]struct{})
	for _, t := range trades {
		if _, ok := seen[t.StockID]; !ok {
			seen[t.StockID] = struct{}{}
			stockIDs = append(stockIDs, t.StockID)
		}
	}

	stocks, err := s.stockRepo.GetStocksByIDs(stockIDs)
	if err != nil {
		return repository.MonthCalculation{}, err
	}

	details, err := engine.ComputeDetails(trades, stocks, period, rate.Rate)
	if err != nil {
		return repository.MonthCalculation{}, fmt.Errorf("calculation for client %s: %w", clientID, err)
	}

	now := time.Now().UTC()
	for i := range details {
		details[i].ID = uuid.New().String()
		details[i].CreatedAt = now
	}

	return repository.MonthCalculation{
		Summary: engine.Summarize(clientID, period, details, now),
		Details: details,
	}, nil
}

// GetMonthSummary returns the last-computed monthly summary and its detail
// rows without recomputing anything.
func (s *BrokerageService) GetMonthSummary(clientID string, year int, month time.Month) (model.CalculationResult, error) {
	period, err := engine.MonthPeriod(year, month)
	if err != nil {
		return model.CalculationResult{}, err
	}

	summary, err := s.brokerageRepo.GetDailySummary(clientID, period.Start)
	if err != nil {
		return model.CalculationResult{}, err
	}

	details, err := s.brokerageRepo.GetDetails(clientID, period.Start, period.End)
	if err != nil {
		return model.CalculationResult{}, err
	}

	return model.CalculationResult{Summary: &summary, Details: details}, nil
}

// GetQuarterSummary returns the last-computed quarterly summary and the
// detail rows of its three months without recomputing anything.
func (s *BrokerageService) GetQuarterSummary(clientID string, year, quarter int) (model.CalculationResult, error) {
	months, err := engine.QuarterMonths(quarter)
	if err != nil {
		return model.CalculationResult{}, err
	}

	quarterly, err := s.brokerageRepo.GetQuarterlySummary(clientID, year, quarter)
	if err != nil {
		return model.CalculationResult{}, err
	}

	start := time.Date(year, months[0], 1, 0, 0, 0, 0, time.UTC)
	details, err := s.brokerageRepo.GetDetails(clientID, start, start.AddDate(0, 3, 0))
	if err != nil {
		return model.CalculationResult{}, err
	}

	return model.CalculationResult{Quarterly: &quarterly, Details: details}, nil
}

// CalculateAllMonth recomputes the given month for every client, a bounded
// number in parallel. Per-client pipelines are independent and serialized by
// the per-client locking above, so this is safe to run while individual
// requests come in. Returns the number of clients recalculated.
func (s *BrokerageService) CalculateAllMonth(ctx context.Context, year int, month time.Month) (int, error) {
	clients, err := s.clientRepo.GetAllClients()
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(calculateAllConcurrency)

	for _, c := range clients {
		g.Go(func() error {
			if _, err := s.CalculateMonth(ctx, c.ID, year, month); err != nil {
				return fmt.Errorf("client %s: %w", c.Code, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	return len(clients), nil
}

// CalculateAllQuarter recomputes the given quarter for every client, a
// bounded number in parallel. Payment state is preserved for each client
// (resetPayment is never passed on bulk runs). Returns the number of clients
// recalculated.
func (s *BrokerageService) CalculateAllQuarter(ctx context.Context, year, quarter int) (int, error) {
	clients, err := s.clientRepo.GetAllClients()
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(calculateAllConcurrency)

	for _, c := range clients {
		g.Go(func() error {
			if _, err := s.CalculateQuarter(ctx, c.ID, year, quarter, false); err != nil {
				return fmt.Errorf("client %s: %w", c.Code, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	return len(clients), nil
}

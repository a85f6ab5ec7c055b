package service

import (
	"context"
	"fmt"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
	"github.com/Ayushkalathiya945/investment--sub001/internal/repository"
	"github.com/shopspring/decimal"
)

// ConfigService manages the calculation configuration: fiscal quarter day
// counts and the brokerage rate.
type ConfigService struct {
	quarterRepo *repository.QuarterRepository
}

// NewConfigService creates a new ConfigService with the provided repository dependency.
func NewConfigService(quarterRepo *repository.QuarterRepository) *ConfigService {
	return &ConfigService{quarterRepo: quarterRepo}
}

// GetQuarterConfig retrieves the configured day count for a fiscal quarter.
func (s *ConfigService) GetQuarterConfig(year, quarter int) (model.QuarterConfig, error) {
	return s.quarterRepo.GetQuarterConfig(year, quarter)
}

// SetQuarterConfig creates or replaces the day count for a fiscal quarter.
// The day count is authoritative for the quarter and may legitimately differ
// from the calendar span; it must stay within a plausible quarter length.
func (s *ConfigService) SetQuarterConfig(ctx context.Context, req request.SetQuarterConfigRequest) (model.QuarterConfig, error) {
	if req.Quarter < 1 || req.Quarter > 4 {
		return model.QuarterConfig{}, apperrors.ErrInvalidQuarter
	}
	if req.DaysInQuarter < 1 || req.DaysInQuarter > 92 {
		return model.QuarterConfig{}, fmt.Errorf("%w: days in quarter must be between 1 and 92", apperrors.ErrInvalidQuarter)
	}

	qc := model.QuarterConfig{
		Year:          req.Year,
		Quarter:       req.Quarter,
		DaysInQuarter: req.DaysInQuarter,
	}

	if err := s.quarterRepo.UpsertQuarterConfig(ctx, qc); err != nil {
		return model.QuarterConfig{}, err
	}

	return qc, nil
}

// GetRate retrieves the configured brokerage rate.
func (s *ConfigService) GetRate() (model.BrokerageRate, error) {
	return s.quarterRepo.GetRate()
}

// SetRate creates or replaces the brokerage rate. The rate applies to all
// calculations from the next run onward; already-persisted summaries keep the
// rate they were calculated with until recalculated.
func (s *ConfigService) SetRate(ctx context.Context, req request.SetRateRequest) (model.BrokerageRate, error) {
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		return model.BrokerageRate{}, fmt.Errorf("invalid rate: %w", err)
	}
	if rate.IsNegative() {
		return model.BrokerageRate{}, fmt.Errorf("%w: rate must not be negative", apperrors.ErrMissingRequiredField)
	}

	br := model.BrokerageRate{ID: 1, Rate: rate}
	if err := s.quarterRepo.SetRate(ctx, br); err != nil {
		return model.BrokerageRate{}, err
	}

	return s.quarterRepo.GetRate()
}

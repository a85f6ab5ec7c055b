package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
	"github.com/Ayushkalathiya945/investment--sub001/internal/repository"
	"github.com/shopspring/decimal"
)

// PaymentService records payment state against calculated quarterly summaries.
// Payment fields are owned by this workflow; the calculation engine never
// writes them except on an explicit reset.
type PaymentService struct {
	clientRepo    *repository.ClientRepository
	brokerageRepo *repository.BrokerageRepository
}

// NewPaymentService creates a new PaymentService with the provided repository dependencies.
func NewPaymentService(
	clientRepo *repository.ClientRepository,
	brokerageRepo *repository.BrokerageRepository,
) *PaymentService {
	return &PaymentService{
		clientRepo:    clientRepo,
		brokerageRepo: brokerageRepo,
	}
}

// RecordQuarterPayment marks a client's quarter as paid with the given amount
// and date, and returns the updated summary. The quarter must have been
// calculated first; payments cannot be recorded against missing summaries.
func (s *PaymentService) RecordQuarterPayment(ctx context.Context, req request.RecordPaymentRequest) (*model.QuarterlySummary, error) {
	if _, err := s.clientRepo.GetClient(req.ClientID); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid payment amount: %w", err)
	}

	paidDate, err := time.Parse("2006-01-02", req.PaidDate)
	if err != nil {
		return nil, fmt.Errorf("invalid paid date: %w", err)
	}

	if err := s.brokerageRepo.RecordQuarterPayment(ctx, req.ClientID, req.Year, req.Quarter, amount, paidDate.UTC()); err != nil {
		return nil, err
	}

	summary, err := s.brokerageRepo.GetQuarterlySummary(req.ClientID, req.Year, req.Quarter)
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

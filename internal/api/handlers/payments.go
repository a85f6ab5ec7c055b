package handlers

import (
	"errors"
	"net/http"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/api/response"
	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/service"
	"github.com/Ayushkalathiya945/investment--sub001/internal/validation"
)

// PaymentHandler handles HTTP requests for the quarterly payment workflow.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler with the provided service dependency.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// RecordPayment handles POST requests to mark a client's quarter as paid.
// The quarter must have been calculated first. Payment state survives later
// recalculation of the quarter.
//
// Endpoint: POST /api/payment/quarter
// Request Body: RecordPaymentRequest (clientId, year, quarter, amount, paidDate)
// Response: 200 OK with the updated QuarterlySummary
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the client or calculated quarter does not exist
// Error: 500 Internal Server Error if recording fails
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RecordPaymentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRecordPayment(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	summary, err := h.paymentService.RecordQuarterPayment(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrClientNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrClientNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrSummaryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSummaryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRecordPayment.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

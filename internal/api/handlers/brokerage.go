package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/api/response"
	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/engine"
	"github.com/Ayushkalathiya945/investment--sub001/internal/service"
	"github.com/Ayushkalathiya945/investment--sub001/internal/validation"
	"github.com/go-chi/chi/v5"
)

// BrokerageHandler handles HTTP requests for brokerage calculation endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating the
// calculation pipeline to the brokerageService.
type BrokerageHandler struct {
	brokerageService *service.BrokerageService
}

// NewBrokerageHandler creates a new BrokerageHandler with the provided service dependency.
func NewBrokerageHandler(brokerageService *service.BrokerageService) *BrokerageHandler {
	return &BrokerageHandler{
		brokerageService: brokerageService,
	}
}

// BulkCalculateResponse reports the outcome of a bulk recalculation.
type BulkCalculateResponse struct {
	ClientsCalculated int `json:"clientsCalculated"`
}

// Calculate handles POST requests to recompute brokerage for a client period.
// Month requests replace the monthly summary and its detail rows; quarter
// requests recalculate the three constituent months and the quarterly
// aggregate in one transaction, preserving payment state unless resetPayment
// is set.
//
// Endpoint: POST /api/brokerage/calculate
// Request Body: CalculateRequest (clientId, periodKind, year, month|quarter, resetPayment)
// Response: 200 OK with CalculationResult
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if client not found
// Error: 409 Conflict if the client's ledger oversells a position
// Error: 422 Unprocessable Entity if the rate or quarter is not configured
// Error: 500 Internal Server Error if the calculation fails
func (h *BrokerageHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CalculateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCalculate(req, true); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	switch req.PeriodKind {
	case request.PeriodKindMonth:
		result, err := h.brokerageService.CalculateMonth(r.Context(), req.ClientID, req.Year, time.Month(req.Month))
		if err != nil {
			respondCalculationError(w, err)
			return
		}
		response.RespondJSON(w, http.StatusOK, result)
	case request.PeriodKindQuarter:
		result, err := h.brokerageService.CalculateQuarter(r.Context(), req.ClientID, req.Year, req.Quarter, req.ResetPayment)
		if err != nil {
			respondCalculationError(w, err)
			return
		}
		response.RespondJSON(w, http.StatusOK, result)
	}
}

// CalculateAll handles POST requests to recompute a period for every client.
// Bulk runs never reset payment state.
//
// Endpoint: POST /api/brokerage/calculate-all
// Request Body: CalculateRequest (periodKind, year, month|quarter; clientId ignored)
// Response: 200 OK with BulkCalculateResponse
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if any client's ledger oversells a position
// Error: 422 Unprocessable Entity if the rate or quarter is not configured
// Error: 500 Internal Server Error if the calculation fails
func (h *BrokerageHandler) CalculateAll(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CalculateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCalculate(req, false); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	var count int
	switch req.PeriodKind {
	case request.PeriodKindMonth:
		count, err = h.brokerageService.CalculateAllMonth(r.Context(), req.Year, time.Month(req.Month))
	case request.PeriodKindQuarter:
		count, err = h.brokerageService.CalculateAllQuarter(r.Context(), req.Year, req.Quarter)
	}
	if err != nil {
		respondCalculationError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, BulkCalculateResponse{ClientsCalculated: count})
}

// MonthSummary handles GET requests to retrieve the stored monthly summary and
// detail rows for a client, without recomputing anything.
//
// Endpoint: GET /api/brokerage/month/{uuid}?year=2026&month=7
// Response: 200 OK with CalculationResult
// Error: 400 Bad Request if the client ID or period parameters are invalid
// Error: 404 Not Found if the period has never been calculated
// Error: 500 Internal Server Error if retrieval fails
func (h *BrokerageHandler) MonthSummary(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "uuid")

	year, month, ok := parsePeriodQuery(w, r, "month", 1, 12)
	if !ok {
		return
	}

	result, err := h.brokerageService.GetMonthSummary(clientID, year, time.Month(month))
	if err != nil {
		if errors.Is(err, apperrors.ErrSummaryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSummaryNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrInvalidPeriod) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidPeriod.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// QuarterSummary handles GET requests to retrieve the stored quarterly summary
// and the detail rows of its three months, without recomputing anything.
//
// Endpoint: GET /api/brokerage/quarter/{uuid}?year=2026&quarter=2
// Response: 200 OK with CalculationResult
// Error: 400 Bad Request if the client ID or period parameters are invalid
// Error: 404 Not Found if the quarter has never been calculated
// Error: 500 Internal Server Error if retrieval fails
func (h *BrokerageHandler) QuarterSummary(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "uuid")

	year, quarter, ok := parsePeriodQuery(w, r, "quarter", 1, 4)
	if !ok {
		return
	}

	result, err := h.brokerageService.GetQuarterSummary(clientID, year, quarter)
	if err != nil {
		if errors.Is(err, apperrors.ErrSummaryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSummaryNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrInvalidQuarter) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidQuarter.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// parsePeriodQuery reads the year query parameter plus a second period
// parameter (month or quarter) and bounds-checks it. Writes a 400 response
// and returns ok=false on any parse failure.
func parsePeriodQuery(w http.ResponseWriter, r *http.Request, name string, min, max int) (year, value int, ok bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid year parameter", err.Error())
		return 0, 0, false
	}

	value, err = strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || value < min || value > max {
		response.RespondError(w, http.StatusBadRequest, "invalid "+name+" parameter", "")
		return 0, 0, false
	}

	return year, value, true
}

// respondCalculationError maps calculation pipeline errors onto HTTP statuses.
// Oversells are surfaced as conflicts with the shortfall in the details so the
// back office can see exactly which trade broke the ledger.
func respondCalculationError(w http.ResponseWriter, err error) {
	var oversell *engine.OversellError
	switch {
	case errors.Is(err, apperrors.ErrClientNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrClientNotFound.Error(), err.Error())
	case errors.As(err, &oversell):
		response.RespondError(w, http.StatusConflict, apperrors.ErrInsufficientQuantity.Error(), oversell.Error())
	case errors.Is(err, apperrors.ErrRateNotConfigured):
		response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrRateNotConfigured.Error(), err.Error())
	case errors.Is(err, apperrors.ErrQuarterNotConfigured):
		response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrQuarterNotConfigured.Error(), err.Error())
	case errors.Is(err, apperrors.ErrInvalidPeriod), errors.Is(err, apperrors.ErrInvalidQuarter):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidPeriod.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCalculate.Error(), err.Error())
	}
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/api/response"
	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/service"
	"github.com/Ayushkalathiya945/investment--sub001/internal/validation"
)

// ConfigHandler handles HTTP requests for calculation configuration:
// fiscal quarter day counts and the brokerage rate.
type ConfigHandler struct {
	configService *service.ConfigService
}

// NewConfigHandler creates a new ConfigHandler with the provided service dependency.
func NewConfigHandler(configService *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{
		configService: configService,
	}
}

// GetQuarterConfig handles GET requests to retrieve a quarter's configured day count.
//
// Endpoint: GET /api/config/quarter?year=2026&quarter=2
// Response: 200 OK with QuarterConfig
// Error: 400 Bad Request if the period parameters are invalid
// Error: 404 Not Found if the quarter is not configured
// Error: 500 Internal Server Error if retrieval fails
func (h *ConfigHandler) GetQuarterConfig(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid year parameter", err.Error())
		return
	}
	quarter, err := strconv.Atoi(r.URL.Query().Get("quarter"))
	if err != nil || quarter < 1 || quarter > 4 {
		response.RespondError(w, http.StatusBadRequest, "invalid quarter parameter", "")
		return
	}

	qc, err := h.configService.GetQuarterConfig(year, quarter)
	if err != nil {
		if errors.Is(err, apperrors.ErrQuarterNotConfigured) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrQuarterNotConfigured.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveQuarter.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, qc)
}

// SetQuarterConfig handles PUT requests to create or replace a quarter's day count.
// The configured count is authoritative for quarterly averages; changing it
// takes effect on the next recalculation of the quarter.
//
// Endpoint: PUT /api/config/quarter
// Request Body: SetQuarterConfigRequest (year, quarter, daysInQuarter)
// Response: 200 OK with QuarterConfig
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if the write fails
func (h *ConfigHandler) SetQuarterConfig(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetQuarterConfigRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetQuarterConfig(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	qc, err := h.configService.SetQuarterConfig(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to set quarter configuration", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, qc)
}

// GetRate handles GET requests to retrieve the configured brokerage rate.
//
// Endpoint: GET /api/config/rate
// Response: 200 OK with BrokerageRate
// Error: 404 Not Found if no rate has been configured
// Error: 500 Internal Server Error if retrieval fails
func (h *ConfigHandler) GetRate(w http.ResponseWriter, _ *http.Request) {
	rate, err := h.configService.GetRate()
	if err != nil {
		if errors.Is(err, apperrors.ErrRateNotConfigured) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRateNotConfigured.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRate.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, rate)
}

// SetRate handles PUT requests to create or replace the brokerage rate.
// Stored summaries keep the rate they were calculated with until recalculated.
//
// Endpoint: PUT /api/config/rate
// Request Body: SetRateRequest (rate)
// Response: 200 OK with BrokerageRate
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if the write fails
func (h *ConfigHandler) SetRate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetRateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetRate(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	rate, err := h.configService.SetRate(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to set brokerage rate", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, rate)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/api/response"
	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/service"
	"github.com/Ayushkalathiya945/investment--sub001/internal/validation"
	"github.com/go-chi/chi/v5"
)

// maxImportSize caps stock CSV uploads at 10 MB.
const maxImportSize = 10 << 20

// StockHandler handles HTTP requests for stock master data endpoints.
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new StockHandler with the provided service dependency.
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// AllStocks handles GET requests to retrieve all stocks.
//
// Endpoint: GET /api/stock
// Response: 200 OK with array of Stock
// Error: 500 Internal Server Error if retrieval fails
func (h *StockHandler) AllStocks(w http.ResponseWriter, _ *http.Request) {
	stocks, err := h.stockService.GetAllStocks()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStocks.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stocks)
}

// GetStock handles GET requests to retrieve a single stock by ID.
//
// Endpoint: GET /api/stock/{uuid}
// Response: 200 OK with Stock
// Error: 400 Bad Request if stock ID is invalid (validated by middleware)
// Error: 404 Not Found if stock not found
// Error: 500 Internal Server Error if retrieval fails
func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	stockID := chi.URLParam(r, "uuid")

	stock, err := h.stockService.GetStock(stockID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStocks.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stock)
}

// CreateStock handles POST requests to create a new stock.
//
// Endpoint: POST /api/stock
// Request Body: CreateStockRequest (symbol, exchange, name, isin, currentPrice)
// Response: 201 Created with Stock
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the (symbol, exchange) pair already exists
// Error: 500 Internal Server Error if creation fails
func (h *StockHandler) CreateStock(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateStockRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateStock(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	stock, err := h.stockService.CreateStock(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEntry) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create stock", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, stock)
}

// UpdatePrice handles PUT requests to update a stock's reference price.
// The price values open positions in brokerage calculations.
//
// Endpoint: PUT /api/stock/{uuid}/price
// Request Body: UpdateStockPriceRequest (currentPrice)
// Response: 200 OK with updated Stock
// Error: 400 Bad Request if stock ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if stock not found
// Error: 500 Internal Server Error if update fails
func (h *StockHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	stockID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateStockPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateStockPrice(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	stock, err := h.stockService.UpdateCurrentPrice(r.Context(), stockID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update stock price", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stock)
}

// ImportResponse reports the outcome of a bulk stock import.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ImportStocks handles POST requests to bulk import stock master data from CSV.
// The upload is a multipart form with the CSV under the "file" field, or a raw
// CSV body when no multipart boundary is present. All rows import in one
// transaction; a bad row rejects the whole file.
//
// Endpoint: POST /api/stock/import
// Response: 201 Created with ImportResponse
// Error: 400 Bad Request if the CSV headers or rows are invalid
// Error: 500 Internal Server Error if the import fails
func (h *StockHandler) ImportStocks(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)

	reader := r.Body
	if err := r.ParseMultipartForm(maxImportSize); err == nil {
		file, _, err := r.FormFile("file")
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "missing file field", err.Error())
			return
		}
		defer file.Close()
		reader = file
	}

	imported, err := h.stockService.ImportStocksCSV(r.Context(), reader)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCSVHeaders) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCSVHeaders.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrFailedToImportStocks) {
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImportStocks.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusBadRequest, "invalid CSV content", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, ImportResponse{Imported: imported})
}

package validation

import (
	"strings"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/shopspring/decimal"
)

// ValidateCreateStock validates a stock creation request.
//
// Required fields:
//   - symbol: Non-empty ticker symbol
//   - exchange: Non-empty exchange code
//   - name: Non-empty company name
//
// Optional fields (validated if provided):
//   - currentPrice: Must parse as a non-negative decimal
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateStock(req request.CreateStockRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}
	if strings.TrimSpace(req.Exchange) == "" {
		errors["exchange"] = "exchange is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if req.CurrentPrice != "" {
		price, err := decimal.NewFromString(req.CurrentPrice)
		if err != nil {
			errors["currentPrice"] = err.Error()
		} else if price.IsNegative() {
			errors["currentPrice"] = "currentPrice must not be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateStockPrice validates a stock price update request.
func ValidateUpdateStockPrice(req request.UpdateStockPriceRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.CurrentPrice) == "" {
		errors["currentPrice"] = "currentPrice is required"
	} else {
		price, err := decimal.NewFromString(req.CurrentPrice)
		if err != nil {
			errors["currentPrice"] = err.Error()
		} else if price.IsNegative() {
			errors["currentPrice"] = "currentPrice must not be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

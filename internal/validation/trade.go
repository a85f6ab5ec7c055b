package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
	"github.com/shopspring/decimal"
)

// ValidTradeSide contains the allowed trade side values.
var ValidTradeSide = map[string]bool{
	model.TradeSideBuy: true, model.TradeSideSell: true,
}

// ValidateCreateTrade validates a trade creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - clientId: Must be a valid UUID
//   - stockId: Must be a valid UUID
//   - side: Must be one of: buy, sell
//   - quantity: Must be positive
//   - price: Must parse as a non-negative decimal
//   - tradeDate: Must be in YYYY-MM-DD format
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTrade(req request.CreateTradeRequest) error {
	if err := ValidateUUID(req.ClientID); err != nil {
		return err
	}
	if err := ValidateUUID(req.StockID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.Side) == "" {
		errors["side"] = "side is required"
	} else if !ValidTradeSide[req.Side] {
		errors["side"] = fmt.Sprintf("invalid side: %s", req.Side)
	}

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if strings.TrimSpace(req.Price) == "" {
		errors["price"] = "price is required"
	} else {
		price, err := decimal.NewFromString(req.Price)
		if err != nil {
			errors["price"] = err.Error()
		} else if price.IsNegative() {
			errors["price"] = "price must not be negative"
		}
	}

	if strings.TrimSpace(req.TradeDate) == "" {
		errors["tradeDate"] = "tradeDate is required"
	} else if _, err := time.Parse("2006-01-02", req.TradeDate); err != nil {
		errors["tradeDate"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

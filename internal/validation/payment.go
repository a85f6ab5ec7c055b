package validation

import (
	"strings"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/shopspring/decimal"
)

// ValidateRecordPayment validates a quarterly payment recording request.
//
// Required fields:
//   - clientId: Must be a valid UUID
//   - year, quarter: Must identify a plausible fiscal quarter
//   - amount: Must parse as a positive decimal
//   - paidDate: Must be in YYYY-MM-DD format
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateRecordPayment(req request.RecordPaymentRequest) error {
	if err := ValidateUUID(req.ClientID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if req.Year < 1900 || req.Year > 2200 {
		errors["year"] = "year is out of range"
	}
	if req.Quarter < 1 || req.Quarter > 4 {
		errors["quarter"] = "quarter must be between 1 and 4"
	}

	if strings.TrimSpace(req.Amount) == "" {
		errors["amount"] = "amount is required"
	} else {
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			errors["amount"] = err.Error()
		} else if !amount.IsPositive() {
			errors["amount"] = "amount must be positive"
		}
	}

	if strings.TrimSpace(req.PaidDate) == "" {
		errors["paidDate"] = "paidDate is required"
	} else if _, err := time.Parse("2006-01-02", req.PaidDate); err != nil {
		errors["paidDate"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

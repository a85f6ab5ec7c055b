package validation

import (
	"fmt"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/shopspring/decimal"
)

// ValidateCalculate validates a calculation request.
//
// Required fields:
//   - clientId: Must be a valid UUID (omitted for bulk calculation)
//   - periodKind: Must be one of: month, quarter
//   - year: Must be a plausible calendar year
//   - month: Required for month periods, 1 to 12
//   - quarter: Required for quarter periods, 1 to 4
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCalculate(req request.CalculateRequest, requireClient bool) error {
	if requireClient {
		if err := ValidateUUID(req.ClientID); err != nil {
			return err
		}
	}

	errors := make(map[string]string)

	switch req.PeriodKind {
	case request.PeriodKindMonth:
		if req.Month < 1 || req.Month > 12 {
			errors["month"] = "month must be between 1 and 12"
		}
	case request.PeriodKindQuarter:
		if req.Quarter < 1 || req.Quarter > 4 {
			errors["quarter"] = "quarter must be between 1 and 4"
		}
	default:
		errors["periodKind"] = fmt.Sprintf("invalid periodKind: %s", req.PeriodKind)
	}

	if req.Year < 1900 || req.Year > 2200 {
		errors["year"] = "year is out of range"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateSetQuarterConfig validates a quarter configuration request.
// The day count is the denominator for quarterly averages and must stay
// within a plausible fiscal quarter length.
func ValidateSetQuarterConfig(req request.SetQuarterConfigRequest) error {
	errors := make(map[string]string)

	if req.Year < 1900 || req.Year > 2200 {
		errors["year"] = "year is out of range"
	}
	if req.Quarter < 1 || req.Quarter > 4 {
		errors["quarter"] = "quarter must be between 1 and 4"
	}
	if req.DaysInQuarter < 1 || req.DaysInQuarter > 92 {
		errors["daysInQuarter"] = "daysInQuarter must be between 1 and 92"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateSetRate validates a brokerage rate update request.
func ValidateSetRate(req request.SetRateRequest) error {
	errors := make(map[string]string)

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		errors["rate"] = err.Error()
	} else if rate.IsNegative() {
		errors["rate"] = "rate must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

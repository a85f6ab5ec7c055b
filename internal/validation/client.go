package validation

import (
	"strings"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
)

// ValidateCreateClient validates a client creation request.
//
// Required fields:
//   - code: Non-empty account code, unique per brokerage
//   - name: Non-empty display name
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateClient(req request.CreateClientRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Code) == "" {
		errors["code"] = "code is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		errors["email"] = "email must contain @"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateClient validates a client update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateClient(req request.UpdateClientRequest) error {
	errors := make(map[string]string)

	if req.Code != nil && strings.TrimSpace(*req.Code) == "" {
		errors["code"] = "code cannot be empty"
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}
	if req.Email != nil && *req.Email != "" && !strings.Contains(*req.Email, "@") {
		errors["email"] = "email must contain @"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

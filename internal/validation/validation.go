package validation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidUUID marks path or body identifiers that fail UUID parsing.
// Handlers map it to a 400 response.
var ErrInvalidUUID = errors.New("invalid UUID format")

// ValidateUUID checks that id parses as a UUID and reports the offending
// value when it does not.
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

package get_available_slots

import (
	"fmt"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facility id must be positive", ErrInvalidData)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidData)
	}
	return nil
}

package create_appointment

import (
	"fmt"

	"github.com/mentara/scheduling-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ExpertID <= 0 {
		return fmt.Errorf("%w: expertID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !domain.ValidPeriodIndex(req.PeriodIndex) {
		return fmt.Errorf("%w: periodIndex must be in [0, %d)", ErrInvalidInput, domain.PeriodsPerDay)
	}

	if len(req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	if req.ContactInfo != nil && len(*req.ContactInfo) > domain.MaxContactInfoLength {
		return fmt.Errorf("%w: contactInfo exceeds %d characters", ErrInvalidInput, domain.MaxContactInfoLength)
	}

	return nil
}

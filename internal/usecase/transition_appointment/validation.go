package transition_appointment

import (
	"fmt"

	"github.com/mentara/scheduling-service/internal/domain"
)

// validateRequest проверяет корректность запроса до обращения к хранилищу
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointment_id must be positive", ErrInvalidInput)
	}
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actor_id must be positive", ErrInvalidInput)
	}
	if _, ok := ParseOperation(string(req.Operation)); !ok {
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidInput, req.Operation)
	}

	if req.Reply != nil && len(*req.Reply) > domain.MaxExpertReplyLength {
		return fmt.Errorf("%w: reply must not exceed %d characters", ErrInvalidInput, domain.MaxExpertReplyLength)
	}

	switch req.Operation {
	case OpReply:
		if req.Reply == nil || *req.Reply == "" {
			return fmt.Errorf("%w: reply text is required", ErrInvalidInput)
		}
	case OpRate:
		if req.Rating == nil {
			return fmt.Errorf("%w: rating is required", ErrInvalidInput)
		}
		if *req.Rating < domain.MinRating || *req.Rating > domain.MaxRating {
			return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
		}
		if req.RatingComment != nil && len(*req.RatingComment) > domain.MaxRatingCommentLength {
			return fmt.Errorf("%w: rating comment must not exceed %d characters", ErrInvalidInput, domain.MaxRatingCommentLength)
		}
	}

	return nil
}

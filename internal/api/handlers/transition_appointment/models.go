package transition_appointment

import (
	"time"

	"github.com/mentara/scheduling-service/internal/domain"
	transitionAppointment "github.com/mentara/scheduling-service/internal/usecase/transition_appointment"
)

// TransitionRequest HTTP request model
// Поля опциональны: reply используется для confirm/reject/reply,
// rating и comment - для rate, cancel и complete идут с пустым телом
type TransitionRequest struct {
	Reply   *string `json:"reply,omitempty"`
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ExpertID        int64   `json:"expertId"`
	UserID          int64   `json:"userId"`
	Date            string  `json:"date"`
	PeriodIndex     int     `json:"periodIndex"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Description     string  `json:"description"`
	ContactInfo     *string `json:"contactInfo,omitempty"`
	Status          string  `json:"status"`
	ExpertReply     *string `json:"expertReply,omitempty"`
	UserRating      *string `json:"userRating,omitempty"`
	Rating          *int    `json:"rating,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionRequest) ToUseCaseRequest(appointmentID, actorID int64, op transitionAppointment.Operation) *transitionAppointment.Request {
	return &transitionAppointment.Request{
		AppointmentID: appointmentID,
		ActorID:       actorID,
		Operation:     op,
		Reply:         r.Reply,
		Rating:        r.Rating,
		RatingComment: r.Comment,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ExpertID:        resp.ExpertID,
		UserID:          resp.UserID,
		Date:            resp.Date.Format(domain.DateFormat),
		PeriodIndex:     resp.PeriodIndex,
		StartTime:       resp.StartTime,
		DurationMinutes: resp.DurationMinutes,
		Description:     resp.Description,
		ContactInfo:     resp.ContactInfo,
		Status:          resp.Status,
		ExpertReply:     resp.ExpertReply,
		UserRating:      resp.UserRating,
		Rating:          resp.Rating,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

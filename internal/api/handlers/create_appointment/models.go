package create_appointment

import (
	"errors"
	"time"

	"github.com/mentara/scheduling-service/internal/domain"
	createAppointment "github.com/mentara/scheduling-service/internal/usecase/create_appointment"
)

var errNotPeriodStart = errors.New("time is not a period start")

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ExpertID        int64   `json:"expertId"`
	AppointmentTime string  `json:"appointmentTime"` // "2026-09-14T10:00:00", локальное время без зоны
	Description     string  `json:"description"`
	ContactInfo     *string `json:"contactInfo,omitempty"`
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
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Локальное время записи раскладывается на дату и индекс периода;
// час обязан точно совпадать с началом одного из периодов
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	t, err := time.ParseInLocation(domain.DateTimeFormat, r.AppointmentTime, time.Local)
	if err != nil {
		return nil, err
	}

	periodIndex := domain.PeriodIndexForHour(t.Hour())
	if periodIndex < 0 {
		return nil, errNotPeriodStart
	}

	return &createAppointment.Request{
		ExpertID:    r.ExpertID,
		UserID:      userID,
		Date:        domain.Midnight(t),
		PeriodIndex: periodIndex,
		Description: r.Description,
		ContactInfo: r.ContactInfo,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
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
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

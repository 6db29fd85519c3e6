package models

import (
	"errors"
	"time"

	"github.com/mentara/scheduling-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetUserAppointmentsRequest запрос на получение записей пользователя
type GetUserAppointmentsRequest struct {
	UserID int64 `json:"userId"`
	Page   int   `json:"page"`
	Size   int   `json:"size"`
}

// GetExpertAppointmentsRequest запрос на получение записей эксперта
type GetExpertAppointmentsRequest struct {
	ExpertID int64   `json:"expertId"`
	Status   *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
	Page     int     `json:"page"`
	Size     int     `json:"size"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetExpertAppointmentsRequest) ToDomainFilter() (domain.ExpertAppointmentsFilter, error) {
	filter := domain.ExpertAppointmentsFilter{
		ExpertID: r.ExpertID,
		Page:     r.Page,
		Size:     r.Size,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи на приём
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	ExpertID        int64  `json:"expertId"`
	UserID          int64  `json:"userId"`
	Date            string `json:"date"`      // "2026-09-01"
	PeriodIndex     int    `json:"periodIndex"`
	StartTime       string `json:"startTime"` // "14:00"
	DurationMinutes int    `json:"durationMinutes"`
	Description     string `json:"description"`
	Status          string `json:"status"`

	ContactInfo *string `json:"contactInfo,omitempty"`
	ExpertReply *string `json:"expertReply,omitempty"`
	UserRating  *string `json:"userRating,omitempty"`
	Rating      *int    `json:"rating,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// PendingCountResponse ответ со счётчиком необработанных запросов эксперта
type PendingCountResponse struct {
	ExpertID     int64 `json:"expertId"`
	PendingCount int64 `json:"pendingCount"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		ExpertID:        a.ExpertID,
		UserID:          a.UserID,
		Date:            a.Date.Format(domain.DateFormat),
		PeriodIndex:     a.PeriodIndex,
		StartTime:       domain.PeriodLabel(a.PeriodIndex),
		DurationMinutes: a.DurationMinutes,
		Description:     a.Description,
		Status:          string(a.Status),
		ContactInfo:     a.ContactInfo,
		ExpertReply:     a.ExpertReply,
		UserRating:      a.UserRating,
		Rating:          a.Rating,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appointment := range appointments {
		if apptResp := FromDomainAppointment(appointment); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusRejected,
		domain.StatusCancelled,
		domain.StatusCompleted,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

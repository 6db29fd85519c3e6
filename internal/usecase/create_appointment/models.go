package create_appointment

import (
	"time"

	"github.com/mentara/scheduling-service/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	ExpertID    int64     // ID эксперта
	UserID      int64     // ID пользователя (из заголовка аутентификации)
	Date        time.Time // Дата записи (без времени)
	PeriodIndex int       // Индекс периода (0-7)
	Description string    // Тема/описание проблемы
	ContactInfo *string   // Контактные данные (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	ExpertID        int64
	UserID          int64
	Date            time.Time
	PeriodIndex     int
	StartTime       string // "HH:MM", выводится из периода
	DurationMinutes int
	Description     string
	ContactInfo     *string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func fromDomain(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		ExpertID:        a.ExpertID,
		UserID:          a.UserID,
		Date:            a.Date,
		PeriodIndex:     a.PeriodIndex,
		StartTime:       domain.PeriodLabel(a.PeriodIndex),
		DurationMinutes: a.DurationMinutes,
		Description:     a.Description,
		ContactInfo:     a.ContactInfo,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

package transition_appointment

import (
	"time"

	"github.com/mentara/scheduling-service/internal/domain"
)

// Operation операция над жизненным циклом записи
type Operation string

const (
	OpConfirm  Operation = "confirm"
	OpReject   Operation = "reject"
	OpCancel   Operation = "cancel"
	OpComplete Operation = "complete"

	// OpReply обновляет ответ эксперта без смены статуса; отдельная операция,
	// чтобы аннотация не могла случайно подтвердить или отклонить запись
	OpReply Operation = "reply"

	// OpRate оценка завершённого приёма пользователем
	OpRate Operation = "rate"
)

// ParseOperation разбирает операцию из строки внешнего интерфейса
func ParseOperation(s string) (Operation, bool) {
	switch Operation(s) {
	case OpConfirm, OpReject, OpCancel, OpComplete, OpReply, OpRate:
		return Operation(s), true
	}
	return "", false
}

// Request модель запроса на операцию жизненного цикла
type Request struct {
	AppointmentID int64
	ActorID       int64     // ID пользователя, выполняющего операцию
	Operation     Operation
	Reply         *string // для confirm/reject/reply
	Rating        *int    // для rate, 1-5
	RatingComment *string // для rate
}

// Response модель ответа с обновлённой записью
type Response struct {
	ID              int64
	ExpertID        int64
	UserID          int64
	Date            time.Time
	PeriodIndex     int
	StartTime       string
	DurationMinutes int
	Description     string
	ContactInfo     *string
	Status          string
	ExpertReply     *string
	UserRating      *string
	Rating          *int
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
		ExpertReply:     a.ExpertReply,
		UserRating:      a.UserRating,
		Rating:          a.Rating,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

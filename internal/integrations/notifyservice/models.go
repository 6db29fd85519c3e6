package notifyservice

import "github.com/mentara/scheduling-service/pkg/types"

// Event тело события, отправляемого сервису уведомлений
// Доставка, хранение ленты и отображение — зона ответственности получателя
type Event struct {
	Type          string           `json:"type"`
	AppointmentID int64            `json:"appointmentId"`
	ExpertID      int64            `json:"expertId"`
	UserID        int64            `json:"userId"`
	Date          string           `json:"date"`      // YYYY-MM-DD
	StartTime     types.TimeString `json:"startTime"` // HH:MM
	EndTime       types.TimeString `json:"endTime"`   // HH:MM
	OldStatus     string           `json:"oldStatus,omitempty"`
	NewStatus     string           `json:"newStatus"`
	OccurredAt    string           `json:"occurredAt"` // RFC3339
}

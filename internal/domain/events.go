package domain

import "time"

// EventType identifies a scheduling state change delivered to the
// notification collaborator.
type EventType string

const (
	EventAppointmentCreated       EventType = "appointment_created"
	EventAppointmentStatusChanged EventType = "appointment_status_changed"
)

// AppointmentEvent is the payload emitted after a committed booking or
// lifecycle transition. Delivery is the collaborator's concern; the
// scheduling engine only emits.
type AppointmentEvent struct {
	Type          EventType
	AppointmentID int64
	ExpertID      int64
	UserID        int64
	Date          time.Time
	PeriodIndex   int
	OldStatus     AppointmentStatus // empty for EventAppointmentCreated
	NewStatus     AppointmentStatus
	OccurredAt    time.Time
}

package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusRejected  AppointmentStatus = "rejected"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment represents one booking attempt outcome for an expert slot.
// Rows are never deleted: cancellation and rejection are status changes,
// so the table keeps full history.
type Appointment struct {
	ID              int64
	ExpertID        int64
	UserID          int64
	Date            time.Time // calendar date, time component zero
	PeriodIndex     int       // 0..PeriodsPerDay-1
	DurationMinutes int
	Description     string
	ContactInfo     *string
	Status          AppointmentStatus

	ExpertReply *string
	UserRating  *string // free-text review left by the booking user
	Rating      *int    // 1..5 stars

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the appointment occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsTerminal reports whether the appointment reached a final state.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusRejected || a.Status == StatusCancelled || a.Status == StatusCompleted
}

// CanBeConfirmed reports whether confirm() is legal from the current state.
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status == StatusPending
}

// CanBeRejected reports whether reject() is legal from the current state.
func (a *Appointment) CanBeRejected() bool {
	return a.Status == StatusPending
}

// CanBeCancelled reports whether cancel() is legal from the current state.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusConfirmed
}

// CanBeCompleted reports whether complete() is legal from the current state
// (the time gate is checked separately).
func (a *Appointment) CanBeCompleted() bool {
	return a.Status == StatusConfirmed
}

// CanBeReplied reports whether the expert may annotate the appointment
// without a state transition.
func (a *Appointment) CanBeReplied() bool {
	return a.Status == StatusConfirmed || a.IsTerminal()
}

// CanBeRated reports whether the booking user may still rate the
// appointment: completed and not rated yet.
func (a *Appointment) CanBeRated() bool {
	return a.Status == StatusCompleted && a.Rating == nil
}

// StartTime returns the scheduled start instant of the appointment.
func (a *Appointment) StartTime() time.Time {
	return SlotStart(a.Date, a.PeriodIndex)
}

// EndTime returns the scheduled end instant of the appointment.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime().Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// ExpertAppointmentsFilter filters an expert's appointment history.
type ExpertAppointmentsFilter struct {
	ExpertID int64
	Status   *AppointmentStatus // optional; nil = all statuses
	Page     int                // 1-based
	Size     int
}

// UserAppointmentsFilter filters a user's appointment history.
type UserAppointmentsFilter struct {
	UserID int64
	Page   int // 1-based
	Size   int
}

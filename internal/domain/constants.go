package domain

// Scheduling grid dimensions
const (
	// WindowDays is the length of the rolling booking window: today plus
	// the next thirteen days.
	WindowDays = 14

	// PeriodsPerDay is the number of bookable periods per day.
	PeriodsPerDay = 8

	// AppointmentDurationMinutes is the fixed consultation length.
	AppointmentDurationMinutes = 55
)

// PeriodStartHours maps a period index to its wall-clock start hour.
// The 12:00-14:00 lunch break is not bookable, so there is no period
// starting at 12 or 13.
var PeriodStartHours = [PeriodsPerDay]int{8, 9, 10, 11, 14, 15, 16, 17}

// Business validation constants
const (
	MaxDescriptionLength   = 500
	MaxContactInfoLength   = 128
	MaxExpertReplyLength   = 1000
	MaxRatingCommentLength = 500
	MinRating              = 1
	MaxRating              = 5
)

// Time format constants
const (
	TimeFormat     = "15:04"               // HH:MM
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05" // local, no zone suffix
)

// ActiveStatuses список статусов, при которых запись занимает слот
// Используется при вычислении статуса слота и в ограничении уникальности
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses список конечных статусов (история, слот не занят)
var TerminalStatuses = []AppointmentStatus{
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}

package domain

import "time"

// AvailabilityOverride is the expert's own declaration that a slot is
// unavailable, independent of bookings. Absence of a row means the slot
// is not expert-blocked.
type AvailabilityOverride struct {
	ID          int64
	ExpertID    int64
	Date        time.Time // calendar date, time component zero
	PeriodIndex int
	Blocked     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Key returns the slot address of the override within its expert's grid.
func (o *AvailabilityOverride) Key() SlotKey {
	return SlotKeyOf(o.Date, o.PeriodIndex)
}

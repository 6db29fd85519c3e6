package domain

import (
	"fmt"
	"time"
)

// SlotStatus is the resolved tri-state status of one slot. The integer
// values are part of the API contract and must not be reordered.
type SlotStatus int

const (
	SlotFree    SlotStatus = 0 // bookable
	SlotBooked  SlotStatus = 1 // an active appointment occupies the slot
	SlotBlocked SlotStatus = 2 // the expert marked the slot unavailable
)

// SlotGrid is the resolved status of every slot in the rolling window,
// indexed [dayOffset][periodIndex].
type SlotGrid [WindowDays][PeriodsPerDay]SlotStatus

// BooleanProjection reduces the grid to "bookable or not", transposed to
// [period][day] as the schedule view expects. Only FREE maps to true;
// both BOOKED and BLOCKED are false. Callers must never recompute this
// from anything but a resolved grid.
func (g *SlotGrid) BooleanProjection() [PeriodsPerDay][WindowDays]bool {
	var out [PeriodsPerDay][WindowDays]bool
	for day := 0; day < WindowDays; day++ {
		for period := 0; period < PeriodsPerDay; period++ {
			out[period][day] = g[day][period] == SlotFree
		}
	}
	return out
}

// ValidPeriodIndex reports whether the index addresses one of the eight
// daily periods.
func ValidPeriodIndex(periodIndex int) bool {
	return periodIndex >= 0 && periodIndex < PeriodsPerDay
}

// PeriodIndexForHour maps a wall-clock start hour to its period index,
// or -1 when the hour is not a period start (including the 12:00-14:00
// lunch break).
func PeriodIndexForHour(hour int) int {
	for i, h := range PeriodStartHours {
		if h == hour {
			return i
		}
	}
	return -1
}

// PeriodStartHour returns the wall-clock start hour of a period, or -1
// when the index is out of range.
func PeriodStartHour(periodIndex int) int {
	if !ValidPeriodIndex(periodIndex) {
		return -1
	}
	return PeriodStartHours[periodIndex]
}

// PeriodLabel returns the "HH:MM" start label of a period.
func PeriodLabel(periodIndex int) string {
	return fmt.Sprintf("%02d:00", PeriodStartHours[periodIndex])
}

// PeriodLabels returns the start labels of all eight periods.
func PeriodLabels() [PeriodsPerDay]string {
	var labels [PeriodsPerDay]string
	for i := range PeriodStartHours {
		labels[i] = PeriodLabel(i)
	}
	return labels
}

// SlotStart returns the start instant of the slot at (date, periodIndex)
// in the date's location.
func SlotStart(date time.Time, periodIndex int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		PeriodStartHours[periodIndex], 0, 0, 0, date.Location())
}

// SlotEnd returns the end instant of an appointment occupying the slot.
func SlotEnd(date time.Time, periodIndex int) time.Time {
	return SlotStart(date, periodIndex).Add(AppointmentDurationMinutes * time.Minute)
}

// IsPastSlot reports whether the slot can no longer be booked: its date is
// before today, or it is today and the period's start hour has been reached.
func IsPastSlot(now, date time.Time, periodIndex int) bool {
	today := Midnight(now)
	day := Midnight(date)

	if day.Before(today) {
		return true
	}
	if day.Equal(today) {
		return PeriodStartHours[periodIndex] <= now.Hour()
	}
	return false
}

// SlotKey addresses one slot within a single expert's grid, usable as a
// map key when overlaying overrides and appointments.
type SlotKey struct {
	Date        string // DateFormat
	PeriodIndex int
}

// SlotKeyOf builds the map key for (date, periodIndex).
func SlotKeyOf(date time.Time, periodIndex int) SlotKey {
	return SlotKey{Date: date.Format(DateFormat), PeriodIndex: periodIndex}
}

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package domain

import "time"

// Window is the rolling booking window: WindowDays calendar dates starting
// at "today". It is always derived from the current instant at read time
// and never persisted.
type Window struct {
	base time.Time // midnight of day zero
}

// NewWindow derives the window anchored at now's calendar day.
func NewWindow(now time.Time) Window {
	return Window{base: Midnight(now)}
}

// BaseDate returns day zero of the window ("today").
func (w Window) BaseDate() time.Time {
	return w.base
}

// DateAt returns the date at the given day offset. Offset must be in
// [0, WindowDays).
func (w Window) DateAt(dayOffset int) time.Time {
	return w.base.AddDate(0, 0, dayOffset)
}

// End returns the last date of the window (inclusive).
func (w Window) End() time.Time {
	return w.DateAt(WindowDays - 1)
}

// Contains maps a date to its day offset within the window. The second
// return value is false when the date lies outside the window; such
// addresses are not resolvable and must never reach storage.
func (w Window) Contains(date time.Time) (int, bool) {
	day := Midnight(date)
	// AddDate-based comparison keeps the math correct across DST shifts,
	// where a calendar day is not always 24 hours.
	for offset := 0; offset < WindowDays; offset++ {
		if w.DateAt(offset).Equal(day) {
			return offset, true
		}
	}
	return 0, false
}

// ValidDayOffset reports whether the offset addresses a window day.
func ValidDayOffset(dayOffset int) bool {
	return dayOffset >= 0 && dayOffset < WindowDays
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestWindow(t *testing.T) {
	now := time.Date(2026, time.September, 1, 10, 30, 0, 0, time.Local)
	w := NewWindow(now)

	t.Run("base date is midnight of today", func(t *testing.T) {
		assert.Equal(t, date(2026, time.September, 1), w.BaseDate())
	})

	t.Run("window spans exactly fourteen days", func(t *testing.T) {
		assert.Equal(t, date(2026, time.September, 14), w.End())

		offset, ok := w.Contains(date(2026, time.September, 1))
		assert.True(t, ok)
		assert.Equal(t, 0, offset)

		offset, ok = w.Contains(date(2026, time.September, 14))
		assert.True(t, ok)
		assert.Equal(t, 13, offset)
	})

	t.Run("yesterday and day fifteen are outside", func(t *testing.T) {
		_, ok := w.Contains(date(2026, time.August, 31))
		assert.False(t, ok)

		_, ok = w.Contains(date(2026, time.September, 15))
		assert.False(t, ok)
	})

	t.Run("date at offset", func(t *testing.T) {
		assert.Equal(t, date(2026, time.September, 5), w.DateAt(4))
	})

	t.Run("valid day offsets", func(t *testing.T) {
		assert.True(t, ValidDayOffset(0))
		assert.True(t, ValidDayOffset(13))
		assert.False(t, ValidDayOffset(-1))
		assert.False(t, ValidDayOffset(14))
	})
}

func TestPeriodIndexForHour(t *testing.T) {
	t.Run("morning periods", func(t *testing.T) {
		assert.Equal(t, 0, PeriodIndexForHour(8))
		assert.Equal(t, 1, PeriodIndexForHour(9))
		assert.Equal(t, 2, PeriodIndexForHour(10))
		assert.Equal(t, 3, PeriodIndexForHour(11))
	})

	t.Run("afternoon periods", func(t *testing.T) {
		assert.Equal(t, 4, PeriodIndexForHour(14))
		assert.Equal(t, 5, PeriodIndexForHour(15))
		assert.Equal(t, 6, PeriodIndexForHour(16))
		assert.Equal(t, 7, PeriodIndexForHour(17))
	})

	t.Run("lunch break hours are not periods", func(t *testing.T) {
		assert.Equal(t, -1, PeriodIndexForHour(12))
		assert.Equal(t, -1, PeriodIndexForHour(13))
	})

	t.Run("hours outside working day are not periods", func(t *testing.T) {
		assert.Equal(t, -1, PeriodIndexForHour(7))
		assert.Equal(t, -1, PeriodIndexForHour(18))
		assert.Equal(t, -1, PeriodIndexForHour(0))
	})
}

func TestPeriodStartHour(t *testing.T) {
	for i, want := range PeriodStartHours {
		assert.Equal(t, want, PeriodStartHour(i))
	}
	assert.Equal(t, -1, PeriodStartHour(-1))
	assert.Equal(t, -1, PeriodStartHour(PeriodsPerDay))
}

func TestPeriodLabels(t *testing.T) {
	labels := PeriodLabels()
	assert.Equal(t, [PeriodsPerDay]string{
		"08:00", "09:00", "10:00", "11:00", "14:00", "15:00", "16:00", "17:00",
	}, labels)
}

func TestIsPastSlot(t *testing.T) {
	// 1 сентября, 10:30 — период 10:00 уже начался
	now := time.Date(2026, time.September, 1, 10, 30, 0, 0, time.Local)
	today := date(2026, time.September, 1)

	t.Run("earlier date is past regardless of period", func(t *testing.T) {
		assert.True(t, IsPastSlot(now, date(2026, time.August, 31), 7))
	})

	t.Run("later date is never past", func(t *testing.T) {
		assert.False(t, IsPastSlot(now, date(2026, time.September, 2), 0))
	})

	t.Run("today before current hour is past", func(t *testing.T) {
		assert.True(t, IsPastSlot(now, today, 0)) // 08:00
		assert.True(t, IsPastSlot(now, today, 1)) // 09:00
	})

	t.Run("period that started this hour is already past", func(t *testing.T) {
		assert.True(t, IsPastSlot(now, today, 2)) // 10:00, началось в 10:00 при now=10:30
	})

	t.Run("today after current hour is not past", func(t *testing.T) {
		assert.False(t, IsPastSlot(now, today, 3)) // 11:00
		assert.False(t, IsPastSlot(now, today, 4)) // 14:00
	})

	t.Run("exact period start boundary counts as past", func(t *testing.T) {
		atStart := time.Date(2026, time.September, 1, 14, 0, 0, 0, time.Local)
		assert.True(t, IsPastSlot(atStart, today, 4)) // 14:00 при now=14:00
		assert.False(t, IsPastSlot(atStart, today, 5))
	})
}

func TestSlotStartEnd(t *testing.T) {
	d := date(2026, time.September, 3)

	start := SlotStart(d, 4)
	assert.Equal(t, time.Date(2026, time.September, 3, 14, 0, 0, 0, time.Local), start)

	end := SlotEnd(d, 4)
	assert.Equal(t, start.Add(AppointmentDurationMinutes*time.Minute), end)
}

func TestSlotGridBooleanProjection(t *testing.T) {
	var grid SlotGrid
	grid[0][0] = SlotBooked
	grid[0][1] = SlotBlocked
	grid[13][7] = SlotBooked

	matrix := grid.BooleanProjection()

	t.Run("matrix is transposed period-by-day", func(t *testing.T) {
		assert.False(t, matrix[0][0])  // day 0 period 0 booked
		assert.False(t, matrix[1][0])  // day 0 period 1 blocked
		assert.False(t, matrix[7][13]) // day 13 period 7 booked
	})

	t.Run("only free slots project to true", func(t *testing.T) {
		assert.True(t, matrix[2][0])
		assert.True(t, matrix[0][1])

		free := 0
		for p := 0; p < PeriodsPerDay; p++ {
			for d := 0; d < WindowDays; d++ {
				if matrix[p][d] {
					free++
				}
			}
		}
		assert.Equal(t, WindowDays*PeriodsPerDay-3, free)
	})
}

func TestAppointmentStatusPredicates(t *testing.T) {
	mk := func(status AppointmentStatus) *Appointment {
		return &Appointment{Status: status}
	}

	t.Run("active statuses", func(t *testing.T) {
		assert.True(t, mk(StatusPending).IsActive())
		assert.True(t, mk(StatusConfirmed).IsActive())
		assert.False(t, mk(StatusRejected).IsActive())
		assert.False(t, mk(StatusCancelled).IsActive())
		assert.False(t, mk(StatusCompleted).IsActive())
	})

	t.Run("confirm and reject only from pending", func(t *testing.T) {
		assert.True(t, mk(StatusPending).CanBeConfirmed())
		assert.True(t, mk(StatusPending).CanBeRejected())

		for _, s := range []AppointmentStatus{StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted} {
			assert.False(t, mk(s).CanBeConfirmed(), "status %s", s)
			assert.False(t, mk(s).CanBeRejected(), "status %s", s)
		}
	})

	t.Run("cancel and complete only from confirmed", func(t *testing.T) {
		assert.True(t, mk(StatusConfirmed).CanBeCancelled())
		assert.True(t, mk(StatusConfirmed).CanBeCompleted())

		for _, s := range []AppointmentStatus{StatusPending, StatusRejected, StatusCancelled, StatusCompleted} {
			assert.False(t, mk(s).CanBeCancelled(), "status %s", s)
			assert.False(t, mk(s).CanBeCompleted(), "status %s", s)
		}
	})

	t.Run("rate only once and only when completed", func(t *testing.T) {
		assert.True(t, mk(StatusCompleted).CanBeRated())

		rated := mk(StatusCompleted)
		rating := 5
		rated.Rating = &rating
		assert.False(t, rated.CanBeRated())

		assert.False(t, mk(StatusConfirmed).CanBeRated())
	})
}

func TestAppointmentTimes(t *testing.T) {
	a := &Appointment{
		Date:            date(2026, time.September, 3),
		PeriodIndex:     6, // 16:00
		DurationMinutes: AppointmentDurationMinutes,
	}

	assert.Equal(t, time.Date(2026, time.September, 3, 16, 0, 0, 0, time.Local), a.StartTime())
	assert.Equal(t, time.Date(2026, time.September, 3, 16, 55, 0, 0, time.Local), a.EndTime())
}

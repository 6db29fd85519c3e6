package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, time.September, 1, 14, 5, 30, 0, time.UTC))
	assert.Equal(t, TimeString("14:05"), ts)
}

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		for _, s := range []string{"00:00", "08:00", "14:30", "23:59"} {
			ts, err := NewTimeStringFromString(s)
			require.NoError(t, err, s)
			assert.Equal(t, s, ts.String())
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, s := range []string{"", "24:00", "8:00:00", "noon", "14-30"} {
			_, err := NewTimeStringFromString(s)
			assert.ErrorIs(t, err, ErrInvalidTimeString, s)
		}
	})
}

func TestNewTimeStringFromHour(t *testing.T) {
	ts, err := NewTimeStringFromHour(8)
	require.NoError(t, err)
	assert.Equal(t, TimeString("08:00"), ts)

	_, err = NewTimeStringFromHour(24)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromHour(-1)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringHour(t *testing.T) {
	ts := TimeString("17:45")
	hour, err := ts.Hour()
	require.NoError(t, err)
	assert.Equal(t, 17, hour)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("14:00")

	shifted, err := ts.AddMinutes(55)
	require.NoError(t, err)
	assert.Equal(t, TimeString("14:55"), shifted)

	wrapped, err := TimeString("23:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:15"), wrapped)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("14:00"))
	assert.True(t, TimeString("14:00").IsAfter("08:00"))
	assert.False(t, TimeString("14:00").IsBefore("14:00"))
	assert.False(t, TimeString("14:00").IsAfter("14:00"))
}

func TestTimeStringIsZero(t *testing.T) {
	assert.True(t, TimeString("").IsZero())
	assert.False(t, TimeString("08:00").IsZero())
}

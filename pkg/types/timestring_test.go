package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("22:30")
	require.NoError(t, err)
	assert.Equal(t, "22:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("7pm")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringComparisons(t *testing.T) {
	early := TimeString("21:00")
	late := TimeString("23:30")

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("22:45")

	got, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:15"), got)

	// выход за пределы суток обрезается
	got, err = ts.AddMinutes(300)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:59"), got)
}

func TestTimeStringAt(t *testing.T) {
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("22:00").At(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 12, 22, 0, 0, 0, time.UTC), got)

	_, err = TimeString("bad").At(date)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

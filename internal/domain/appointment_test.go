package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointment_AppendNote(t *testing.T) {
	a := &Appointment{}

	a.AppendNote("")
	assert.Nil(t, a.Notes)

	a.AppendNote("first")
	require.NotNil(t, a.Notes)
	assert.Equal(t, "first", *a.Notes)

	a.AppendNote("second")
	assert.Equal(t, "first\nsecond", *a.Notes)
}

func TestAppointment_Clone(t *testing.T) {
	notes := "n"
	a := &Appointment{ID: "1", Notes: &notes}

	c := a.Clone()
	c.AppendNote("more")

	assert.Equal(t, "n", *a.Notes)
	assert.Equal(t, "n\nmore", *c.Notes)
}

func TestDayBounds(t *testing.T) {
	ts := time.Date(2026, 3, 9, 14, 25, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
	assert.Equal(t, time.Date(2026, 3, 9, 23, 59, 59, 999000000, time.UTC), EndOfDay(ts))
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

func TestAvailabilityRule_Validate(t *testing.T) {
	valid := AvailabilityRule{Weekday: time.Monday, StartTime: "09:00", EndTime: "12:00"}
	require.NoError(t, valid.Validate())

	withRecurrence := valid
	withRecurrence.Recurrence = ptr.Ptr("FREQ=WEEKLY;INTERVAL=2;BYDAY=MO")
	require.NoError(t, withRecurrence.Validate())

	tests := []struct {
		name string
		rule AvailabilityRule
	}{
		{"weekday out of range", AvailabilityRule{Weekday: 7, StartTime: "09:00", EndTime: "12:00"}},
		{"bad start", AvailabilityRule{Weekday: time.Monday, StartTime: "9am", EndTime: "12:00"}},
		{"bad end", AvailabilityRule{Weekday: time.Monday, StartTime: "09:00", EndTime: "25:00"}},
		{"start equals end", AvailabilityRule{Weekday: time.Monday, StartTime: "09:00", EndTime: "09:00"}},
		{"start after end", AvailabilityRule{Weekday: time.Monday, StartTime: "13:00", EndTime: "12:00"}},
		{"malformed descriptor", AvailabilityRule{Weekday: time.Monday, StartTime: "09:00", EndTime: "12:00", Recurrence: ptr.Ptr("FREQ=DAILY")}},
		{"weekday mismatch", AvailabilityRule{Weekday: time.Monday, StartTime: "09:00", EndTime: "12:00", Recurrence: ptr.Ptr("FREQ=WEEKLY;BYDAY=TU")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.rule.Validate(), ErrInvalidRequest)
		})
	}
}

func TestAvailabilityRule_ParsedRecurrence(t *testing.T) {
	rule := AvailabilityRule{Weekday: time.Friday, StartTime: "09:00", EndTime: "10:00"}

	rec, err := rule.ParsedRecurrence()
	require.NoError(t, err)
	assert.Nil(t, rec)

	rule.Recurrence = ptr.Ptr("byday=fr;freq=weekly;interval=2")
	rec, err = rule.ParsedRecurrence()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, Recurrence{Interval: 2, Weekday: time.Friday}, *rec)

	rule.Recurrence = ptr.Ptr("FREQ=WEEKLY;BYDAY=SA")
	_, err = rule.ParsedRecurrence()
	assert.ErrorIs(t, err, ErrInvalidRecurrence)
}

func TestProvider_Clone(t *testing.T) {
	p := &Provider{
		ID:          "p1",
		Specialties: []string{"dental"},
		Availability: []AvailabilityRule{
			{ID: "r1", Weekday: time.Monday, StartTime: "09:00", EndTime: "12:00", Recurrence: ptr.Ptr("FREQ=WEEKLY;BYDAY=MO")},
		},
	}

	c := p.Clone()
	c.Specialties[0] = "changed"
	*c.Availability[0].Recurrence = "changed"

	assert.Equal(t, "dental", p.Specialties[0])
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO", *p.Availability[0].Recurrence)
}

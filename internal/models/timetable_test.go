package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeTableItemValidate(t *testing.T) {
	valid := func() *TimeTableItem {
		return &TimeTableItem{
			Days:            []DayOfWeek{DayMonday},
			RecurrenceTypes: []RecurrenceType{RecurrenceEveryWeek},
			Hours:           []TimeTableHour{{StartHour: 90000, EndHour: 120000}},
		}
	}

	t.Run("valid item", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("no hours", func(t *testing.T) {
		item := valid()
		item.Hours = nil
		assert.ErrorIs(t, item.Validate(), ErrNoHours)
	})

	t.Run("inverted hour window", func(t *testing.T) {
		item := valid()
		item.Hours = []TimeTableHour{{StartHour: 120000, EndHour: 90000}}
		assert.ErrorIs(t, item.Validate(), ErrInvalidHourWindow)
	})

	t.Run("overlapping hour windows", func(t *testing.T) {
		item := valid()
		item.Hours = []TimeTableHour{
			{StartHour: 90000, EndHour: 120000},
			{StartHour: 110000, EndHour: 130000},
		}
		assert.ErrorIs(t, item.Validate(), ErrOverlappingHours)
	})

	t.Run("touching windows do not overlap", func(t *testing.T) {
		item := valid()
		item.Hours = []TimeTableHour{
			{StartHour: 90000, EndHour: 120000},
			{StartHour: 120000, EndHour: 130000},
		}
		assert.NoError(t, item.Validate())
	})

	t.Run("unknown weekday code", func(t *testing.T) {
		item := valid()
		item.Days = []DayOfWeek{"XX"}
		assert.Error(t, item.Validate())
	})

	t.Run("unknown recurrence type", func(t *testing.T) {
		item := valid()
		item.RecurrenceTypes = []RecurrenceType{"SIX"}
		assert.Error(t, item.Validate())
	})

	t.Run("legacy fields ignored when rrule is set", func(t *testing.T) {
		item := valid()
		rule := "FREQ=DAILY"
		item.RRule = &rule
		item.Days = []DayOfWeek{"XX"}
		assert.NoError(t, item.Validate())
	})

	t.Run("unknown zone", func(t *testing.T) {
		item := valid()
		item.ZoneID = "Mars/Olympus"
		assert.Error(t, item.Validate())
	})
}

func TestLocation(t *testing.T) {
	t.Run("defaults to UTC", func(t *testing.T) {
		item := &TimeTableItem{}
		loc, err := item.Location()
		require.NoError(t, err)
		assert.Equal(t, time.UTC, loc)
	})

	t.Run("resolves IANA zones", func(t *testing.T) {
		item := &TimeTableItem{ZoneID: "Europe/Brussels"}
		loc, err := item.Location()
		require.NoError(t, err)
		assert.Equal(t, "Europe/Brussels", loc.String())
	})
}

func TestRecurrenceTypeOrdinal(t *testing.T) {
	assert.Equal(t, 0, RecurrenceEveryWeek.Ordinal())
	assert.Equal(t, 1, RecurrenceOne.Ordinal())
	assert.Equal(t, 5, RecurrenceFive.Ordinal())
	assert.Equal(t, 0, RecurrenceType("SIX").Ordinal())
}

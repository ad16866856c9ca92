package fuzzy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTime(t *testing.T) {
	v := FromTime(time.Date(2024, 6, 10, 9, 30, 15, 0, time.UTC))
	assert.Equal(t, int64(20240610093015), v)
}

func TestToTime(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := time.Date(2024, 6, 10, 9, 30, 15, 0, time.UTC)
		decoded, err := ToTime(FromTime(original), time.UTC)
		require.NoError(t, err)
		assert.True(t, decoded.Equal(original))
	})

	t.Run("zero-filled components default to earliest", func(t *testing.T) {
		decoded, err := ToTime(20240600000000, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), decoded)
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		_, err := ToTime(20241332000000, time.UTC)
		assert.Error(t, err)
		_, err = ToTime(20240610250000, time.UTC)
		assert.Error(t, err)
		_, err = ToTime(-1, time.UTC)
		assert.Error(t, err)
	})

	t.Run("respects location", func(t *testing.T) {
		loc, err := time.LoadLocation("Europe/Brussels")
		require.NoError(t, err)
		decoded, err := ToTime(20240610090000, loc)
		require.NoError(t, err)
		assert.Equal(t, loc, decoded.Location())
		assert.Equal(t, 9, decoded.Hour())
	})
}

func TestSecondOfDay(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		s, err := ToSecondOfDay(93015)
		require.NoError(t, err)
		assert.Equal(t, 9*3600+30*60+15, s)
		assert.Equal(t, int64(93015), FromSecondOfDay(s))
	})

	t.Run("end of day sentinel normalizes", func(t *testing.T) {
		s, err := ToSecondOfDay(EndOfDay)
		require.NoError(t, err)
		assert.Equal(t, 23*3600+59*60+59, s)
	})

	t.Run("rejects malformed hours", func(t *testing.T) {
		_, err := ToSecondOfDay(240000)
		assert.Error(t, err)
		_, err = ToSecondOfDay(96100)
		assert.Error(t, err)
	})
}

func TestCombine(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(20240610093000), Combine(day, 93000))
}

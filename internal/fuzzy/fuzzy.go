// Package fuzzy converts between the compact integer date-time encoding used by
// time table configuration (YYYYMMDDHHMMSS longs, bare HHMMSS ints) and time.Time.
package fuzzy

import (
	"fmt"
	"time"
)

const (
	// EndOfDay is the reserved HHMMSS sentinel meaning "end of day" (23:59:60).
	EndOfDay int64 = 235960

	// endOfDayNormalized is what EndOfDay clamps to for arithmetic.
	endOfDayNormalized int64 = 235959
)

// FromTime encodes t as a YYYYMMDDHHMMSS long.
func FromTime(t time.Time) int64 {
	return int64(t.Year())*1e10 +
		int64(t.Month())*1e8 +
		int64(t.Day())*1e6 +
		int64(t.Hour())*1e4 +
		int64(t.Minute())*1e2 +
		int64(t.Second())
}

// FromDate encodes the date part of t as a YYYYMMDDHHMMSS long with a zero time-of-day.
func FromDate(t time.Time) int64 {
	return int64(t.Year())*1e10 + int64(t.Month())*1e8 + int64(t.Day())*1e6
}

// ToTime decodes a YYYYMMDDHHMMSS long into a time.Time in loc. It returns an
// error for values that do not denote a real calendar instant, so malformed
// configuration is rejected up front instead of surfacing mid-iteration.
func ToTime(v int64, loc *time.Location) (time.Time, error) {
	if v < 0 {
		return time.Time{}, fmt.Errorf("negative fuzzy date-time: %d", v)
	}
	year := int(v / 1e10)
	month := int(v / 1e8 % 100)
	day := int(v / 1e6 % 100)
	hour := int(v / 1e4 % 100)
	minute := int(v / 1e2 % 100)
	second := int(v % 100)

	// Zero-filled components mean "unknown"; default them to the earliest value.
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return time.Time{}, fmt.Errorf("invalid fuzzy date-time: %d", v)
	}
	return t, nil
}

// FromTimeOfDay encodes a wall-clock time of day as a bare HHMMSS int.
func FromTimeOfDay(hour, minute, second int) int64 {
	return int64(hour)*1e4 + int64(minute)*1e2 + int64(second)
}

// ToSecondOfDay converts an HHMMSS int to seconds since midnight. The EndOfDay
// sentinel normalizes to 23:59:59.
func ToSecondOfDay(v int64) (int, error) {
	if v == EndOfDay {
		v = endOfDayNormalized
	}
	hour := int(v / 1e4)
	minute := int(v / 1e2 % 100)
	second := int(v % 100)
	if v < 0 || hour > 23 || minute > 59 || second > 59 {
		return 0, fmt.Errorf("invalid fuzzy hour: %d", v)
	}
	return hour*3600 + minute*60 + second, nil
}

// FromSecondOfDay converts seconds since midnight back to an HHMMSS int.
func FromSecondOfDay(s int) int64 {
	return FromTimeOfDay(s/3600, s/60%60, s%60)
}

// Combine places an HHMMSS time of day on the calendar day of day, producing a
// full YYYYMMDDHHMMSS long.
func Combine(day time.Time, hourOfDay int64) int64 {
	return FromDate(day) + hourOfDay
}

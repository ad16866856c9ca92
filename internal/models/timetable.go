package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DayOfWeek is an RFC-5545 style weekday code used by legacy recurrence rules.
type DayOfWeek string

const (
	DayMonday    DayOfWeek = "MO"
	DayTuesday   DayOfWeek = "TU"
	DayWednesday DayOfWeek = "WE"
	DayThursday  DayOfWeek = "TH"
	DayFriday    DayOfWeek = "FR"
	DaySaturday  DayOfWeek = "SA"
	DaySunday    DayOfWeek = "SU"
)

// Weekdays maps weekday codes to time.Weekday.
var Weekdays = map[DayOfWeek]time.Weekday{
	DaySunday:    time.Sunday,
	DayMonday:    time.Monday,
	DayTuesday:   time.Tuesday,
	DayWednesday: time.Wednesday,
	DayThursday:  time.Thursday,
	DayFriday:    time.Friday,
	DaySaturday:  time.Saturday,
}

// RecurrenceType selects which occurrences of a listed weekday apply.
type RecurrenceType string

const (
	RecurrenceEveryWeek RecurrenceType = "EVERY_WEEK"
	RecurrenceOne       RecurrenceType = "ONE"
	RecurrenceTwo       RecurrenceType = "TWO"
	RecurrenceThree     RecurrenceType = "THREE"
	RecurrenceFour      RecurrenceType = "FOUR"
	RecurrenceFive      RecurrenceType = "FIVE"
)

// Ordinal returns the occurrence index an ordinal recurrence type selects,
// or 0 for RecurrenceEveryWeek.
func (r RecurrenceType) Ordinal() int {
	switch r {
	case RecurrenceOne:
		return 1
	case RecurrenceTwo:
		return 2
	case RecurrenceThree:
		return 3
	case RecurrenceFour:
		return 4
	case RecurrenceFive:
		return 5
	}
	return 0
}

// TimeTableHour is one intra-day availability window. Both bounds are fuzzy
// HHMMSS ints; EndHour may be the 235960 end-of-day sentinel. A shift spanning
// midnight is expressed as two disjoint windows, one per calendar day.
type TimeTableHour struct {
	StartHour int64 `json:"startHour"`
	EndHour   int64 `json:"endHour"`
}

// TimeTableItem is one recurring availability rule within a schedule. It is an
// immutable value object owned by the enclosing agenda; the slot engine borrows
// it read-only for the duration of one generation pass.
type TimeTableItem struct {
	ID uuid.UUID `json:"id"`

	// RRule is an RFC-5545 recurrence rule value without the "RRULE:" prefix.
	// When set, it takes precedence over the legacy Days/RecurrenceTypes pair.
	RRule          *string `json:"rrule,omitempty"`
	RRuleStartDate *int64  `json:"rruleStartDate,omitempty"` // fuzzy date anchoring DTSTART

	// Notice window: minute offsets applied to "now" clamping the bookable range.
	NotBeforeInMinutes *int `json:"notBeforeInMinutes,omitempty"`
	NotAfterInMinutes  *int `json:"notAfterInMinutes,omitempty"`

	ZoneID string `json:"zoneId,omitempty"` // IANA zone, defaults to UTC

	// Legacy recurrence, consulted only when RRule is absent.
	Days            []DayOfWeek      `json:"days,omitempty"`
	RecurrenceTypes []RecurrenceType `json:"recurrenceTypes,omitempty"`

	Hours []TimeTableHour `json:"hours"`

	// Carried through for the booking layer, not consumed by slot iteration.
	CalendarItemTypeID  string `json:"calendarItemTypeId,omitempty"`
	PlaceID             string `json:"placeId,omitempty"`
	HomeVisit           bool   `json:"homeVisit,omitempty"`
	ReservingRights     bool   `json:"reservingRights,omitempty"`
	PublicTimeTableItem bool   `json:"publicTimeTableItem,omitempty"`
	AcceptsNewPatient   bool   `json:"acceptsNewPatient,omitempty"`
	Unavailable         bool   `json:"unavailable,omitempty"`
}

// Location resolves the item's zone, defaulting to UTC.
func (t *TimeTableItem) Location() (*time.Location, error) {
	if t.ZoneID == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(t.ZoneID)
	if err != nil {
		return nil, fmt.Errorf("invalid zone id %q: %w", t.ZoneID, err)
	}
	return loc, nil
}

// Validate checks the structural configuration of the item. The rrule value is
// validated separately by the engine, which owns the recurrence library.
func (t *TimeTableItem) Validate() error {
	if len(t.Hours) == 0 {
		return ErrNoHours
	}
	for _, h := range t.Hours {
		if h.EndHour <= h.StartHour {
			return fmt.Errorf("%w: [%d, %d]", ErrInvalidHourWindow, h.StartHour, h.EndHour)
		}
	}
	if err := validateNoOverlap(t.Hours); err != nil {
		return err
	}
	if _, err := t.Location(); err != nil {
		return err
	}
	if t.RRule == nil {
		for _, d := range t.Days {
			if _, ok := Weekdays[d]; !ok {
				return fmt.Errorf("invalid day of week: %s", d)
			}
		}
		for _, r := range t.RecurrenceTypes {
			if r != RecurrenceEveryWeek && r.Ordinal() == 0 {
				return fmt.Errorf("invalid recurrence type: %s", r)
			}
		}
	}
	return nil
}

func validateNoOverlap(hours []TimeTableHour) error {
	sorted := make([]TimeTableHour, len(hours))
	copy(sorted, hours)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartHour < sorted[j].StartHour })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartHour < sorted[i-1].EndHour {
			return fmt.Errorf("%w: [%d, %d] and [%d, %d]", ErrOverlappingHours,
				sorted[i-1].StartHour, sorted[i-1].EndHour, sorted[i].StartHour, sorted[i].EndHour)
		}
	}
	return nil
}

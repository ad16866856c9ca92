// Package slots implements the appointment slot generation engine: given a
// recurring time table item and a query window, it lazily produces every
// bookable appointment start time as a fuzzy YYYYMMDDHHMMSS timestamp, in
// strictly ascending order, without materializing the recurrence.
package slots

import (
	"time"

	"github.com/icure/agenda-slots/internal/fuzzy"
	"github.com/icure/agenda-slots/internal/models"
)

// Clock supplies the current time; injectable so notice-window clamping is
// deterministic under test.
type Clock func() time.Time

// Option configures slot generation.
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock overrides the wall clock used for notice-window clamping.
func WithClock(clock Clock) Option {
	return func(o *options) { o.clock = clock }
}

// SlotIterator is the state machine that cross-joins the day recurrence of one
// time table item with its merged intra-day hour windows, clipped to the
// constrained query window. It is single-use and not safe for concurrent use;
// every query constructs a fresh iterator over the immutable item.
type SlotIterator struct {
	item     *models.TimeTableItem
	duration time.Duration

	constrainedStart int64 // fuzzy lower bound on emitted slots
	endFuzzy         int64 // fuzzy upper bound, seconds truncated
	startDay         time.Time
	startHour        int64

	days  dayIterator
	hours *hourMerger

	currentDay  *time.Time
	currentHour *int64
}

// Generate builds the slot iterator for one item over the query window
// [windowStart, windowEnd], both fuzzy date-times, for appointments of the
// given duration. All configuration errors surface here; iteration itself
// cannot fail except by calling Next past exhaustion.
func Generate(item *models.TimeTableItem, windowStart, windowEnd int64, duration time.Duration, opts ...Option) (*SlotIterator, error) {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	if duration <= 0 {
		return nil, models.ErrInvalidDuration
	}
	if windowStart > windowEnd {
		return nil, models.ErrInvalidWindow
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	loc, err := item.Location()
	if err != nil {
		return nil, err
	}
	now := o.clock().In(loc)

	// Notice-window clamping. The minutes are subtracted from "now" on both
	// bounds, mirroring the established booking semantics of the schedule
	// owners; see DESIGN.md before changing the sign.
	constrainedStart := windowStart
	if item.NotBeforeInMinutes != nil {
		bound := fuzzy.FromTime(now.Add(-time.Duration(*item.NotBeforeInMinutes) * time.Minute))
		if bound > constrainedStart {
			constrainedStart = bound
		}
	}
	constrainedEnd := windowEnd
	if item.NotAfterInMinutes != nil {
		bound := fuzzy.FromTime(now.Add(-time.Duration(*item.NotAfterInMinutes) * time.Minute))
		if bound < constrainedEnd {
			constrainedEnd = bound
		}
	}

	startLdt, err := fuzzy.ToTime(constrainedStart, loc)
	if err != nil {
		return nil, err
	}
	endLdt, err := fuzzy.ToTime(constrainedEnd, loc)
	if err != nil {
		return nil, err
	}
	startLdt = truncateSeconds(startLdt)
	endLdt = truncateSeconds(endLdt)

	var days dayIterator
	if item.RRule != nil {
		rule, err := ParseRRule(*item.RRule)
		if err != nil {
			return nil, err
		}
		anchor, err := anchorDate(item, startLdt, loc)
		if err != nil {
			return nil, err
		}
		days = newRRuleDayIterator(rule, anchor, startLdt, endLdt, loc)
	} else {
		days = newLegacyDayIterator(item, startLdt, endLdt, loc)
	}

	hours, err := newHourMerger(item.Hours, duration)
	if err != nil {
		return nil, err
	}

	it := &SlotIterator{
		item:             item,
		duration:         duration,
		constrainedStart: constrainedStart,
		endFuzzy:         fuzzy.FromTime(endLdt),
		startDay:         midnight(startLdt, loc),
		startHour:        fuzzy.FromTimeOfDay(startLdt.Hour(), startLdt.Minute(), startLdt.Second()),
		days:             days,
		hours:            hours,
	}
	it.advanceDay()
	it.advanceHour()
	return it, nil
}

// HasNext reports whether another slot can be produced. It may advance the
// internal day and hour cursors past candidates that fall outside the window,
// but repeated calls are stable and it never consumes an emittable slot.
func (it *SlotIterator) HasNext() bool {
	for {
		if it.currentDay == nil {
			return false
		}
		if it.currentHour != nil {
			if fuzzy.Combine(*it.currentDay, *it.currentHour) > it.endFuzzy {
				return false
			}
			if it.currentDay.After(it.startDay) {
				return true
			}
			if *it.currentHour >= it.startHour {
				return true
			}
			it.advanceHour()
			continue
		}
		// This day's hours are exhausted: rewind the merger and move on.
		it.hours, _ = newHourMerger(it.item.Hours, it.duration)
		it.advanceDay()
		it.advanceHour()
	}
}

// Next returns the next slot as a fuzzy date-time. Calling it past exhaustion
// is a contract violation and yields models.ErrIteratorExhausted.
func (it *SlotIterator) Next() (int64, error) {
	if !it.HasNext() {
		return 0, models.ErrIteratorExhausted
	}
	slot := fuzzy.Combine(*it.currentDay, *it.currentHour)
	it.advanceHour()
	// The first candidate can predate the constrained start when the day
	// recurrence was rewound a day for overnight windows.
	if slot < it.constrainedStart {
		return it.Next()
	}
	return slot, nil
}

func (it *SlotIterator) advanceDay() {
	if it.days.HasNext() {
		day := it.days.Next()
		it.currentDay = &day
	} else {
		it.currentDay = nil
	}
}

func (it *SlotIterator) advanceHour() {
	if it.hours.HasNext() {
		hour := it.hours.Next()
		it.currentHour = &hour
	} else {
		it.currentHour = nil
	}
}

func truncateSeconds(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

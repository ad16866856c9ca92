package slots

import (
	"time"

	"github.com/icure/agenda-slots/internal/fuzzy"
	"github.com/icure/agenda-slots/internal/models"
	"github.com/teambition/rrule-go"
)

// dayIterator lazily yields the midnight instant of each day on which a time
// table item is active, strictly ascending. Implementations are non-restartable.
type dayIterator interface {
	HasNext() bool
	Next() time.Time
}

// rruleDayIterator drives day recurrence from an RFC-5545 rule. The underlying
// evaluator signals exhaustion explicitly through its (value, ok) iterator, so
// end-of-sequence is never an error.
type rruleDayIterator struct {
	iter rrule.Next
	head *time.Time
	end  time.Time
	loc  *time.Location
}

func newRRuleDayIterator(rule *rrule.RRule, anchor, startLdt, endLdt time.Time, loc *time.Location) *rruleDayIterator {
	rule.DTStart(midnight(anchor, loc))
	it := &rruleDayIterator{
		iter: rule.Iterator(),
		end:  endLdt,
		loc:  loc,
	}
	// Fast-forward to one day before the constrained start so that windows
	// anchored on the previous day are not missed.
	margin := midnight(startLdt.AddDate(0, 0, -1), loc)
	for {
		occ, ok := it.iter()
		if !ok {
			return it
		}
		day := midnight(occ.In(loc), loc)
		if !day.Before(margin) {
			it.head = &day
			return it
		}
	}
}

func (it *rruleDayIterator) HasNext() bool {
	return it.head != nil && !it.head.After(it.end)
}

func (it *rruleDayIterator) Next() time.Time {
	day := *it.head
	if occ, ok := it.iter(); ok {
		next := midnight(occ.In(it.loc), it.loc)
		it.head = &next
	} else {
		it.head = nil
	}
	return day
}

// legacyDayIterator scans forward one day at a time looking for days whose
// weekday is listed and which satisfy at least one recurrence type. The ordinal
// types (ONE..FIVE) count occurrences of the weekday from the start of the
// queried range, not within the calendar month; this asymmetry is part of the
// contract and is kept as-is.
type legacyDayIterator struct {
	cursor        time.Time
	end           time.Time
	days          map[time.Weekday]bool
	everyWeek     bool
	ordinals      map[int]bool
	weekdayCounts map[time.Weekday]int
	head          *time.Time
}

func newLegacyDayIterator(item *models.TimeTableItem, startLdt, endLdt time.Time, loc *time.Location) *legacyDayIterator {
	days := make(map[time.Weekday]bool, len(item.Days))
	for _, d := range item.Days {
		days[models.Weekdays[d]] = true
	}
	everyWeek := false
	ordinals := make(map[int]bool)
	for _, r := range item.RecurrenceTypes {
		if r == models.RecurrenceEveryWeek {
			everyWeek = true
		} else if n := r.Ordinal(); n > 0 {
			ordinals[n] = true
		}
	}
	it := &legacyDayIterator{
		cursor:        midnight(startLdt, loc),
		end:           midnight(endLdt, loc),
		days:          days,
		everyWeek:     everyWeek,
		ordinals:      ordinals,
		weekdayCounts: make(map[time.Weekday]int),
	}
	it.advance()
	return it
}

func (it *legacyDayIterator) advance() {
	it.head = nil
	for !it.cursor.After(it.end) {
		day := it.cursor
		it.cursor = it.cursor.AddDate(0, 0, 1)
		it.weekdayCounts[day.Weekday()]++
		if !it.days[day.Weekday()] {
			continue
		}
		if it.everyWeek || it.ordinals[it.weekdayCounts[day.Weekday()]] {
			it.head = &day
			return
		}
	}
}

func (it *legacyDayIterator) HasNext() bool {
	return it.head != nil
}

func (it *legacyDayIterator) Next() time.Time {
	day := *it.head
	it.advance()
	return day
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// anchorDate resolves the DTSTART anchor for an rrule-driven item: the
// configured fuzzy start date when present, the constrained query start otherwise.
func anchorDate(item *models.TimeTableItem, startLdt time.Time, loc *time.Location) (time.Time, error) {
	if item.RRuleStartDate == nil || *item.RRuleStartDate == 0 {
		return startLdt, nil
	}
	return fuzzy.ToTime(*item.RRuleStartDate, loc)
}

package slots

import (
	"time"

	"github.com/icure/agenda-slots/internal/fuzzy"
	"github.com/icure/agenda-slots/internal/models"
)

// slotMargin absorbs the one-minute precision of fuzzy timestamps and the
// normalization of the 235960 end-of-day sentinel to 23:59:59.
const slotMargin = 60

// hourIterator yields successive slot-start times inside one hour window,
// spaced by the appointment duration. All values are seconds since midnight
// internally and fuzzy HHMMSS ints at the boundary. The final partial remainder
// of a window that the duration does not evenly divide is dropped.
type hourIterator struct {
	next int
	end  int
	step int
}

func newHourIterator(h models.TimeTableHour, duration time.Duration) (*hourIterator, error) {
	start, err := fuzzy.ToSecondOfDay(h.StartHour)
	if err != nil {
		return nil, err
	}
	end, err := fuzzy.ToSecondOfDay(h.EndHour)
	if err != nil {
		return nil, err
	}
	return &hourIterator{
		next: start,
		end:  end,
		step: int(duration / time.Second),
	}, nil
}

func (it *hourIterator) HasNext() bool {
	return it.next+it.step-slotMargin <= it.end
}

func (it *hourIterator) Next() int64 {
	v := it.next
	it.next += it.step
	return fuzzy.FromSecondOfDay(v)
}

// peek returns the next value without advancing; only valid when HasNext.
func (it *hourIterator) peek() int {
	return it.next
}

// hourMerger merges the per-window iterators of one item into a single
// ascending HHMMSS sequence for one calendar day. Window cursors are exhausted
// after a day, so a fresh merger is built for every active day.
type hourMerger struct {
	iters []*hourIterator
}

func newHourMerger(hours []models.TimeTableHour, duration time.Duration) (*hourMerger, error) {
	iters := make([]*hourIterator, 0, len(hours))
	for _, h := range hours {
		it, err := newHourIterator(h, duration)
		if err != nil {
			return nil, err
		}
		iters = append(iters, it)
	}
	return &hourMerger{iters: iters}, nil
}

func (m *hourMerger) HasNext() bool {
	for _, it := range m.iters {
		if it.HasNext() {
			return true
		}
	}
	return false
}

func (m *hourMerger) Next() int64 {
	var min *hourIterator
	for _, it := range m.iters {
		if !it.HasNext() {
			continue
		}
		if min == nil || it.peek() < min.peek() {
			min = it
		}
	}
	return min.Next()
}

package slots

import (
	"time"

	"github.com/icure/agenda-slots/internal/fuzzy"
)

// Policy decides the externally visible cadence of offered slots, given the
// raw generated sequence (possibly merged across several items of one time
// table). The engine itself always exposes raw slots; policies are applied by
// the consuming availability layer.
type Policy interface {
	Apply(raw []int64) []int64
}

// FixedIntervals offers a slot every Interval from the start of each contiguous
// available span, independent of the per-item generation duration. Duration is
// the generation duration that defines contiguity between raw slots.
type FixedIntervals struct {
	Interval time.Duration
	Duration time.Duration
	Location *time.Location
}

func (p FixedIntervals) Apply(raw []int64) []int64 {
	if len(raw) == 0 || p.Interval <= 0 {
		return raw
	}
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	out := make([]int64, 0, len(raw))
	spanStart, err := fuzzy.ToTime(raw[0], loc)
	if err != nil {
		return raw
	}
	prev := spanStart
	for i := 1; i <= len(raw); i++ {
		var cur time.Time
		contiguous := false
		if i < len(raw) {
			cur, err = fuzzy.ToTime(raw[i], loc)
			if err != nil {
				return raw
			}
			contiguous = cur.Equal(prev.Add(p.Duration))
		}
		if !contiguous {
			spanEnd := prev.Add(p.Duration)
			for t := spanStart; !t.Add(p.Duration).After(spanEnd); t = t.Add(p.Interval) {
				out = append(out, fuzzy.FromTime(t))
			}
			if i < len(raw) {
				spanStart = cur
			}
		}
		prev = cur
	}
	return out
}

package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/icure/agenda-slots/internal/models"
	"github.com/icure/agenda-slots/internal/slots"
	"go.uber.org/zap"
)

// AvailabilityService wraps the slot engine for the availability endpoint: it
// generates slots for every item of a time table, merges the per-item sequences
// into one ascending stream, optionally applies a slotting policy, and caches
// results for items whose output does not depend on the wall clock.
type AvailabilityService struct {
	logger   *zap.Logger
	cache    *lru.Cache[string, []int64]
	clock    slots.Clock
	maxSlots int
}

func NewAvailabilityService(logger *zap.Logger, cacheSize, maxSlots int) (*AvailabilityService, error) {
	cache, err := lru.New[string, []int64](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating slot cache: %w", err)
	}
	return &AvailabilityService{
		logger:   logger,
		cache:    cache,
		clock:    time.Now,
		maxSlots: maxSlots,
	}, nil
}

// WithClock overrides the wall clock, for tests.
func (s *AvailabilityService) WithClock(clock slots.Clock) *AvailabilityService {
	s.clock = clock
	return s
}

// GenerateSlots produces the bookable slots of all items over the query window.
// Items flagged unavailable are skipped. The result is strictly ascending with
// duplicates across items collapsed.
func (s *AvailabilityService) GenerateSlots(ctx context.Context, items []*models.TimeTableItem, windowStart, windowEnd int64, duration time.Duration, policy slots.Policy) ([]int64, error) {
	merged := make([]int64, 0)
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if item.Unavailable {
			continue
		}
		generated, err := s.generateItemSlots(item, windowStart, windowEnd, duration)
		if err != nil {
			s.logger.Error("slot generation failed",
				zap.String("item_id", item.ID.String()),
				zap.Error(err))
			return nil, fmt.Errorf("generating slots for item %s: %w", item.ID, err)
		}
		merged = append(merged, generated...)
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })
	merged = dedupe(merged)

	if policy != nil {
		merged = policy.Apply(merged)
	}
	s.logger.Debug("slots generated",
		zap.Int("items", len(items)),
		zap.Int("slots", len(merged)))
	return merged, nil
}

func (s *AvailabilityService) generateItemSlots(item *models.TimeTableItem, windowStart, windowEnd int64, duration time.Duration) ([]int64, error) {
	// Only items without notice-window clamps are pure functions of the query,
	// so only those are cacheable.
	cacheable := item.NotBeforeInMinutes == nil && item.NotAfterInMinutes == nil
	key := fmt.Sprintf("%s:%d:%d:%d", item.ID, windowStart, windowEnd, duration)
	if cacheable {
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}
	}

	iter, err := slots.Generate(item, windowStart, windowEnd, duration, slots.WithClock(s.clock))
	if err != nil {
		return nil, err
	}
	generated := make([]int64, 0)
	for iter.HasNext() && len(generated) < s.maxSlots {
		slot, err := iter.Next()
		if err != nil {
			return nil, err
		}
		generated = append(generated, slot)
	}

	if cacheable {
		s.cache.Add(key, generated)
	}
	return generated, nil
}

func dedupe(sorted []int64) []int64 {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

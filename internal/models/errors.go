package models

import "errors"

var (
	ErrNoHours           = errors.New("time table item has no hour windows")
	ErrInvalidHourWindow = errors.New("hour window end must be after start")
	ErrOverlappingHours  = errors.New("hour windows overlap")
	ErrInvalidRRule      = errors.New("invalid recurrence rule")
	ErrInvalidDuration   = errors.New("duration must be positive")
	ErrInvalidWindow     = errors.New("window start must not be after window end")
	ErrIteratorExhausted = errors.New("slot iterator exhausted")
	ErrTimeTableNotFound = errors.New("time table not found")
)

package slots

import (
	"fmt"

	"github.com/icure/agenda-slots/internal/models"
	"github.com/teambition/rrule-go"
)

// ParseRRule parses an RFC-5545 recurrence rule value (no "RRULE:" prefix).
func ParseRRule(value string) (*rrule.RRule, error) {
	rule, err := rrule.StrToRRule(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRRule, err)
	}
	return rule, nil
}

// ValidateRRule reports whether value is a syntactically valid recurrence rule.
// Configuration is validated here, at construction time, so iteration never fails.
func ValidateRRule(value string) error {
	_, err := ParseRRule(value)
	return err
}

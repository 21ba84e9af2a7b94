package util

import (
	"fmt"
	"time"
)

// dateLayouts are the formats clients are known to send for dates.
var dateLayouts = []string{
	time.RFC3339,          // 2026-09-03T00:00:00+09:00
	"2006-01-02T15:04:05", // 2026-09-03T00:00:00
	"2006-01-02",          // 2026-09-03
}

// ParseDate parses a date string in any accepted layout.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", s)
}

// ValidateAmount checks a currency amount (zero allowed, overspend is not
// an error, negatives are).
func ValidateAmount(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("amount must not be negative, got %d", amount)
	}
	return nil
}

// OneOf reports whether value is one of the allowed strings.
func OneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

package services

import (
	"fmt"
	"time"
)

// HearingDateLayout is the only accepted hearing date format (ISO 8601,
// standard for HTML5 date inputs)
const HearingDateLayout = "2006-01-02"

// ParseHearingDate parses a hearing date string strictly. Malformed strings
// never pass; calendar queries rely on this to avoid matching garbage.
func ParseHearingDate(dateStr string) (time.Time, error) {
	parsedTime, err := time.Parse(HearingDateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}
	return parsedTime, nil
}

// IsValidHearingDate reports whether a stored hearing date string is
// calendar-valid
func IsValidHearingDate(dateStr string) bool {
	_, err := ParseHearingDate(dateStr)
	return err == nil
}

// Package timezone provides helpers around the free-text timezone label
// stored on intervals. The label is display metadata only; interval
// timestamps are never shifted by it.
package timezone

import (
	"fmt"
	"time"
)

// DefaultLabel is the label applied when an interval carries none.
const DefaultLabel = "UTC"

// ParseTimezone parses an IANA timezone identifier (e.g., "Australia/Sydney").
// If the identifier is invalid, returns UTC and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	if tz == "" || tz == "UTC" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	return loc, nil
}

// IsValidTimezone checks if a timezone identifier is valid.
func IsValidTimezone(tz string) bool {
	if tz == "" || tz == "UTC" {
		return true
	}

	_, err := time.LoadLocation(tz)
	return err == nil
}

// NormalizeLabel returns the label to store for a user-supplied value,
// defaulting empty input to DefaultLabel.
func NormalizeLabel(tz string) string {
	if tz == "" {
		return DefaultLabel
	}
	return tz
}

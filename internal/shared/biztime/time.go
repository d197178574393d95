// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC. The business timezone is only used for
// calculating date boundaries (start/end of day, month).
//
// Design principles:
// - All time storage is in UTC
// - Date-boundary calculations must explicitly go through the business timezone
// - Implicit Local timezone is prohibited
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "Asia/Jakarta"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, defaults to Asia/Jakarta.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone location. Init must have been
// called first; falls back to UTC otherwise.
func Location() *time.Location {
	if bizLocation == nil {
		return time.UTC
	}
	return bizLocation
}

// NowUTC returns the current time in UTC. All persistence goes through this.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns the UTC instant at which the business day containing
// t begins.
func StartOfDayUTC(t time.Time) time.Time {
	local := t.In(Location())
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location())
	return start.UTC()
}

// FormatBusiness formats t in the business timezone using the given layout.
func FormatBusiness(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}

// ParseBusinessDate parses a YYYY-MM-DD date in the business timezone and
// returns the UTC start of that day.
func ParseBusinessDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid business date %q: %w", value, err)
	}
	return t.UTC(), nil
}

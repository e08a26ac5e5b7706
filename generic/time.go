package generic

import (
	"fmt"
	"time"
)

// =============================================================================
// CLOCK - Injected time source
// =============================================================================

// Clock supplies "now" to business logic. Nothing outside cmd/ should call
// time.Now() to decide what day it is.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// Compile-time checks
var (
	_ Clock = RealClock{}
	_ Clock = FixedClock{}
)

// =============================================================================
// DATE MATH
// =============================================================================

// YearLength is the average year used for tenure: exactly 365 days, no leap
// year or calendar adjustment.
const YearLength = 365 * 24 * time.Hour

// DateLayout is the calendar date format used by storage and the API.
const DateLayout = "2006-01-02"

// YearsSince returns whole years between start and end, truncated toward zero.
// Negative when end is before start.
func YearsSince(start, end time.Time) int {
	return int(end.Sub(start) / YearLength)
}

// NewDate returns midnight UTC on the given day.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate is the inverse of ParseDate.
func FormatDate(t time.Time) string { return t.UTC().Format(DateLayout) }

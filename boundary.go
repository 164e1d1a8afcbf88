package attend

import (
	"fmt"
	"time"
)

// BoundaryPolicy answers when the shared daily logout cutoff occurs. The
// cutoff is a time-of-day evaluated in UTC so every device observes the same
// instant, regardless of where the request originated. The policy holds no
// state and never reads the wall clock itself; callers pass "now" in.
type BoundaryPolicy struct {
	hour   int
	minute int
}

// NewBoundaryPolicy parses a "15:04"-style time-of-day string.
func NewBoundaryPolicy(timeOfDay string) (*BoundaryPolicy, error) {
	var h, m int
	if _, err := fmt.Sscanf(timeOfDay, "%d:%d", &h, &m); err != nil {
		return nil, fmt.Errorf("invalid boundary time %q: %w", timeOfDay, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return nil, fmt.Errorf("invalid boundary time %q: out of range", timeOfDay)
	}
	return &BoundaryPolicy{hour: h, minute: m}, nil
}

// occurrence returns the boundary instant on now's UTC day.
func (p *BoundaryPolicy) occurrence(now time.Time) time.Time {
	u := now.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), p.hour, p.minute, 0, 0, time.UTC)
}

// SecondsUntilNext returns how long until the next boundary: today's
// occurrence if it is still ahead, otherwise tomorrow's. Never negative.
func (p *BoundaryPolicy) SecondsUntilNext(now time.Time) int64 {
	next := p.occurrence(now)
	if !now.UTC().Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return int64(next.Sub(now.UTC()) / time.Second)
}

// HasPassed reports whether today's occurrence is at or behind now. It only
// ever reports "the boundary already happened today"; tomorrow-before-the-
// boundary is false again. Request gating recomputes this on every call.
func (p *BoundaryPolicy) HasPassed(now time.Time) bool {
	return !now.UTC().Before(p.occurrence(now))
}

// String implements fmt.Stringer for config logging.
func (p *BoundaryPolicy) String() string {
	return fmt.Sprintf("%02d:%02d UTC", p.hour, p.minute)
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	minutesPerDay = 24 * 60
	halfDay       = minutesPerDay / 2
)

// CategoryFunc renders a signed delay in minutes as a display label.
type CategoryFunc func(delay int) string

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, bool) {
	hh, mm, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// DelayMinutes returns atd - etd in minutes, corrected for midnight
// rollover in both directions. ok is false when either time is malformed.
func DelayMinutes(etd, atd string) (delay int, ok bool) {
	etdMin, ok := ParseClock(etd)
	if !ok {
		return 0, false
	}
	atdMin, ok := ParseClock(atd)
	if !ok {
		return 0, false
	}

	delay = atdMin - etdMin
	switch {
	case delay < -halfDay:
		delay += minutesPerDay
	case delay > halfDay:
		delay -= minutesPerDay
	}
	return delay, true
}

// BucketCategory groups delays into coarse buckets.
func BucketCategory(delay int) string {
	switch {
	case delay < 0:
		return fmt.Sprintf("Early %d min", -delay)
	case delay == 0:
		return "On time"
	case delay <= 15:
		return "0-15 min"
	case delay <= 30:
		return "15-30 min"
	case delay <= 45:
		return "30-45 min"
	default:
		return "45+ min"
	}
}

// SignedCategory renders the raw signed delay, e.g. "+15" or "Early 5".
func SignedCategory(delay int) string {
	switch {
	case delay < 0:
		return fmt.Sprintf("Early %d", -delay)
	case delay == 0:
		return "On time"
	default:
		return fmt.Sprintf("+%d", delay)
	}
}

// CategoryByName resolves a configured label rule. Unknown names fall back to buckets.
func CategoryByName(name string) CategoryFunc {
	if name == "signed" {
		return SignedCategory
	}
	return BucketCategory
}

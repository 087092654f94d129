package domain

import "time"

const etdLayout = DateLayout + " 15:04"

// ScheduledDeparture combines date and etd into an instant in loc.
func ScheduledDeparture(date, etd string, loc *time.Location) (time.Time, bool) {
	if date == "" || etd == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(etdLayout, date+" "+etd, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Eligible reports whether a record is due for a status refresh: not terminal,
// and scheduled to depart within [now-window, now].
func Eligible(r FlightRecord, now time.Time, loc *time.Location, window time.Duration) bool {
	if r.Status.Terminal() {
		return false
	}
	dep, ok := ScheduledDeparture(r.Date, r.ETD, loc)
	if !ok {
		return false
	}
	return !dep.Before(now.Add(-window)) && !dep.After(now)
}

// SelectEligible returns the records due for refresh, in input order.
func SelectEligible(records []FlightRecord, now time.Time, loc *time.Location, window time.Duration) []FlightRecord {
	var eligible []FlightRecord
	for _, r := range records {
		if Eligible(r, now, loc, window) {
			eligible = append(eligible, r)
		}
	}
	return eligible
}

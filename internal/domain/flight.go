package domain

import (
	"errors"
	"regexp"
	"time"
)

// DateLayout is the day key format used for flight dates.
const DateLayout = "2006-01-02"

var (
	ErrUnresolved      = errors.New("flight status unresolved")
	ErrDatasetNotFound = errors.New("no dataset for date")
	ErrEmptyRoster     = errors.New("roster is empty")
	ErrNoneResolved    = errors.New("no roster flight resolved")
)

type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusDelayed   Status = "Delayed"
	StatusDeparted  Status = "Departed"
	StatusLanded    Status = "Landed"
	StatusCancelled Status = "Cancelled"
	StatusReturned  Status = "Returned"
)

// Terminal reports whether the status is final for refresh purposes.
func (s Status) Terminal() bool {
	return s == StatusDeparted || s == StatusLanded
}

// HasDeparture reports whether the status carries a real departure event.
func (s Status) HasDeparture() bool {
	return s == StatusDeparted || s == StatusLanded || s == StatusDelayed
}

// FlightRecord is one tracked flight within a day's dataset.
type FlightRecord struct {
	ID            int64     `json:"id" db:"id"`
	FlightNumber  string    `json:"flightNumber" db:"flight_number"`
	Date          string    `json:"date" db:"flight_date"`
	From          string    `json:"from" db:"origin"`
	To            string    `json:"to" db:"destination"`
	Status        Status    `json:"status" db:"status"`
	ETD           string    `json:"etd,omitempty" db:"etd"`
	ATD           string    `json:"atd,omitempty" db:"atd"`
	DelayMinutes  *int      `json:"delayMinutes" db:"delay_minutes"`
	DelayCategory *string   `json:"delayCategory" db:"delay_category"`
	LastUpdated   time.Time `json:"lastUpdated" db:"last_updated"`
}

// StatusUpdate is the compact shape produced from one airline API record.
type StatusUpdate struct {
	FlightNumber string `json:"flightNumber"`
	Date         string `json:"date"`
	From         string `json:"from"`
	To           string `json:"to"`
	Status       Status `json:"status"`
	ETD          string `json:"etd"`
	ATD          string `json:"atd"`
}

// ApplyDelay sets or clears the delay fields from the record's etd/atd.
// Only statuses with a departure event get a delay.
func (r *FlightRecord) ApplyDelay(category CategoryFunc) {
	if !r.Status.HasDeparture() {
		return
	}
	minutes, ok := DelayMinutes(r.ETD, r.ATD)
	if !ok {
		r.DelayMinutes = nil
		r.DelayCategory = nil
		return
	}
	label := category(minutes)
	r.DelayMinutes = &minutes
	r.DelayCategory = &label
}

var digitRun = regexp.MustCompile(`\d+`)

// ExtractFlightNumber returns the first run of digits in s, e.g. "AV123" -> "123".
// It returns "" when s has no digits.
func ExtractFlightNumber(s string) string {
	return digitRun.FindString(s)
}

// DateKey returns the day key for now in loc.
func DateKey(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(DateLayout)
}

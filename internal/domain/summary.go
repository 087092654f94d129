package domain

import (
	"math"
	"time"
)

// Summary is the daily aggregate shown next to the flight list.
type Summary struct {
	TotalFlights int `json:"totalFlights"`
	OnTime       int `json:"onTime"`
	Delayed      int `json:"delayed"`
	Canceled     int `json:"canceled"`
	AverageDelay int `json:"averageDelay"`
}

// Summarize computes counts over a day's records. The average covers delayed
// flights only.
func Summarize(records []FlightRecord) Summary {
	s := Summary{TotalFlights: len(records)}
	totalDelay := 0

	for _, r := range records {
		if r.Status == StatusCancelled {
			s.Canceled++
		}
		if r.DelayMinutes == nil {
			continue
		}
		if *r.DelayMinutes > 0 {
			s.Delayed++
			totalDelay += *r.DelayMinutes
		} else {
			s.OnTime++
		}
	}

	if s.Delayed > 0 {
		s.AverageDelay = int(math.Round(float64(totalDelay) / float64(s.Delayed)))
	}
	return s
}

// DisplayFlights filters a dataset to what the flight table shows: returned
// flights are hidden, and only cancelled or delay-classified flights remain.
func DisplayFlights(records []FlightRecord) []FlightRecord {
	out := make([]FlightRecord, 0, len(records))
	for _, r := range records {
		if r.Status == StatusReturned {
			continue
		}
		if r.Status == StatusCancelled || r.DelayCategory != nil {
			out = append(out, r)
		}
	}
	return out
}

// PassResult holds the outcome of one reconciliation pass.
type PassResult struct {
	Date          string         `json:"date"`
	Total         int            `json:"total"`
	Eligible      int            `json:"eligible"`
	Updated       int            `json:"updated"`
	FailedFlights []string       `json:"failedFlights,omitempty"`
	Records       []FlightRecord `json:"-"`
	Duration      time.Duration  `json:"duration"`
}

// IngestResult holds the outcome of the initial ingestion of a day.
type IngestResult struct {
	Date              string        `json:"date"`
	Requested         int           `json:"requested"`
	Processed         int           `json:"processed"`
	UnresolvedFlights []string      `json:"unresolvedFlights,omitempty"`
	Duration          time.Duration `json:"duration"`
}

// PassState tracks reconciliation history for one day.
type PassState struct {
	ID           int64     `db:"id"`
	FlightDate   string    `db:"flight_date"`
	LastPassAt   time.Time `db:"last_pass_at"`
	Passes       int64     `db:"passes"`
	TotalUpdated int64     `db:"total_updated"`
	LastFailed   int       `db:"last_failed"`
}

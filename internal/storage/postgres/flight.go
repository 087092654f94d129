package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"flight_tracker/internal/domain"
)

const flightColumns = `id, flight_number, flight_date, origin, destination, status, etd, atd,
	delay_minutes, delay_category, last_updated`

const flightColumnCount = 11

// FlightStore keeps one dataset of flight records per day.
type FlightStore struct {
	db *sqlx.DB
}

func NewFlightStore(db *sqlx.DB) *FlightStore {
	return &FlightStore{db: db}
}

// ListByDate returns the day's records ordered by id. It fails with
// domain.ErrDatasetNotFound when the day has no dataset.
func (s *FlightStore) ListByDate(ctx context.Context, date string) ([]domain.FlightRecord, error) {
	query := `SELECT ` + flightColumns + ` FROM flight_records WHERE flight_date = $1 ORDER BY id`

	var records []domain.FlightRecord
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &records, query, date); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrDatasetNotFound, date)
	}
	return records, nil
}

// ReplaceDate overwrites the day's dataset with records. Run it inside a
// transaction to make the overwrite atomic.
func (s *FlightStore) ReplaceDate(ctx context.Context, date string, records []domain.FlightRecord) error {
	exec := GetExecutor(ctx, s.db)

	if _, err := exec.ExecContext(ctx, "DELETE FROM flight_records WHERE flight_date = $1", date); err != nil {
		return fmt.Errorf("clear dataset: %w", err)
	}

	if len(records) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO flight_records (" + flightColumns + ") VALUES ")
	valueArgs := make([]interface{}, 0, len(records)*flightColumnCount)

	for i, r := range records {
		if r.Date != date {
			return fmt.Errorf("record %d has date %s, want %s", r.ID, r.Date, date)
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := 0; c < flightColumnCount; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("$")
			sb.WriteString(strconv.Itoa(i*flightColumnCount + c + 1))
		}
		sb.WriteString(")")
		valueArgs = append(valueArgs,
			r.ID,
			r.FlightNumber,
			r.Date,
			r.From,
			r.To,
			r.Status,
			r.ETD,
			r.ATD,
			r.DelayMinutes,
			r.DelayCategory,
			r.LastUpdated,
		)
	}

	if _, err := exec.ExecContext(ctx, sb.String(), valueArgs...); err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}
	return nil
}

// DeleteBefore removes every dataset dated on or before date.
func (s *FlightStore) DeleteBefore(ctx context.Context, date string) (int64, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, "DELETE FROM flight_records WHERE flight_date <= $1", date)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

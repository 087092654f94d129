package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"flight_tracker/internal/domain"
)

type PassStateStore struct {
	db *sqlx.DB
}

func NewPassStateStore(db *sqlx.DB) *PassStateStore {
	return &PassStateStore{db: db}
}

func (s *PassStateStore) Get(ctx context.Context, date string) (*domain.PassState, error) {
	var state domain.PassState
	query := `
		SELECT id, flight_date, last_pass_at, passes, total_updated, last_failed
		FROM reconcile_state
		WHERE flight_date = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &state, query, date)
	if errors.Is(err, sql.ErrNoRows) {
		// No pass has run for this day yet.
		return &domain.PassState{FlightDate: date}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *PassStateStore) Update(ctx context.Context, state *domain.PassState) error {
	query := `
		INSERT INTO reconcile_state (flight_date, last_pass_at, passes, total_updated, last_failed)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (flight_date) DO UPDATE SET
			last_pass_at = EXCLUDED.last_pass_at,
			passes = EXCLUDED.passes,
			total_updated = EXCLUDED.total_updated,
			last_failed = EXCLUDED.last_failed`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		state.FlightDate,
		state.LastPassAt,
		state.Passes,
		state.TotalUpdated,
		state.LastFailed,
	)
	return err
}

// DeleteBefore removes the pass counters of every day on or before date.
func (s *PassStateStore) DeleteBefore(ctx context.Context, date string) (int64, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, "DELETE FROM reconcile_state WHERE flight_date <= $1", date)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"flight_tracker/internal/domain"
)

type FlightStore interface {
	ListByDate(ctx context.Context, date string) ([]domain.FlightRecord, error)
	ReplaceDate(ctx context.Context, date string, records []domain.FlightRecord) error
	DeleteBefore(ctx context.Context, date string) (int64, error)
}

type PassStateStore interface {
	Get(ctx context.Context, date string) (*domain.PassState, error)
	Update(ctx context.Context, state *domain.PassState) error
	DeleteBefore(ctx context.Context, date string) (int64, error)
}

type StatusSource interface {
	ID() string
	Name() string
	FetchStatus(ctx context.Context, flightNumber, date string) ([]domain.StatusUpdate, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	PublishPass(ctx context.Context, result *domain.PassResult) error
	PublishIngest(ctx context.Context, result *domain.IngestResult) error
	Close() error
}

// RosterSource lists the flight numbers scheduled on a weekday.
type RosterSource interface {
	FlightNumbers(ctx context.Context, weekday time.Weekday) ([]string, error)
}

// SheetSink receives exported flight rows.
type SheetSink interface {
	AppendFlights(ctx context.Context, records []domain.FlightRecord) error
}

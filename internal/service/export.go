package service

import (
	"context"
	"fmt"
	"log/slog"
)

// ExportService copies a day's dataset into the reporting spreadsheet.
type ExportService struct {
	flights FlightStore
	sink    SheetSink
	logger  *slog.Logger
}

func NewExportService(flights FlightStore, sink SheetSink, logger *slog.Logger) *ExportService {
	return &ExportService{
		flights: flights,
		sink:    sink,
		logger:  logger.With("component", "export"),
	}
}

// Export appends every record of date to the sheet and returns how many rows
// were written.
func (s *ExportService) Export(ctx context.Context, date string) (int, error) {
	records, err := s.flights.ListByDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("read dataset %s: %w", date, err)
	}

	if err := s.sink.AppendFlights(ctx, records); err != nil {
		return 0, fmt.Errorf("append to sheet: %w", err)
	}

	s.logger.Info("dataset exported", "date", date, "rows", len(records))
	return len(records), nil
}

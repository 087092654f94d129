package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"flight_tracker/internal/config"
	"flight_tracker/internal/domain"
)

type IngestService struct {
	source    StatusSource
	roster    RosterSource
	flights   FlightStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
	config    config.IngestConfig
	loc       *time.Location
	category  domain.CategoryFunc
}

func NewIngestService(
	source StatusSource,
	roster RosterSource,
	flights FlightStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.IngestConfig,
	loc *time.Location,
	delayLabels string,
) *IngestService {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	return &IngestService{
		source:    source,
		roster:    roster,
		flights:   flights,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("component", "ingest", "source", source.ID()),
		config:    cfg,
		loc:       loc,
		category:  domain.CategoryByName(delayLabels),
	}
}

// Ingest builds today's dataset from the weekday roster and replaces
// whatever was stored for the day.
func (s *IngestService) Ingest(ctx context.Context, now time.Time) (*domain.IngestResult, error) {
	startTime := time.Now()
	local := now.In(s.loc)
	date := local.Format(domain.DateLayout)

	numbers, err := s.roster.FlightNumbers(ctx, local.Weekday())
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	numbers = cleanRoster(numbers)
	if len(numbers) == 0 {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrEmptyRoster, local.Weekday(), date)
	}

	s.logger.Info("starting ingest",
		"source_name", s.source.Name(),
		"date", date,
		"flights", len(numbers),
		"batch_size", s.config.BatchSize,
	)

	updates, unresolved, err := s.fetchInBatches(ctx, numbers, date)
	if err != nil {
		return nil, err
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: %s, unresolved %v", domain.ErrNoneResolved, date, unresolved)
	}

	records := make([]domain.FlightRecord, 0, len(updates))
	for i, u := range updates {
		rec := domain.FlightRecord{
			ID:           int64(i + 1),
			FlightNumber: u.FlightNumber,
			Date:         date,
			From:         u.From,
			To:           u.To,
			Status:       u.Status,
			ETD:          u.ETD,
			ATD:          u.ATD,
			LastUpdated:  now,
		}
		rec.ApplyDelay(s.category)
		records = append(records, rec)
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.flights.ReplaceDate(txCtx, date, records)
	})
	if err != nil {
		return nil, fmt.Errorf("write dataset %s: %w", date, err)
	}

	result := &domain.IngestResult{
		Date:              date,
		Requested:         len(numbers),
		Processed:         len(records),
		UnresolvedFlights: unresolved,
		Duration:          time.Since(startTime),
	}

	if s.publisher != nil {
		if err := s.publisher.PublishIngest(ctx, result); err != nil {
			s.logger.Warn("failed to publish ingest report", "date", date, "error", err)
		}
	}

	s.logger.Info("ingest completed",
		"date", date,
		"requested", result.Requested,
		"processed", result.Processed,
		"unresolved", len(result.UnresolvedFlights),
		"duration", result.Duration,
	)

	return result, nil
}

type fetchOutcome struct {
	updates []domain.StatusUpdate
	ok      bool
}

// fetchInBatches queries the roster batch by batch, pausing between batches.
// Matches come back in roster order.
func (s *IngestService) fetchInBatches(ctx context.Context, numbers []string, date string) ([]domain.StatusUpdate, []string, error) {
	var updates []domain.StatusUpdate
	unresolved := []string{}

	for start := 0; start < len(numbers); start += s.config.BatchSize {
		end := min(start+s.config.BatchSize, len(numbers))
		batch := numbers[start:end]
		outcomes := make([]fetchOutcome, len(batch))

		var g errgroup.Group
		for i, raw := range batch {
			i, raw := i, raw
			g.Go(func() error {
				outcomes[i] = s.fetchOne(ctx, raw, date)
				return nil
			})
		}
		_ = g.Wait()

		for i, o := range outcomes {
			if !o.ok {
				unresolved = append(unresolved, batch[i])
				continue
			}
			updates = append(updates, o.updates...)
		}

		if end < len(numbers) {
			s.logger.Debug("batch done, pausing", "processed", end, "pause", s.config.BatchPause)
			timer := time.NewTimer(s.config.BatchPause)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, nil, fmt.Errorf("ingest interrupted after %d flights: %w", end, ctx.Err())
			case <-timer.C:
			}
		}
	}

	return updates, unresolved, nil
}

func (s *IngestService) fetchOne(ctx context.Context, raw, date string) fetchOutcome {
	number := domain.ExtractFlightNumber(raw)
	if number == "" {
		s.logger.Warn("no digits in roster entry", "flight_number", raw)
		return fetchOutcome{}
	}

	updates, err := s.source.FetchStatus(ctx, number, date)
	if err != nil {
		s.logger.Warn("status fetch failed", "flight_number", raw, "error", err)
		return fetchOutcome{}
	}
	if len(updates) == 0 {
		s.logger.Warn("no matching flight", "flight_number", raw)
		return fetchOutcome{}
	}
	return fetchOutcome{updates: updates, ok: true}
}

func cleanRoster(numbers []string) []string {
	cleaned := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	return cleaned
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"flight_tracker/internal/config"
	"flight_tracker/internal/domain"
	"flight_tracker/internal/observability"
)

type ReconcileService struct {
	source    StatusSource
	flights   FlightStore
	passes    PassStateStore
	txManager TransactionManager
	publisher Publisher
	metrics   *observability.Metrics
	logger    *slog.Logger
	config    config.ReconcileConfig
	loc       *time.Location
	category  domain.CategoryFunc
}

func NewReconcileService(
	source StatusSource,
	flights FlightStore,
	passes PassStateStore,
	txManager TransactionManager,
	publisher Publisher,
	metrics *observability.Metrics,
	logger *slog.Logger,
	cfg config.ReconcileConfig,
	loc *time.Location,
) *ReconcileService {
	return &ReconcileService{
		source:    source,
		flights:   flights,
		passes:    passes,
		txManager: txManager,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger.With("component", "reconciler", "source", source.ID()),
		config:    cfg,
		loc:       loc,
		category:  domain.CategoryByName(cfg.DelayLabels),
	}
}

// Reconcile runs one pass over today's dataset: read, refresh the flights
// inside the update window, and overwrite the dataset. Per-flight failures
// keep the stored record. Only read and write failures fail the pass.
func (s *ReconcileService) Reconcile(ctx context.Context, now time.Time) (*domain.PassResult, error) {
	startTime := time.Now()
	date := domain.DateKey(now, s.loc)

	s.logger.Info("starting reconcile pass",
		"date", date,
		"window", s.config.Window,
	)

	current, err := s.flights.ListByDate(ctx, date)
	if err != nil {
		s.metrics.Passes.WithLabelValues("read_error").Inc()
		return nil, fmt.Errorf("read dataset %s: %w", date, err)
	}

	result := s.ReconcileDataset(ctx, current, now)
	result.Date = date

	if result.Eligible == 0 {
		result.Duration = time.Since(startTime)
		s.metrics.Passes.WithLabelValues("skipped").Inc()
		s.logger.Info("no flights in update window", "date", date, "total", result.Total)
		return result, nil
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.flights.ReplaceDate(txCtx, date, result.Records); err != nil {
			return fmt.Errorf("replace dataset: %w", err)
		}
		if err := s.updatePassState(txCtx, date, now, result); err != nil {
			return fmt.Errorf("update pass state: %w", err)
		}
		return nil
	})
	if err != nil {
		s.metrics.Passes.WithLabelValues("write_error").Inc()
		return nil, fmt.Errorf("write dataset %s: %w", date, err)
	}

	result.Duration = time.Since(startTime)

	s.metrics.Passes.WithLabelValues("success").Inc()
	s.metrics.FlightsRefreshed.Add(float64(result.Updated))
	s.metrics.FlightsFailed.Add(float64(len(result.FailedFlights)))
	s.metrics.LastPass.Set(float64(now.Unix()))

	if s.publisher != nil {
		if err := s.publisher.PublishPass(ctx, result); err != nil {
			s.logger.Warn("failed to publish pass report", "date", date, "error", err)
		}
	}

	s.logger.Info("reconcile pass completed",
		"date", date,
		"total", result.Total,
		"eligible", result.Eligible,
		"updated", result.Updated,
		"failed", len(result.FailedFlights),
		"duration", result.Duration,
	)

	return result, nil
}

type refreshOutcome struct {
	record    domain.FlightRecord
	refreshed bool
}

// ReconcileDataset refreshes the eligible records of one dataset and merges
// them back by id. The returned Records keep the input order and length.
// With no eligible records the input is returned untouched.
func (s *ReconcileService) ReconcileDataset(ctx context.Context, records []domain.FlightRecord, now time.Time) *domain.PassResult {
	eligible := domain.SelectEligible(records, now, s.loc, s.config.Window)
	result := &domain.PassResult{
		Total:         len(records),
		Eligible:      len(eligible),
		FailedFlights: []string{},
		Records:       records,
	}
	if len(eligible) == 0 {
		return result
	}

	outcomes := make([]refreshOutcome, len(eligible))

	var g errgroup.Group
	if s.config.MaxConcurrency > 0 {
		g.SetLimit(s.config.MaxConcurrency)
	}
	for i := range eligible {
		i := i
		g.Go(func() error {
			outcomes[i] = s.refresh(ctx, eligible[i], now)
			return nil
		})
	}
	_ = g.Wait()

	byID := make(map[int64]domain.FlightRecord, len(outcomes))
	for i, o := range outcomes {
		byID[o.record.ID] = o.record
		if o.refreshed {
			result.Updated++
		} else {
			result.FailedFlights = append(result.FailedFlights, eligible[i].FlightNumber)
		}
	}

	merged := make([]domain.FlightRecord, len(records))
	for i, r := range records {
		if updated, ok := byID[r.ID]; ok {
			merged[i] = updated
		} else {
			merged[i] = r
		}
	}
	result.Records = merged

	return result
}

// refresh fetches one flight and merges the first match into a copy of rec.
// Every fallback keeps the stored fields and only stamps lastUpdated.
func (s *ReconcileService) refresh(ctx context.Context, rec domain.FlightRecord, now time.Time) (out refreshOutcome) {
	out.record = rec
	out.record.LastUpdated = now

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("flight refresh panicked",
				"flight_number", rec.FlightNumber,
				"panic", r,
			)
			out = refreshOutcome{record: rec}
			out.record.LastUpdated = now
		}
	}()

	number := domain.ExtractFlightNumber(rec.FlightNumber)
	if number == "" {
		s.logger.Warn("no digits in flight number, keeping current data", "flight_number", rec.FlightNumber)
		return out
	}

	updates, err := s.source.FetchStatus(ctx, number, rec.Date)
	if err != nil {
		s.logger.Warn("status fetch failed, keeping current data",
			"flight_number", rec.FlightNumber,
			"error", err,
		)
		return out
	}
	if len(updates) == 0 {
		s.logger.Warn("no matching flight, keeping current data", "flight_number", rec.FlightNumber)
		return out
	}

	latest := updates[0]
	out.record.Status = latest.Status
	out.record.ETD = latest.ETD
	out.record.ATD = latest.ATD
	out.record.ApplyDelay(s.category)
	out.refreshed = true

	s.logger.Debug("flight refreshed",
		"flight_number", rec.FlightNumber,
		"status", latest.Status,
		"delay_minutes", out.record.DelayMinutes,
	)

	return out
}

func (s *ReconcileService) updatePassState(ctx context.Context, date string, now time.Time, result *domain.PassResult) error {
	state, err := s.passes.Get(ctx, date)
	if err != nil {
		return err
	}

	state.FlightDate = date
	state.LastPassAt = now
	state.Passes++
	state.TotalUpdated += int64(result.Updated)
	state.LastFailed = len(result.FailedFlights)

	return s.passes.Update(ctx, state)
}

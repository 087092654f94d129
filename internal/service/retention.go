package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"flight_tracker/internal/domain"
)

// RetentionService drops datasets older than the retention horizon.
type RetentionService struct {
	flights   FlightStore
	passes    PassStateStore
	txManager TransactionManager
	keepDays  int
	loc       *time.Location
	logger    *slog.Logger
}

// PruneResult reports one retention sweep.
type PruneResult struct {
	Cutoff  string
	Records int64
	States  int64
}

func NewRetentionService(
	flights FlightStore,
	passes PassStateStore,
	txManager TransactionManager,
	keepDays int,
	loc *time.Location,
	logger *slog.Logger,
) *RetentionService {
	return &RetentionService{
		flights:   flights,
		passes:    passes,
		txManager: txManager,
		keepDays:  keepDays,
		loc:       loc,
		logger:    logger.With("component", "retention"),
	}
}

// Prune deletes every dataset dated keepDays or more before now together
// with its pass counters. Both deletes commit or neither does.
func (s *RetentionService) Prune(ctx context.Context, now time.Time) (*PruneResult, error) {
	result := &PruneResult{
		Cutoff: domain.DateKey(now.In(s.loc).AddDate(0, 0, -s.keepDays), s.loc),
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		records, err := s.flights.DeleteBefore(txCtx, result.Cutoff)
		if err != nil {
			return fmt.Errorf("delete flight records: %w", err)
		}
		states, err := s.passes.DeleteBefore(txCtx, result.Cutoff)
		if err != nil {
			return fmt.Errorf("delete pass state: %w", err)
		}
		result.Records, result.States = records, states
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("prune datasets up to %s: %w", result.Cutoff, err)
	}

	s.logger.Info("old datasets pruned",
		"cutoff", result.Cutoff,
		"records", result.Records,
		"pass_states", result.States,
	)
	return result, nil
}

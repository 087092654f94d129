package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"flight_tracker/internal/domain"
)

// Reconciler runs one reconciliation pass as of now.
type Reconciler interface {
	Reconcile(ctx context.Context, now time.Time) (*domain.PassResult, error)
}

type Scheduler struct {
	reconciler  Reconciler
	clock       clockwork.Clock
	interval    time.Duration
	passTimeout time.Duration
	afterPass   []func()
	logger      *slog.Logger
}

func NewScheduler(reconciler Reconciler, clock clockwork.Clock, interval, passTimeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		reconciler:  reconciler,
		clock:       clock,
		interval:    interval,
		passTimeout: passTimeout,
		logger:      logger.With("component", "scheduler"),
	}
}

// OnPassCompleted registers fn to run after every pass that returned
// without error. Register hooks before Start.
func (s *Scheduler) OnPassCompleted(fn func()) {
	s.afterPass = append(s.afterPass, fn)
}

// Start runs a pass right away and then one per interval until ctx is done.
// Passes never overlap.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "pass_timeout", s.passTimeout)

	s.runPass(ctx)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.Chan():
			s.runPass(ctx)
		}
	}
}

func (s *Scheduler) runPass(ctx context.Context) {
	passCtx, cancel := context.WithTimeout(ctx, s.passTimeout)
	defer cancel()

	_, err := s.reconciler.Reconcile(passCtx, s.clock.Now())
	switch {
	case err == nil:
		for _, fn := range s.afterPass {
			fn()
		}
	case errors.Is(err, domain.ErrDatasetNotFound):
		s.logger.Warn("nothing to reconcile yet", "error", err)
	default:
		s.logger.Error("reconcile pass failed", "error", err)
	}
}

// FILE: internal/service/status_sweep_service.go
package service

import (
	"context"
	"time"

	"travelmate-be/internal/pkg/logger"
	"travelmate-be/internal/repository/unitofwork"
	"travelmate-be/pkg/availability"
)

// SweepResult reports how many plans each transition moved.
type SweepResult struct {
	Ongoing   int64
	Completed int64
}

type IStatusSweepService interface {
	// RunOnce executes both status transitions against the given clock
	// reading. Running it twice with the same clock is a no-op the second
	// time.
	RunOnce(ctx context.Context, now time.Time) (*SweepResult, error)
}

type statusSweepService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewStatusSweepService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IStatusSweepService {
	return &statusSweepService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *statusSweepService) RunOnce(ctx context.Context, now time.Time) (*SweepResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	today := availability.Midnight(now)
	tomorrow := today.AddDate(0, 0, 1)

	// UPCOMING approved plans whose start date has arrived move to ONGOING,
	// unless they already ended (those fall straight through to COMPLETED).
	ongoing, err := uow.TravelPlanRepository().MarkOngoing(ctx, tomorrow, today)
	if err != nil {
		return nil, err
	}

	completed, err := uow.TravelPlanRepository().MarkCompleted(ctx, today)
	if err != nil {
		return nil, err
	}

	if ongoing > 0 || completed > 0 {
		s.logger.Info("sweep", "Travel plan statuses reconciled", map[string]interface{}{
			"ongoing":   ongoing,
			"completed": completed,
		})
	}
	return &SweepResult{Ongoing: ongoing, Completed: completed}, nil
}

// SweepScheduler drives the sweep on a fixed interval. Requests never wait on
// it; stale statuses are only ever corrected here.
type SweepScheduler struct {
	sweep    IStatusSweepService
	interval time.Duration
	logger   logger.ILogger
}

func NewSweepScheduler(sweep IStatusSweepService, interval time.Duration, log logger.ILogger) *SweepScheduler {
	return &SweepScheduler{
		sweep:    sweep,
		interval: interval,
		logger:   log,
	}
}

// Start runs one sweep immediately, then ticks until the context is
// cancelled. Call it in its own goroutine.
func (s *SweepScheduler) Start(ctx context.Context) {
	s.run(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *SweepScheduler) run(ctx context.Context) {
	if _, err := s.sweep.RunOnce(ctx, time.Now()); err != nil {
		s.logger.Error("sweep", "Status sweep failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

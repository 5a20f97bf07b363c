package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"exchange-ledger/pkg/metrics"

	"github.com/rs/zerolog"
)

const defaultInterval = 24 * time.Hour

// ServiceParams configure the scheduler.
type ServiceParams struct {
	Logger   zerolog.Logger
	Registry *Registry
	Lock     Lock
	Metrics  *metrics.CronJobMetrics
	Interval time.Duration
}

// Service runs registered jobs once at start and then on a fixed interval.
// A failed cycle is logged and retried on the next tick.
type Service struct {
	log      zerolog.Logger
	registry *Registry
	lock     Lock
	metrics  *metrics.CronJobMetrics
	interval time.Duration
}

// NewService builds a scheduler service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Lock == nil {
		return nil, errors.New("lock required")
	}
	registry := params.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Service{
		log:      params.Logger,
		registry: registry,
		lock:     params.Lock,
		metrics:  params.Metrics,
		interval: interval,
	}, nil
}

// Run blocks until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	if err := s.RunOnce(ctx); err != nil {
		s.log.Error().Err(err).Msg("scheduled run failed")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.log.Error().Err(err).Msg("scheduled run failed")
			}
		}
	}
}

// RunOnce runs every job if the lock can be taken. Job failures are
// recorded but do not stop later jobs.
func (s *Service) RunOnce(ctx context.Context) error {
	locked, err := s.lock.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("lock acquire: %w", err)
	}
	if !locked {
		s.log.Info().Msg("another instance holds the scheduler lock; skipping cycle")
		return nil
	}
	defer func() {
		if relErr := s.lock.Release(context.WithoutCancel(ctx)); relErr != nil {
			s.log.Error().Err(relErr).Msg("failed to release scheduler lock")
		}
	}()

	for _, job := range s.registry.Jobs() {
		s.runJob(ctx, job)
	}
	return nil
}

func (s *Service) runJob(ctx context.Context, job Job) {
	log := s.log.With().Str("job", job.Name()).Logger()
	log.Info().Msg("job start")

	start := time.Now()
	err := job.Run(ctx)
	duration := time.Since(start)
	s.metrics.ObserveDuration(job.Name(), duration)

	if err != nil {
		log.Error().Err(err).Dur("duration", duration).Msg("job failed")
		s.metrics.IncFailure(job.Name())
		return
	}
	log.Info().Dur("duration", duration).Msg("job completed")
	s.metrics.IncSuccess(job.Name())
}

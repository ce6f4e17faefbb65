// Package scheduler runs periodic background jobs with gocron
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// BatchJob processes one batch and reports how many items it touched
type BatchJob interface {
	Execute(ctx context.Context) (int64, error)
}

// Scheduler wraps a gocron scheduler
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    zerolog.Logger
}

// NewScheduler creates a scheduler in UTC
func NewScheduler(logger zerolog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		scheduler: s,
		logger:    logger.With().Str("component", "scheduler").Logger(),
	}, nil
}

// RegisterBatchJob runs job every interval, starting immediately. Overlapping runs are skipped.
func (s *Scheduler) RegisterBatchJob(name string, interval time.Duration, job BatchJob) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			s.run(ctx, name, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}

	s.logger.Info().Str("job", name).Dur("interval", interval).Msg("Registered scheduled job")
	return nil
}

func (s *Scheduler) run(ctx context.Context, name string, job BatchJob) {
	start := time.Now()

	count, err := job.Execute(ctx)
	if err != nil {
		s.logger.Error().Err(err).
			Str("job", name).
			Dur("duration", time.Since(start)).
			Msg("Scheduled job failed")
		return
	}

	event := s.logger.Debug()
	if count > 0 {
		event = s.logger.Info()
	}
	event.Str("job", name).
		Int64("count", count).
		Dur("duration", time.Since(start)).
		Msg("Scheduled job finished")
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.scheduler.Start()
	s.logger.Info().Msg("Scheduler started")
}

// Stop waits for running jobs and shuts the scheduler down
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

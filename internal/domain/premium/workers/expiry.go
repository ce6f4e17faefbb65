// Package workers contains background jobs for premium subscriptions
package workers

import (
	"context"

	"github.com/ibrohimkomilov001-web/kinobot/config"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/usecase/buissines"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/scheduler"
)

const expiryJobName = "premium-expiry"

// ExpiryJob deactivates lapsed premium subscriptions
type ExpiryJob struct {
	uc *buissines.UseCase
}

// NewExpiryJob creates a new ExpiryJob
func NewExpiryJob(uc *buissines.UseCase) *ExpiryJob {
	return &ExpiryJob{uc: uc}
}

// Execute runs one sweep
func (j *ExpiryJob) Execute(ctx context.Context) (int64, error) {
	return j.uc.ExpireLapsed(ctx)
}

// RegisterExpiryJob schedules the sweep at the configured interval
func RegisterExpiryJob(s *scheduler.Scheduler, job *ExpiryJob, cfg *config.PremiumConfig) error {
	return s.RegisterBatchJob(expiryJobName, cfg.SweepInterval, job)
}

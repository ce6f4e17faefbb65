package scheduler

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the job scheduler for fx dependency injection
var Module = fx.Module("scheduler",
	fx.Provide(NewScheduler),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop()
		},
	})
}

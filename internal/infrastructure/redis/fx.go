package redis

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Module provides the redis client for fx dependency injection
var Module = fx.Module("redis",
	fx.Provide(NewClient),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, client *Client, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx); err != nil {
				return fmt.Errorf("ping redis: %w", err)
			}
			logger.Info().Msg("Redis connection established")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}

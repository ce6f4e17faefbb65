// Package workers contains background workers for the bot domain
package workers

import (
	"context"

	"go.uber.org/fx"
)

// Module provides workers for fx dependency injection
var Module = fx.Module("bot-workers",
	fx.Provide(NewNotificationConsumer),
	fx.Invoke(registerNotificationConsumerLifecycle),
)

// registerNotificationConsumerLifecycle registers notification consumer lifecycle hooks
func registerNotificationConsumerLifecycle(lc fx.Lifecycle, consumer *NotificationConsumer) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			consumer.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return consumer.Stop()
		},
	})
}

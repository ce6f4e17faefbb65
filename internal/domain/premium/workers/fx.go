package workers

import "go.uber.org/fx"

// Module provides premium background jobs for fx dependency injection
var Module = fx.Module("premium-workers",
	fx.Provide(NewExpiryJob),
	fx.Invoke(RegisterExpiryJob),
)

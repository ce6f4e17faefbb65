// Package http contains the HTTP server used for metrics and health checks
package http

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/ibrohimkomilov001-web/kinobot/config"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/database"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/http/server"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/redis"
)

// Module provides HTTP server for fx DI
var Module = fx.Module("http",
	fx.Provide(NewServerFx),
	fx.Invoke(func(*server.Server) {}),
)

// NewServerFx creates HTTP server with lifecycle hooks for fx DI
func NewServerFx(
	lc fx.Lifecycle,
	serviceCfg *config.ServiceConfig,
	db *gorm.DB,
	redisClient *redis.Client,
	logger zerolog.Logger,
) *server.Server {
	srv := server.NewServer(serviceCfg.Name, serviceCfg.Port, logger)

	srv.RegisterMetrics()
	srv.RegisterHealth(
		server.HealthCheck{Name: "database", Check: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}},
		server.HealthCheck{Name: "redis", Check: redisClient.Ping},
	)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/database"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/http"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/kafka"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/logger"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/metrics"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/redis"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/scheduler"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/telegram"
)

// Module provides all infrastructure components for fx dependency injection
var Module = fx.Module("infrastructure",
	logger.Module,
	metrics.Module,
	database.Module,
	redis.Module,
	kafka.Module,
	telegram.Module,
	scheduler.Module,
	http.Module,
)

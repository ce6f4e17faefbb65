package main

import (
	"os"

	"github.com/ibrohimkomilov001-web/kinobot/config"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/database"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Logging.Level, cfg.Service.Name+"-migrate")

	dir := database.Up
	if len(os.Args) > 1 {
		dir = database.Direction(os.Args[1])
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := database.RunMigrations(db, &cfg.Database, dir); err != nil {
		log.Fatal().Err(err).Str("direction", string(dir)).Msg("Migration failed")
	}

	log.Info().Str("direction", string(dir)).Msg("Migrations applied")
}

// Command migrate applies the database schema and exits.
package main

import (
	"context"
	"os"

	"github.com/MKhiriev/tg-lang-bot/internal/config"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	log := logger.NewLogger("migrate")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Error().Err(err).Msg("error getting configs")
		return 1
	}

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Error().Err(err).Msg("error connecting database")
		return 1
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Error().Err(err).Msg("error applying migrations")
		return 1
	}

	log.Info().Msg("migrations applied")
	return 0
}

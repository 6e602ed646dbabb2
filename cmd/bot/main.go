package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/tg-lang-bot/internal/access"
	"github.com/MKhiriev/tg-lang-bot/internal/adapter"
	"github.com/MKhiriev/tg-lang-bot/internal/config"
	"github.com/MKhiriev/tg-lang-bot/internal/fsm"
	"github.com/MKhiriev/tg-lang-bot/internal/handler/bot"
	"github.com/MKhiriev/tg-lang-bot/internal/i18n"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/pipeline"
	"github.com/MKhiriev/tg-lang-bot/internal/server"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
	"github.com/MKhiriev/tg-lang-bot/internal/workers"
	"github.com/MKhiriev/tg-lang-bot/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("tg-lang-bot")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting database")
	}
	defer db.Close()

	states, closeStates, err := newStateStorage(ctx, cfg.Storage.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating conversation storage")
	}
	defer closeStates()

	catalog, err := i18n.LoadEmbedded(cfg.Bot.DefaultLocale)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading translations")
	}
	log.Info().Strs("locales", catalog.Locales()).Msg("translations loaded")

	storages := store.NewStorages(log)
	platform := adapter.NewBotAPI(cfg.Bot, log)
	resolver := i18n.NewResolver(catalog, storages.Users)

	admins, err := access.NewRoleFilter(storages.Users, models.RoleAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating admin filter")
	}

	handler := bot.NewHandler(storages, platform, resolver, admins, cfg.Bot, log)

	chain, err := pipeline.StandardChain(pipeline.Dependencies{
		Logger:   log,
		Pool:     db,
		Storages: storages,
		Platform: platform,
		Resolver: resolver,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error creating pipeline")
	}

	processor, err := pipeline.NewProcessor(chain, handler.Init().Handle, states, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating processor")
	}

	dispatcher := workers.NewDispatcher(processor, store.NewPostgresErrorClassifier(), cfg.Workers, log)

	srv, err := server.NewServer(dispatcher, workers.NewWorkers(dispatcher), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newStateStorage keeps conversation state in Redis, or in memory when no
// Redis address is configured.
func newStateStorage(ctx context.Context, cfg config.Redis, log *logger.Logger) (fsm.Storage, func(), error) {
	if cfg.Address == "" {
		log.Warn().Msg("redis address is empty, conversation state is kept in memory")
		return fsm.NewMemoryStorage(), func() {}, nil
	}

	client, err := fsm.NewRedisClient(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	return fsm.NewRedisStorage(client, cfg.StateTTL), func() { _ = client.Close() }, nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

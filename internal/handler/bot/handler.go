package bot

import (
	"github.com/MKhiriev/tg-lang-bot/internal/adapter"
	"github.com/MKhiriev/tg-lang-bot/internal/config"
	"github.com/MKhiriev/tg-lang-bot/internal/i18n"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
)

// statisticsLimit is the number of users shown by /statistics.
const statisticsLimit = 5

type Handler struct {
	storages    *store.Storages
	platform    adapter.Platform
	resolver    *i18n.Resolver
	adminFilter Filter
	cfg         config.Bot

	logger *logger.Logger
}

func NewHandler(storages *store.Storages, platform adapter.Platform, resolver *i18n.Resolver,
	adminFilter Filter, cfg config.Bot, logger *logger.Logger) *Handler {
	logger.Info().Msg("bot handler created")
	return &Handler{
		storages:    storages,
		platform:    platform,
		resolver:    resolver,
		adminFilter: adminFilter,
		cfg:         cfg,
		logger:      logger,
	}
}

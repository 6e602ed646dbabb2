package http

import (
	"context"

	"github.com/MKhiriev/tg-lang-bot/internal/config"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/models"
)

// maxUpdateSize bounds the webhook body.
const maxUpdateSize = 1 << 20

// Dispatcher queues events for processing. *workers.Dispatcher implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, event models.Event) error
}

type Handler struct {
	dispatcher Dispatcher

	path   string
	secret string

	logger *logger.Logger
}

func NewHandler(dispatcher Dispatcher, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Str("path", cfg.WebhookPath).Msg("webhook handler created")
	return &Handler{
		dispatcher: dispatcher,
		path:       cfg.WebhookPath,
		secret:     cfg.WebhookSecret,
		logger:     logger,
	}
}

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/tg-lang-bot/internal/config"
	myHTTP "github.com/MKhiriev/tg-lang-bot/internal/handler/http"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// webhookServer receives updates posted to the webhook endpoint.
type webhookServer struct {
	server *http.Server

	logger *logger.Logger
}

func newWebhookServer(dispatcher Dispatcher, cfg config.Server, logger *logger.Logger) *webhookServer {
	handler := myHTTP.NewHandler(dispatcher, cfg, logger)

	return &webhookServer{
		server: &http.Server{
			Addr:              cfg.WebhookAddress,
			Handler:           handler.Init(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

func (h *webhookServer) RunServer() {
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Error().Err(err).Msg("webhook server ListenAndServe")
	}
}

func (h *webhookServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Error().Err(err).Msg("webhook server Shutdown")
	}
}

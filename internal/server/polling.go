package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MKhiriev/tg-lang-bot/internal/adapter"
	"github.com/MKhiriev/tg-lang-bot/internal/config"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
)

// pollingServer receives updates by long polling.
type pollingServer struct {
	api        *tgbotapi.BotAPI
	dispatcher Dispatcher
	timeout    int

	logger *logger.Logger
}

func newPollingServer(dispatcher Dispatcher, bot config.Bot, cfg config.Server, logger *logger.Logger) (*pollingServer, error) {
	if bot.Token == "" {
		return nil, errEmptyToken
	}

	endpoint := strings.TrimRight(bot.APIEndpoint, "/") + "/bot%s/%s"
	// no client timeout: long polling requests are held open by the platform
	api, err := tgbotapi.NewBotAPIWithClient(bot.Token, endpoint, &http.Client{})
	if err != nil {
		return nil, fmt.Errorf("error connecting bot api: %w", err)
	}
	logger.Info().Str("username", api.Self.UserName).Msg("authorized on bot api")

	return &pollingServer{
		api:        api,
		dispatcher: dispatcher,
		timeout:    cfg.PollTimeout,
		logger:     logger,
	}, nil
}

// RunServer returns once Shutdown stopped the update channel.
func (p *pollingServer) RunServer() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = p.timeout
	u.AllowedUpdates = []string{"message", "callback_query", "my_chat_member"}

	for update := range p.api.GetUpdatesChan(u) {
		event, ok := adapter.EventFromUpdate(update)
		if !ok {
			p.logger.Debug().Int("update_id", update.UpdateID).Msg("update skipped")
			continue
		}
		if err := p.dispatcher.Dispatch(context.Background(), event); err != nil {
			p.logger.Error().Err(err).Int("update_id", update.UpdateID).Msg("error dispatching update")
		}
	}
}

func (p *pollingServer) Shutdown() {
	p.logger.Info().Msg("stopping long polling")
	p.api.StopReceivingUpdates()
}

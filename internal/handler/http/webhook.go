package http

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MKhiriev/tg-lang-bot/internal/adapter"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/utils"
	"github.com/MKhiriev/tg-lang-bot/internal/workers"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// webhook accepts one update. Updates the bot does not handle are
// acknowledged so the platform does not redeliver them.
func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if !h.validSecret(r.Header.Get(secretTokenHeader)) {
		log.Warn().Err(ErrInvalidSecretToken).Msg("webhook request rejected")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var update tgbotapi.Update
	if err := utils.DecodeJSON(r.Body, maxUpdateSize, &update); err != nil {
		log.Warn().Err(fmt.Errorf("%w: %w", ErrDecodingUpdate, err)).Msg("bad webhook body")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	event, ok := adapter.EventFromUpdate(update)
	if !ok {
		log.Debug().Int("update_id", update.UpdateID).Msg("update skipped")
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), event); err != nil {
		log.Error().Err(err).Int("update_id", update.UpdateID).Msg("error dispatching update")
		if errors.Is(err, workers.ErrDispatcherStopped) {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK); err != nil {
		h.logger.Error().Err(err).Str("func", "*Handler.healthz").Msg("error writing health check response")
	}
}

func (h *Handler) validSecret(got string) bool {
	if h.secret == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}

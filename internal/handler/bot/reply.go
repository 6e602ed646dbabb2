package bot

import (
	"context"

	"github.com/MKhiriev/tg-lang-bot/internal/adapter"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/pipeline"
	"github.com/MKhiriev/tg-lang-bot/models"
)

// answer sends text to the chat of the event.
func (h *Handler) answer(ctx context.Context, scope *pipeline.Scope, text string) error {
	_, err := h.platform.SendMessage(ctx, models.OutgoingMessage{
		ChatID: scope.Event.ChatID,
		Text:   text,
	})
	return err
}

// reply sends text as a reply to the message of the event.
func (h *Handler) reply(ctx context.Context, scope *pipeline.Scope, text string) error {
	_, err := h.platform.SendMessage(ctx, models.OutgoingMessage{
		ChatID:  scope.Event.ChatID,
		Text:    text,
		ReplyTo: scope.Event.MessageID,
	})
	return err
}

// removeControls drops the inline keyboard of a message. It is best effort:
// the message may be gone or already have no keyboard.
func (h *Handler) removeControls(ctx context.Context, chatID int64, messageID int) {
	if messageID == 0 {
		return
	}

	err := h.platform.EditReplyMarkup(ctx, chatID, messageID, nil)
	if err == nil {
		return
	}

	log := logger.FromContext(ctx)
	if adapter.IsBadRequest(err) {
		log.Debug().Err(err).Int("message_id", messageID).Msg("picker controls already gone")
		return
	}
	log.Warn().Err(err).Str("func", "*Handler.removeControls").Int("message_id", messageID).
		Msg("failed to remove picker controls")
}

// edit replaces the text and keyboard of a message, ignoring edits of
// messages that are gone or unchanged.
func (h *Handler) edit(ctx context.Context, chatID int64, messageID int, text string, keyboard models.InlineKeyboard) error {
	err := h.platform.EditMessageText(ctx, chatID, messageID, text, keyboard)
	if err != nil && adapter.IsBadRequest(err) {
		logger.FromContext(ctx).Debug().Err(err).Int("message_id", messageID).Msg("edit skipped")
		return nil
	}
	return err
}

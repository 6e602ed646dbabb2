package bot

import (
	"context"

	"github.com/MKhiriev/tg-lang-bot/internal/adapter"
	"github.com/MKhiriev/tg-lang-bot/internal/pipeline"
)

// echo copies the message back to its sender. Messages the platform cannot
// copy get the no_echo text instead.
func (h *Handler) echo(ctx context.Context, scope *pipeline.Scope) error {
	actor := scope.Actor()

	_, err := h.platform.CopyMessage(ctx, actor.ID, scope.Event.ChatID, scope.Event.MessageID)
	if err == nil {
		return nil
	}
	if adapter.IsBadRequest(err) {
		return h.answer(ctx, scope, scope.Translations.Text("no_echo"))
	}
	return err
}

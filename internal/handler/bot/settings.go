package bot

import (
	"context"

	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/pipeline"
	"github.com/MKhiriev/tg-lang-bot/models"
)

// lang shows the locale picker with the current locale checked.
func (h *Handler) lang(ctx context.Context, scope *pipeline.Scope) error {
	conversation := scope.Conversation
	if conversation == nil {
		return nil
	}
	tr := scope.Translations

	messageID, err := h.platform.SendMessage(ctx, models.OutgoingMessage{
		ChatID:   scope.Event.ChatID,
		Text:     tr.Text("/lang"),
		Keyboard: localePicker(tr, h.resolver.Catalog().Locales(), scope.Locale),
	})
	if err != nil {
		return err
	}

	return conversation.StartLocaleSelection(ctx, messageID)
}

// selectLocale re-renders the picker in the pending locale. The pending
// locale itself was recorded by the pipeline before the handler ran.
func (h *Handler) selectLocale(ctx context.Context, scope *pipeline.Scope) error {
	callback := scope.Event.Callback
	if !awaitingLocale(scope) {
		return h.closeStalePicker(ctx, scope)
	}
	tr := scope.Translations

	err := h.edit(ctx, scope.Event.ChatID, callback.MessageID, tr.Text("/lang"),
		localePicker(tr, h.resolver.Catalog().Locales(), scope.Locale))
	if err != nil {
		return err
	}

	return h.platform.AnswerCallback(ctx, callback.ID, "")
}

// saveLocale commits the pending locale and closes the picker.
func (h *Handler) saveLocale(ctx context.Context, scope *pipeline.Scope) error {
	if !awaitingLocale(scope) {
		return h.closeStalePicker(ctx, scope)
	}
	actor := scope.Actor()
	callback := scope.Event.Callback
	conversation := scope.Conversation
	users := h.storages.Users

	if pending := conversation.PendingLocale(); pending != "" {
		if err := users.UpdateLanguage(ctx, scope.Tx, actor.ID, pending); err != nil {
			return err
		}
		logger.FromContext(ctx).Info().Int64("user_id", actor.ID).Str("language", pending).Msg("language saved")
	}

	tr := scope.Translations
	if err := h.edit(ctx, scope.Event.ChatID, callback.MessageID, tr.Text("lang_saved"), nil); err != nil {
		return err
	}

	role, found, err := users.GetRole(ctx, scope.Tx, actor.ID)
	if err != nil {
		return err
	}
	if found {
		if err = h.platform.SetCommands(ctx, scope.Event.ChatID, mainMenu(tr, role)); err != nil {
			return err
		}
	}

	if err = conversation.Finish(ctx); err != nil {
		return err
	}
	return h.platform.AnswerCallback(ctx, callback.ID, "")
}

// cancelLocale closes the picker keeping the stored language. The pending
// locale was already dropped by the pipeline, so the translations are
// those of the stored language.
func (h *Handler) cancelLocale(ctx context.Context, scope *pipeline.Scope) error {
	if !awaitingLocale(scope) {
		return h.closeStalePicker(ctx, scope)
	}
	callback := scope.Event.Callback

	if err := h.edit(ctx, scope.Event.ChatID, callback.MessageID, scope.Translations.Text("lang_cancelled"), nil); err != nil {
		return err
	}
	if err := scope.Conversation.Finish(ctx); err != nil {
		return err
	}
	return h.platform.AnswerCallback(ctx, callback.ID, "")
}

// supersedeLocaleSelection closes an open picker when another command
// arrives. /start closes the picker itself.
func (h *Handler) supersedeLocaleSelection(ctx context.Context, scope *pipeline.Scope) error {
	if !scope.Event.IsCommand() || !awaitingLocale(scope) || scope.Event.Command.Name == "start" {
		return nil
	}
	conversation := scope.Conversation
	hadPending := conversation.PendingLocale() != ""

	h.removeControls(ctx, scope.Event.ChatID, conversation.State().PendingMessageID)
	if err := conversation.Finish(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug().Str("command", scope.Event.Command.Name).Msg("locale selection superseded")

	if !hadPending {
		return nil
	}

	// the translations were resolved from the discarded pending locale
	locale, tr, err := h.resolver.Resolve(ctx, scope.Tx, *scope.Actor(), "")
	if err != nil {
		return err
	}
	scope.Locale, scope.Translations = locale, tr
	return nil
}

// closeStalePicker handles presses on a picker that is no longer open.
func (h *Handler) closeStalePicker(ctx context.Context, scope *pipeline.Scope) error {
	callback := scope.Event.Callback
	h.removeControls(ctx, scope.Event.ChatID, callback.MessageID)
	return h.platform.AnswerCallback(ctx, callback.ID, "")
}

func awaitingLocale(scope *pipeline.Scope) bool {
	return scope.Actor() != nil && scope.Conversation != nil && scope.Conversation.State().AwaitingLocale()
}

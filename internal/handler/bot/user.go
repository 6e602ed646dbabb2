package bot

import (
	"context"

	"github.com/MKhiriev/tg-lang-bot/internal/i18n"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/pipeline"
	"github.com/MKhiriev/tg-lang-bot/models"
)

// register makes sure the actor of every event has a user row and is
// marked alive. It runs ahead of routing, so handlers and the activity
// counter can rely on the row.
func (h *Handler) register(ctx context.Context, scope *pipeline.Scope) error {
	actor := scope.Actor()
	if actor == nil {
		return nil
	}

	role := models.RoleUser
	if h.cfg.IsAdmin(actor.ID) {
		role = models.RoleAdmin
	}
	newUser := models.NewUser(actor.ID, actor.Username, i18n.NormalizeLocale(actor.LanguageCode), role)

	created, err := h.storages.Users.EnsureUser(ctx, scope.Tx, newUser)
	if err != nil {
		return err
	}
	if created {
		logger.FromContext(ctx).Info().Int64("user_id", actor.ID).Str("role", role.String()).Msg("new user")
	}
	return nil
}

// start closes an open locale picker, publishes the command menu and
// greets.
func (h *Handler) start(ctx context.Context, scope *pipeline.Scope) error {
	actor := scope.Actor()
	if actor == nil {
		return nil
	}

	role, found, err := h.storages.Users.GetRole(ctx, scope.Tx, actor.ID)
	if err != nil {
		return err
	}
	if !found {
		role = models.RoleUser
	}

	tr := scope.Translations
	if conversation := scope.Conversation; conversation != nil && conversation.State().AwaitingLocale() {
		h.removeControls(ctx, scope.Event.ChatID, conversation.State().PendingMessageID)
		if _, tr, err = h.resolver.Resolve(ctx, scope.Tx, *actor, ""); err != nil {
			return err
		}
	}

	if err = h.platform.SetCommands(ctx, scope.Event.ChatID, mainMenu(tr, role)); err != nil {
		return err
	}
	if err = h.answer(ctx, scope, tr.Text("/start")); err != nil {
		return err
	}

	if scope.Conversation != nil {
		return scope.Conversation.Finish(ctx)
	}
	return nil
}

func (h *Handler) help(ctx context.Context, scope *pipeline.Scope) error {
	return h.answer(ctx, scope, scope.Translations.Text("/help"))
}

// blocked marks a user who blocked the bot as unreachable.
func (h *Handler) blocked(ctx context.Context, scope *pipeline.Scope) error {
	actor := scope.Actor()
	if actor == nil {
		return nil
	}

	logger.FromContext(ctx).Info().Int64("user_id", actor.ID).Msg("user blocked the bot")
	return h.storages.Users.UpdateAliveStatus(ctx, scope.Tx, actor.ID, false)
}

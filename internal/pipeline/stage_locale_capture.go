package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/tg-lang-bot/internal/i18n"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/models"
)

type localeCaptureStage struct {
	catalog *i18n.Catalog
}

// NewLocaleCaptureStage records the locale picked in an open locale picker
// as the pending locale of the conversation. The user record is not
// touched; the save handler commits the pending locale.
func NewLocaleCaptureStage(catalog *i18n.Catalog) Stage {
	return &localeCaptureStage{catalog: catalog}
}

func (s *localeCaptureStage) Name() string { return "locale_capture" }

func (s *localeCaptureStage) Wrap(next Handler) Handler {
	return func(ctx context.Context, scope *Scope) error {
		if !scope.Event.IsCallback() || scope.Actor() == nil || scope.Conversation == nil {
			return next(ctx, scope)
		}
		if s.catalog == nil {
			return fmt.Errorf("%w: translation catalog is not provided", ErrConfiguration)
		}

		conversation := scope.Conversation
		if !conversation.State().AwaitingLocale() {
			return next(ctx, scope)
		}

		data := scope.Event.Callback.Data
		switch {
		case data == models.CallbackCancelLocale:
			if err := conversation.ClearPendingLocale(ctx); err != nil {
				return err
			}
		case slices.Contains(s.catalog.Locales(), data):
			changed, err := conversation.SelectLocale(ctx, data)
			if err != nil {
				return err
			}
			if changed {
				logger.FromContext(ctx).Debug().Str("pending_locale", data).Msg("pending locale changed")
			}
		}

		return next(ctx, scope)
	}
}

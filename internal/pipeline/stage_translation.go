package pipeline

import (
	"context"
	"fmt"

	"github.com/MKhiriev/tg-lang-bot/internal/i18n"
)

type translationStage struct {
	resolver *i18n.Resolver
}

// NewTranslationStage puts the translations of the acting user into the
// scope. Events without actor reach the handler without translations.
func NewTranslationStage(resolver *i18n.Resolver) Stage {
	return &translationStage{resolver: resolver}
}

func (s *translationStage) Name() string { return "translation" }

func (s *translationStage) Wrap(next Handler) Handler {
	return func(ctx context.Context, scope *Scope) error {
		actor := scope.Actor()
		if actor == nil {
			return next(ctx, scope)
		}
		if s.resolver == nil {
			return fmt.Errorf("%w: translation catalog is not provided", ErrConfiguration)
		}
		if scope.Tx == nil {
			return fmt.Errorf("%w: translation without transaction", ErrConfiguration)
		}

		var pending string
		if scope.Conversation != nil {
			pending = scope.Conversation.PendingLocale()
		}

		locale, translations, err := s.resolver.Resolve(ctx, scope.Tx, *actor, pending)
		if err != nil {
			return err
		}
		scope.Locale = locale
		scope.Translations = translations

		return next(ctx, scope)
	}
}

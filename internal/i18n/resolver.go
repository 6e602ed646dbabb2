package i18n

import (
	"context"
	"fmt"

	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
	"github.com/MKhiriev/tg-lang-bot/models"
)

// LanguageGetter reads the stored language of a user.
type LanguageGetter interface {
	GetLanguage(ctx context.Context, q store.Querier, userID int64) (string, bool, error)
}

// Resolver picks the active translation set of an acting user.
type Resolver struct {
	catalog *Catalog
	users   LanguageGetter
}

func NewResolver(catalog *Catalog, users LanguageGetter) *Resolver {
	return &Resolver{catalog: catalog, users: users}
}

func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Resolve returns the locale and translations for actor. Candidates are
// tried in order and the first supported one wins:
//  1. pending, the locale selected in an unfinished locale picker;
//  2. the language stored for the user;
//  3. the language reported by the platform.
//
// When none is supported the catalog default is returned.
func (r *Resolver) Resolve(ctx context.Context, q store.Querier, actor models.Actor, pending string) (string, Translations, error) {
	candidates := make([]string, 0, 3)
	if pending != "" {
		candidates = append(candidates, pending)
	} else {
		stored, found, err := r.users.GetLanguage(ctx, q, actor.ID)
		if err != nil {
			return "", nil, fmt.Errorf("error resolving locale: %w", err)
		}
		if found {
			candidates = append(candidates, stored)
		}
	}
	candidates = append(candidates, actor.LanguageCode)

	for _, candidate := range candidates {
		if t, ok := r.catalog.Lookup(candidate); ok {
			return NormalizeLocale(candidate), t, nil
		}
	}

	logger.FromContext(ctx).Debug().Int64("user_id", actor.ID).Strs("candidates", candidates).
		Msg("no supported locale, using default")

	return r.catalog.DefaultLocale(), r.catalog.Default(), nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"context"
	"fmt"

	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
)

// BannedStatusGetter reads the ban flag of a user.
type BannedStatusGetter interface {
	GetBannedStatusByID(ctx context.Context, q store.Querier, userID int64) (banned, found bool, err error)
}

// CallbackAnswerer acknowledges button presses.
type CallbackAnswerer interface {
	AnswerCallback(ctx context.Context, callbackID string, text string) error
}

type shadowBanStage struct {
	users    BannedStatusGetter
	platform CallbackAnswerer
}

// NewShadowBanStage stops events of banned users. A button press of a
// banned user is still acknowledged so the client stops waiting.
func NewShadowBanStage(users BannedStatusGetter, platform CallbackAnswerer) Stage {
	return &shadowBanStage{users: users, platform: platform}
}

func (s *shadowBanStage) Name() string { return "shadow_ban" }

func (s *shadowBanStage) Wrap(next Handler) Handler {
	return func(ctx context.Context, scope *Scope) error {
		actor := scope.Actor()
		if actor == nil {
			return next(ctx, scope)
		}
		if scope.Tx == nil {
			return fmt.Errorf("%w: shadow ban check without transaction", ErrConfiguration)
		}

		banned, _, err := s.users.GetBannedStatusByID(ctx, scope.Tx, actor.ID)
		if err != nil {
			return err
		}
		if !banned {
			return next(ctx, scope)
		}

		logger.FromContext(ctx).Info().Int64("user_id", actor.ID).Msg("shadow-banned user tried to interact")
		if scope.Event.IsCallback() {
			return s.platform.AnswerCallback(ctx, scope.Event.Callback.ID, "")
		}
		return nil
	}
}

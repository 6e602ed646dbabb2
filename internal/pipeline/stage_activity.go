package pipeline

import (
	"context"
	"fmt"

	"github.com/MKhiriev/tg-lang-bot/internal/store"
)

// ActivityTicker records one action of a user.
type ActivityTicker interface {
	Tick(ctx context.Context, q store.Querier, userID int64) error
}

type activityStage struct {
	activity ActivityTicker
}

// NewActivityStage counts one action of the acting user after the rest of
// the chain succeeded. Failed events are not counted.
func NewActivityStage(activity ActivityTicker) Stage {
	return &activityStage{activity: activity}
}

func (s *activityStage) Name() string { return "activity" }

func (s *activityStage) Wrap(next Handler) Handler {
	return func(ctx context.Context, scope *Scope) error {
		actor := scope.Actor()
		if actor == nil {
			return next(ctx, scope)
		}
		if scope.Tx == nil {
			return fmt.Errorf("%w: activity accounting without transaction", ErrConfiguration)
		}

		if err := next(ctx, scope); err != nil {
			return err
		}

		return s.activity.Tick(ctx, scope.Tx, actor.ID)
	}
}

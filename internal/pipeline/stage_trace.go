package pipeline

import (
	"context"

	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/utils"
	"github.com/rs/zerolog"
)

type traceStage struct {
	logger *logger.Logger
}

// NewTraceStage gives every event a trace id and a child logger carrying
// it. The logger is available to the stages below via [logger.FromContext].
func NewTraceStage(logger *logger.Logger) Stage {
	return &traceStage{logger: logger}
}

func (s *traceStage) Name() string { return "trace" }

func (s *traceStage) Wrap(next Handler) Handler {
	return func(ctx context.Context, scope *Scope) error {
		traceID, ok := utils.GetTraceIDFromContext(ctx)
		if !ok || traceID == "" {
			traceID = utils.NewTraceID()
			ctx = utils.WithTraceID(ctx, traceID)
		}

		l := s.logger.WithTraceID(traceID)
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			c = c.Int("update_id", scope.Event.UpdateID)
			if userID, ok := scope.Event.ActorID(); ok {
				c = c.Int64("user_id", userID)
			}
			return c
		})

		return next(l.WithContext(ctx), scope)
	}
}

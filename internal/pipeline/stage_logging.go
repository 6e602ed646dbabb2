package pipeline

import (
	"context"
	"time"

	"github.com/MKhiriev/tg-lang-bot/internal/logger"
)

type loggingStage struct{}

// NewLoggingStage logs the kind, duration and outcome of every event.
func NewLoggingStage() Stage {
	return loggingStage{}
}

func (loggingStage) Name() string { return "logging" }

func (loggingStage) Wrap(next Handler) Handler {
	return func(ctx context.Context, scope *Scope) error {
		log := logger.FromContext(ctx)

		start := time.Now()
		err := next(ctx, scope)
		duration := time.Since(start)

		if err != nil {
			log.Error().Err(err).
				Str("kind", string(scope.Event.Kind)).
				Dur("duration", duration).
				Msg("event failed")
			return err
		}

		log.Info().
			Str("kind", string(scope.Event.Kind)).
			Dur("duration", duration).
			Send()
		return nil
	}
}

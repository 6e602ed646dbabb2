// Package workers runs the background loops of the bot. The main one is
// the [Dispatcher], which spreads inbound events over a fixed number of
// shards so that one user's events are handled in order while different
// users are handled in parallel.
package workers

import (
	"context"

	"github.com/MKhiriev/tg-lang-bot/models"
)

// Worker is a background loop. Run blocks until ctx is cancelled and the
// worker has stopped.
type Worker interface {
	Run(ctx context.Context)
}

// EventProcessor handles one event. *pipeline.Processor implements it.
type EventProcessor interface {
	Process(ctx context.Context, event models.Event) error
}

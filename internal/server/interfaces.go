package server

import (
	"context"

	"github.com/MKhiriev/tg-lang-bot/models"
)

// Server defines the lifecycle contract of the bot and of its transports.
//
// Implementations block in [RunServer] until shutdown is requested and
// release resources in [Shutdown].
type Server interface {
	// RunServer starts serving and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server.
	Shutdown()
}

// Dispatcher queues events for processing. *workers.Dispatcher implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, event models.Event) error
}

// Runner is a background loop that stops once ctx is cancelled.
type Runner interface {
	Run(ctx context.Context)
}

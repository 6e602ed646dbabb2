// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/tg-lang-bot/internal/adapter"
	"github.com/MKhiriev/tg-lang-bot/internal/config"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
	"github.com/MKhiriev/tg-lang-bot/models"
)

// ErrDispatcherStopped is returned by [Dispatcher.Dispatch] after shutdown
// began.
var ErrDispatcherStopped = errors.New("dispatcher stopped")

const (
	defaultShards       = 4
	defaultQueueSize    = 64
	defaultEventTimeout = 30 * time.Second
)

// Dispatcher queues events by shard and processes every shard on its own
// goroutine. The shard of an event is chosen by its actor, or by its chat
// when there is no actor.
type Dispatcher struct {
	processor    EventProcessor
	classifier   store.ErrorClassificator
	queues       []chan models.Event
	eventTimeout time.Duration

	mu     sync.RWMutex
	closed bool

	logger *logger.Logger
}

// NewDispatcher creates a dispatcher. classifier tells transient database
// failures apart in the failure log.
func NewDispatcher(processor EventProcessor, classifier store.ErrorClassificator, cfg config.Workers, logger *logger.Logger) *Dispatcher {
	shards := cfg.Shards
	if shards <= 0 {
		shards = defaultShards
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	eventTimeout := cfg.EventTimeout
	if eventTimeout <= 0 {
		eventTimeout = defaultEventTimeout
	}

	queues := make([]chan models.Event, shards)
	for i := range queues {
		queues[i] = make(chan models.Event, queueSize)
	}

	return &Dispatcher{
		processor:    processor,
		classifier:   classifier,
		queues:       queues,
		eventTimeout: eventTimeout,
		logger:       logger,
	}
}

// Dispatch queues event. It blocks while the shard queue is full.
func (d *Dispatcher) Dispatch(ctx context.Context, event models.Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherStopped
	}

	select {
	case d.queues[d.shard(event)] <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes queued events until ctx is cancelled. Events queued before
// the cancellation are still processed.
func (d *Dispatcher) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i, queue := range d.queues {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.work(ctx, i, queue)
		}()
	}
	d.logger.Info().Int("shards", len(d.queues)).Msg("dispatcher started")

	<-ctx.Done()

	d.mu.Lock()
	d.closed = true
	for _, queue := range d.queues {
		close(queue)
	}
	d.mu.Unlock()

	wg.Wait()
	d.logger.Info().Msg("dispatcher stopped")
}

func (d *Dispatcher) shard(event models.Event) int {
	key := event.ChatID
	if id, ok := event.ActorID(); ok {
		key = id
	}
	return int(uint64(key) % uint64(len(d.queues)))
}

func (d *Dispatcher) work(ctx context.Context, shard int, queue <-chan models.Event) {
	// events already queued outlive the shutdown signal
	ctx = context.WithoutCancel(ctx)
	for event := range queue {
		d.process(ctx, shard, event)
	}
}

func (d *Dispatcher) process(ctx context.Context, shard int, event models.Event) {
	ctx, cancel := context.WithTimeout(ctx, d.eventTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Interface("panic", r).Int("shard", shard).
				Int("update_id", event.UpdateID).Msg("event processing panicked")
		}
	}()

	if err := d.processor.Process(ctx, event); err != nil {
		d.logger.Error().Err(err).
			Int("shard", shard).
			Int("update_id", event.UpdateID).
			Bool("retryable", d.retryable(err)).
			Msg("event processing failed")
	}
}

// retryable reports whether an event failed for a transient reason: the
// event timeout, a database or pool failure, or a platform rate limit or
// outage.
func (d *Dispatcher) retryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if d.classifier != nil && d.classifier.Classify(err) == store.Retryable {
		return true
	}
	return adapter.IsRetryable(err)
}

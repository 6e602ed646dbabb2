// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/tg-lang-bot/internal/config"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
)

type server struct {
	transport Server
	workers   Runner

	logger *logger.Logger
}

// NewServer picks the transport: a webhook server when a webhook address
// is configured, long polling otherwise. workers is run for the lifetime
// of the server and usually wraps the dispatcher.
func NewServer(dispatcher Dispatcher, workers Runner, cfg *config.StructuredConfig, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	s := &server{workers: workers, logger: logger}

	if cfg.Server.WebhookAddress != "" {
		s.transport = newWebhookServer(dispatcher, cfg.Server, logger)
		return s, nil
	}

	poller, err := newPollingServer(dispatcher, cfg.Bot, cfg.Server, logger)
	if err != nil {
		return nil, err
	}
	s.transport = poller

	return s, nil
}

// RunServer blocks until a stop signal arrives and everything stopped.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.run(ctx)
}

// Shutdown stops the transport. RunServer then stops the workers.
func (s *server) Shutdown() {
	s.transport.Shutdown()
}

func (s *server) run(ctx context.Context) {
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var workersDone sync.WaitGroup
	workersDone.Add(1)
	go func() {
		defer workersDone.Done()
		s.workers.Run(workersCtx)
	}()

	transportDone := make(chan struct{})
	s.logger.Info().Msg("launching transport")
	go func() {
		defer close(transportDone)
		s.transport.RunServer()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
		s.Shutdown()
		<-transportDone
	case <-transportDone:
		s.logger.Warn().Msg("transport stopped unexpectedly")
	}

	// queued events are drained before the workers return
	stopWorkers()
	workersDone.Wait()

	s.logger.Info().Msg("server Shutdown gracefully")
}

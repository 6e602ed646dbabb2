// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package pipeline runs every inbound event through an ordered chain of
// stages before the handler sees it.
//
// A [Stage] wraps a continuation. [NewChain] folds the stages so that the
// first one is the outermost and the handler is the innermost call. The
// per-event [Scope] is built once by the [Processor] and passed explicitly
// through the chain; stages fill in its optional parts (the transaction,
// the translations) for the stages and the handler below them.
package pipeline

import (
	"context"
	"errors"

	"github.com/MKhiriev/tg-lang-bot/internal/fsm"
	"github.com/MKhiriev/tg-lang-bot/internal/i18n"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
	"github.com/MKhiriev/tg-lang-bot/models"
)

// ErrConfiguration is the root of every error caused by a missing
// dependency. These errors are fatal for the event and never retried.
var ErrConfiguration = errors.New("pipeline configuration error")

// Scope is the state of one event as it travels through the chain.
type Scope struct {
	Event models.Event

	// Tx is the transaction of the event. It is nil until the transaction
	// stage runs.
	Tx store.Querier

	// Locale and Translations are set by the translation stage when the
	// event has an actor.
	Locale       string
	Translations i18n.Translations

	// Conversation is nil when the event has no actor.
	Conversation *fsm.Conversation
}

// Actor returns the acting user or nil.
func (s *Scope) Actor() *models.Actor {
	return s.Event.Actor
}

// Handler processes one event.
type Handler func(ctx context.Context, scope *Scope) error

// Stage is one link of the chain.
type Stage interface {
	Name() string
	Wrap(next Handler) Handler
}

// Chain is an ordered list of stages.
type Chain struct {
	stages []Stage
}

// NewChain returns a chain running stages in the given order, the first
// stage being the outermost.
func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: stages}
}

// Then wraps handler into every stage of the chain.
func (c *Chain) Then(handler Handler) Handler {
	for i := len(c.stages) - 1; i >= 0; i-- {
		handler = c.stages[i].Wrap(handler)
	}
	return handler
}

// Names returns the stage names from the outermost to the innermost.
func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.stages))
	for _, stage := range c.stages {
		names = append(names, stage.Name())
	}
	return names
}

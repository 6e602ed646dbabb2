// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fsm

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/tg-lang-bot/models"
)

// ErrInvalidTransition is returned when a transition is not allowed from
// the current state.
var ErrInvalidTransition = errors.New("invalid conversation transition")

// Conversation is the handle of one conversation for the duration of an
// event. Its transitions are the only way to change the state; each one is
// persisted immediately.
//
// A Conversation is not safe for concurrent use. Events of one user are
// expected to be processed one at a time.
type Conversation struct {
	key     Key
	storage Storage
	state   models.ConversationState
}

// Load reads the current state of key.
func Load(ctx context.Context, storage Storage, key Key) (*Conversation, error) {
	state, err := storage.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if state.Step == "" {
		state.Step = models.StepIdle
	}

	return &Conversation{key: key, storage: storage, state: state}, nil
}

func (c *Conversation) Key() Key {
	return c.key
}

// State returns a copy of the current state.
func (c *Conversation) State() models.ConversationState {
	return c.state
}

// PendingLocale returns the tentatively selected locale, if any.
func (c *Conversation) PendingLocale() string {
	return c.state.PendingLocale
}

// StartLocaleSelection moves an idle conversation to awaiting_locale and
// remembers the picker message.
func (c *Conversation) StartLocaleSelection(ctx context.Context, messageID int) error {
	if !c.state.Idle() {
		return fmt.Errorf("%w: start locale selection from %s", ErrInvalidTransition, c.state.Step)
	}

	return c.save(ctx, models.ConversationState{
		Step:             models.StepAwaitingLocale,
		PendingMessageID: messageID,
	})
}

// SelectLocale sets the pending locale. changed is false when locale is
// already pending.
func (c *Conversation) SelectLocale(ctx context.Context, locale string) (changed bool, err error) {
	if !c.state.AwaitingLocale() {
		return false, fmt.Errorf("%w: select locale from %s", ErrInvalidTransition, c.state.Step)
	}
	if c.state.PendingLocale == locale {
		return false, nil
	}

	next := c.state
	next.PendingLocale = locale
	if err = c.save(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// ClearPendingLocale discards the pending locale and stays in
// awaiting_locale.
func (c *Conversation) ClearPendingLocale(ctx context.Context) error {
	if !c.state.AwaitingLocale() {
		return fmt.Errorf("%w: clear pending locale from %s", ErrInvalidTransition, c.state.Step)
	}

	next := c.state
	next.PendingLocale = ""
	return c.save(ctx, next)
}

// Finish returns the conversation to idle and drops all of its data. It is
// a no-op for an idle conversation.
func (c *Conversation) Finish(ctx context.Context) error {
	if c.state.Idle() && c.state.PendingLocale == "" && c.state.PendingMessageID == 0 {
		return nil
	}

	if err := c.storage.Delete(ctx, c.key); err != nil {
		return err
	}
	c.state = models.ConversationState{Step: models.StepIdle}
	return nil
}

func (c *Conversation) save(ctx context.Context, next models.ConversationState) error {
	if err := c.storage.Set(ctx, c.key, next); err != nil {
		return err
	}
	c.state = next
	return nil
}

// Package fsm implements the locale selection conversation: a per user and
// chat state machine with the states idle and awaiting_locale, persisted in
// a pluggable storage.
package fsm

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/tg-lang-bot/models"
)

//go:generate mockgen -source=storage.go -destination=../mock/fsm_mock.go -package=mock

// Key identifies one conversation.
type Key struct {
	ChatID int64
	UserID int64
}

func (k Key) String() string {
	return fmt.Sprintf("%d:%d", k.ChatID, k.UserID)
}

// Storage persists conversation states. Get returns the zero (idle) state
// for unknown keys.
type Storage interface {
	Get(ctx context.Context, key Key) (models.ConversationState, error)
	Set(ctx context.Context, key Key, state models.ConversationState) error
	Delete(ctx context.Context, key Key) error
}

// MemoryStorage keeps states in process memory. It is used when no Redis
// address is configured and in tests.
type MemoryStorage struct {
	mu     sync.RWMutex
	states map[Key]models.ConversationState
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{states: make(map[Key]models.ConversationState)}
}

func (s *MemoryStorage) Get(_ context.Context, key Key) (models.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[key], nil
}

func (s *MemoryStorage) Set(_ context.Context, key Key, state models.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[key] = state
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, key)
	return nil
}

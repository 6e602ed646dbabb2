package fsm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/tg-lang-bot/internal/config"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/models"
	"github.com/redis/go-redis/v9"
)

// ErrStateStorage wraps every Redis failure of [RedisStorage].
var ErrStateStorage = errors.New("conversation state storage error")

// NewRedisClient connects to Redis and pings it.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisClient").Str("address", cfg.Address).Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrStateStorage, err)
	}
	log.Info().Str("func", "NewRedisClient").Str("address", cfg.Address).Msg("connected to redis successfully")

	return client, nil
}

// RedisStorage stores conversation states as JSON values. Every write
// refreshes the TTL so abandoned conversations expire.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, ttl: ttl}
}

func (s *RedisStorage) key(key Key) string {
	return fmt.Sprintf("fsm:%d:%d:state", key.ChatID, key.UserID)
}

func (s *RedisStorage) Get(ctx context.Context, key Key) (models.ConversationState, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.ConversationState{}, nil
	}
	if err != nil {
		return models.ConversationState{}, fmt.Errorf("%w: %w", ErrStateStorage, err)
	}

	var state models.ConversationState
	if err = json.Unmarshal(raw, &state); err != nil {
		return models.ConversationState{}, fmt.Errorf("%w: decoding state %s: %w", ErrStateStorage, key, err)
	}

	return state, nil
}

func (s *RedisStorage) Set(ctx context.Context, key Key, state models.ConversationState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: encoding state %s: %w", ErrStateStorage, key, err)
	}

	if err = s.client.Set(ctx, s.key(key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStateStorage, err)
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, key Key) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStateStorage, err)
	}
	return nil
}

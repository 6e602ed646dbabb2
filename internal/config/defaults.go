package config

import (
	"slices"
	"time"
)

const (
	DefaultLocale         = "ru"
	DefaultAPIEndpoint    = "https://api.telegram.org"
	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxConns       = 3
	DefaultAcquireTimeout = 10 * time.Second
	DefaultStateTTL       = 24 * time.Hour
	DefaultWebhookPath    = "/webhook"
	DefaultPollTimeout    = 60
	DefaultShards         = 4
	DefaultQueueSize      = 64
	DefaultEventTimeout   = 30 * time.Second
)

// applyDefaults fills every zero field that has a built-in default.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Bot.DefaultLocale == "" {
		cfg.Bot.DefaultLocale = DefaultLocale
	}
	if cfg.Bot.APIEndpoint == "" {
		cfg.Bot.APIEndpoint = DefaultAPIEndpoint
	}
	if cfg.Bot.RequestTimeout == 0 {
		cfg.Bot.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Storage.DB.MaxConns == 0 {
		cfg.Storage.DB.MaxConns = DefaultMaxConns
	}
	if cfg.Storage.DB.AcquireTimeout == 0 {
		cfg.Storage.DB.AcquireTimeout = DefaultAcquireTimeout
	}
	if cfg.Storage.Redis.StateTTL == 0 {
		cfg.Storage.Redis.StateTTL = DefaultStateTTL
	}
	if cfg.Server.WebhookPath == "" {
		cfg.Server.WebhookPath = DefaultWebhookPath
	}
	if cfg.Server.PollTimeout == 0 {
		cfg.Server.PollTimeout = DefaultPollTimeout
	}
	if cfg.Workers.Shards == 0 {
		cfg.Workers.Shards = DefaultShards
	}
	if cfg.Workers.QueueSize == 0 {
		cfg.Workers.QueueSize = DefaultQueueSize
	}
	if cfg.Workers.EventTimeout == 0 {
		cfg.Workers.EventTimeout = DefaultEventTimeout
	}
}

// IsAdmin reports whether userID is listed in the admin ids.
func (b Bot) IsAdmin(userID int64) bool {
	return slices.Contains(b.AdminIDs, userID)
}

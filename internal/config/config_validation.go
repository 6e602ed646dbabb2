// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the merged [StructuredConfig] can start the bot.
// It runs after defaults are applied.
func (cfg *StructuredConfig) validate() error {
	if cfg.Bot.Token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidBotConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database dsn is required", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.DB.MaxConns < 1 {
		return fmt.Errorf("%w: max conns must be positive", ErrInvalidStorageConfigs)
	}

	if cfg.Workers.Shards < 1 || cfg.Workers.QueueSize < 1 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Server.WebhookAddress != "" && cfg.Server.WebhookPath == "" {
		return fmt.Errorf("%w: webhook path is required", ErrInvalidServerConfigs)
	}

	return nil
}

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidBotConfigs indicates a missing bot token.
	ErrInvalidBotConfigs = errors.New("invalid bot configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates an incomplete webhook setup.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates a non-positive shard count or
	// queue size.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/tg-lang-bot/internal/config"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/migrations"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	defaultMaxConns       = 3
	defaultAcquireTimeout = 10 * time.Second
)

// DB is the PostgreSQL connection pool. The pool never hands out more than
// the configured number of connections; [DB.Acquire] waits for a free one
// up to the acquire timeout.
type DB struct {
	*sql.DB
	acquireTimeout time.Duration
	logger         *logger.Logger
}

// NewConnectPostgres opens the pool described by cfg and pings the server.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("%w: %w", ErrConnectingDatabase, err)
	}

	db := NewDB(conn, cfg, log)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnectingDatabase, err)
	}
	log.Info().Str("func", "NewConnectPostgres").
		Int("max_conns", db.Stats().MaxOpenConnections).
		Msg("connected to database successfully")

	return db, nil
}

// NewDB wraps an already opened *sql.DB and applies the pool limits of cfg.
func NewDB(conn *sql.DB, cfg config.DB, log *logger.Logger) *DB {
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	acquireTimeout := cfg.AcquireTimeout
	if acquireTimeout <= 0 {
		acquireTimeout = defaultAcquireTimeout
	}

	// setup connections
	conn.SetMaxOpenConns(maxConns)
	conn.SetMaxIdleConns(maxConns)

	return &DB{
		DB:             conn,
		acquireTimeout: acquireTimeout,
		logger:         log,
	}
}

// Acquire checks out one connection from the pool. The caller must Close it.
//
// If no connection is available before the acquire timeout elapses the
// error wraps [ErrPoolExhausted]. Cancellation of ctx itself is reported
// as [ErrAcquiringConnection].
func (db *DB) Acquire(ctx context.Context) (*sql.Conn, error) {
	acquireCtx, cancel := context.WithTimeout(ctx, db.acquireTimeout)
	defer cancel()

	conn, err := db.Conn(acquireCtx)
	if err == nil {
		return conn, nil
	}

	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		db.logger.Warn().Str("func", "*DB.Acquire").
			Dur("acquire_timeout", db.acquireTimeout).
			Int("in_use", db.Stats().InUse).
			Msg("connection pool exhausted")
		return nil, fmt.Errorf("%w: %w", ErrPoolExhausted, err)
	}

	return nil, fmt.Errorf("%w: %w", ErrAcquiringConnection, err)
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.MigrateContext(ctx, db.DB)
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
)

// ConnProvider checks out pooled connections. *store.DB implements it.
type ConnProvider interface {
	Acquire(ctx context.Context) (*sql.Conn, error)
}

type transactionStage struct {
	pool ConnProvider
}

// NewTransactionStage runs everything below it in one transaction on one
// pooled connection. The transaction is committed when the chain returns
// nil and rolled back on any error or panic. The connection always goes
// back to the pool.
func NewTransactionStage(pool ConnProvider) Stage {
	return &transactionStage{pool: pool}
}

func (s *transactionStage) Name() string { return "transaction" }

func (s *transactionStage) Wrap(next Handler) Handler {
	return func(ctx context.Context, scope *Scope) (err error) {
		if s.pool == nil {
			return fmt.Errorf("%w: connection pool is not provided", ErrConfiguration)
		}
		log := logger.FromContext(ctx)

		conn, err := s.pool.Acquire(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := conn.Close(); closeErr != nil {
				log.Err(closeErr).Str("func", "*transactionStage.Wrap").Msg("error releasing connection")
			}
		}()

		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("%w: %w", store.ErrBeginningTransaction, err)
		}

		committed := false
		defer func() {
			if committed {
				return
			}
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Err(rbErr).Str("func", "*transactionStage.Wrap").Msg("error rolling back transaction")
			}
		}()

		scope.Tx = tx
		defer func() { scope.Tx = nil }()

		if err = next(ctx, scope); err != nil {
			return err
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrCommitingTransaction, err)
		}
		committed = true

		return nil
	}
}

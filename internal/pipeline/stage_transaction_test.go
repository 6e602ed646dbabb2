package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errHandler = errors.New("handler failed")

func TestTransactionStage_Commit(t *testing.T) {
	db, mock := newTestDB(t)
	users := store.NewUserRepository(logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET is_alive").
		WithArgs(true, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	scope := &Scope{Event: messageEvent(42)}
	h := NewTransactionStage(db).Wrap(func(ctx context.Context, scope *Scope) error {
		require.NotNil(t, scope.Tx)
		return users.UpdateAliveStatus(ctx, scope.Tx, 42, true)
	})

	require.NoError(t, h(context.Background(), scope))
	assert.Nil(t, scope.Tx)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 0, db.Stats().InUse)
}

// TestTransactionStage_AllOrNothing verifies that writes made before a
// handler failure are rolled back together.
func TestTransactionStage_AllOrNothing(t *testing.T) {
	db, mock := newTestDB(t)
	users := store.NewUserRepository(logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET is_alive").
		WithArgs(true, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET language").
		WithArgs("en", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	h := NewTransactionStage(db).Wrap(func(ctx context.Context, scope *Scope) error {
		if err := users.UpdateAliveStatus(ctx, scope.Tx, 42, true); err != nil {
			return err
		}
		if err := users.UpdateLanguage(ctx, scope.Tx, 42, "en"); err != nil {
			return err
		}
		return errHandler
	})

	err := h(context.Background(), &Scope{Event: messageEvent(42)})

	assert.ErrorIs(t, err, errHandler)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 0, db.Stats().InUse)
}

func TestTransactionStage_StoreFailureRollsBack(t *testing.T) {
	db, mock := newTestDB(t)
	users := store.NewUserRepository(logger.Nop())
	dbErr := errors.New("connection reset by peer")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET banned").WillReturnError(dbErr)
	mock.ExpectRollback()

	h := NewTransactionStage(db).Wrap(func(ctx context.Context, scope *Scope) error {
		return users.UpdateBannedStatusByID(ctx, scope.Tx, 42, true)
	})

	err := h(context.Background(), &Scope{Event: messageEvent(42)})

	assert.ErrorIs(t, err, store.ErrExecutingStatement)
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionStage_PanicRollsBack(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	h := NewTransactionStage(db).Wrap(func(ctx context.Context, scope *Scope) error {
		panic("boom")
	})

	assert.Panics(t, func() { _ = h(context.Background(), &Scope{}) })
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 0, db.Stats().InUse)
}

func TestTransactionStage_CancelledEventRollsBack(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	h := NewTransactionStage(db).Wrap(func(ctx context.Context, scope *Scope) error {
		return context.Canceled
	})

	err := h(context.Background(), &Scope{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 0, db.Stats().InUse)
}

func TestTransactionStage_BeginFails(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	h := NewTransactionStage(db).Wrap(func(ctx context.Context, scope *Scope) error {
		called = true
		return nil
	})

	err := h(context.Background(), &Scope{})

	assert.ErrorIs(t, err, store.ErrBeginningTransaction)
	assert.False(t, called)
	assert.Equal(t, 0, db.Stats().InUse)
}

func TestTransactionStage_CommitFails(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	h := NewTransactionStage(db).Wrap(func(ctx context.Context, scope *Scope) error {
		return nil
	})

	err := h(context.Background(), &Scope{})

	assert.ErrorIs(t, err, store.ErrCommitingTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionStage_NoPool(t *testing.T) {
	called := false
	h := NewTransactionStage(nil).Wrap(func(ctx context.Context, scope *Scope) error {
		called = true
		return nil
	})

	err := h(context.Background(), &Scope{})

	assert.ErrorIs(t, err, ErrConfiguration)
	assert.False(t, called)
}

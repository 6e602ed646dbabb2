// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const topUsersSQL = "SELECT user_id, SUM(actions) AS total_actions FROM activity GROUP BY user_id ORDER BY total_actions DESC, user_id ASC LIMIT 5"

func TestTick(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewActivityRepository(logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(tickActivity)).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Tick(context.Background(), db, 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTick_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewActivityRepository(logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(tickActivity)).
		WillReturnError(errors.New("fk violation"))

	err = repo.Tick(context.Background(), db, 42)
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestTopUsers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewActivityRepository(logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(topUsersSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "total_actions"}).
			AddRow(42, 10).
			AddRow(7, 3).
			AddRow(9, 3))

	stats, err := repo.TopUsers(context.Background(), db, 5)

	require.NoError(t, err)
	assert.Equal(t, []models.ActivityStat{
		{UserID: 42, TotalActions: 10},
		{UserID: 7, TotalActions: 3},
		{UserID: 9, TotalActions: 3},
	}, stats)
}

func TestTopUsers_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewActivityRepository(logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(topUsersSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "total_actions"}))

	stats, err := repo.TopUsers(context.Background(), db, 5)

	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestTopUsers_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewActivityRepository(logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(topUsersSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "total_actions"}).AddRow("x", "y"))

	_, err = repo.TopUsers(context.Background(), db, 5)
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestBuildTopUsersQuery(t *testing.T) {
	query, args, err := buildTopUsersQuery(5)

	require.NoError(t, err)
	assert.Equal(t, topUsersSQL, query)
	assert.Empty(t, args)
}

func TestBuildGetUserByUsernameQuery(t *testing.T) {
	query, args, err := buildGetUserByUsernameQuery("john")

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, user_id, username, language, role, is_alive, banned, created_at FROM users "+
		"WHERE lower(username) = lower($1) ORDER BY id DESC LIMIT 2", query)
	assert.Equal(t, []any{"john"}, args)
}

func TestBuildUpdateBannedStatusByUsernameQuery(t *testing.T) {
	query, args, err := buildUpdateBannedStatusByUsernameQuery("john", true)

	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET banned = $1 WHERE user_id = "+
		"(SELECT user_id FROM users WHERE lower(username) = lower($2))", query)
	assert.Equal(t, []any{true, "john"}, args)
}

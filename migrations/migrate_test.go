// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// goose talks to the db itself; every statement fails
	mock.MatchExpectationsInOrder(false)

	err = Migrate(db)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "migration error"), err.Error())
}

func TestMigrate_NilDB(t *testing.T) {
	err := Migrate(nil)
	assert.True(t, errors.Is(err, ErrNilDB))
}

// TestEmbeddedSchema verifies that the schema creates both tables and the
// unique index backing the activity upsert.
func TestEmbeddedSchema(t *testing.T) {
	files, err := fs.Glob(embedMigrations, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	raw, err := fs.ReadFile(embedMigrations, files[0])
	require.NoError(t, err)
	schema := string(raw)

	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, schema, "user_id    BIGINT      NOT NULL UNIQUE")
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS activity")
	assert.Contains(t, schema, "ON activity (user_id, activity_date)")
	assert.Contains(t, schema, "-- +goose Down")
}

package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewUserRepository(logger.Nop()), mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns)
}

func TestEnsureUser_Inserted(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	user := models.NewUser(42, "john", "en", models.RoleUser)

	mock.ExpectQuery(regexp.QuoteMeta(ensureUser)).
		WithArgs(int64(42), "john", "en", "user", true, false).
		WillReturnRows(sqlmock.NewRows([]string{"inserted"}).AddRow(true))

	created, err := repo.EnsureUser(context.Background(), db, user)

	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestEnsureUser_Revived covers a user who blocked the bot and came back: the
// conflict update returns a row that was not inserted.
func TestEnsureUser_Revived(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(ensureUser)).
		WithArgs(int64(42), "john", "en", "user", true, false).
		WillReturnRows(sqlmock.NewRows([]string{"inserted"}).AddRow(false))

	created, err := repo.EnsureUser(context.Background(), db, models.NewUser(42, "john", "en", models.RoleUser))

	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestEnsureUser_KnownIsNoop verifies that an alive existing user is not an
// error and is reported as not created.
func TestEnsureUser_KnownIsNoop(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	user := models.NewUser(42, "", "", models.RoleAdmin)

	mock.ExpectQuery(regexp.QuoteMeta(ensureUser)).
		WithArgs(int64(42), nil, models.DefaultLanguage, "admin", true, false).
		WillReturnRows(sqlmock.NewRows([]string{"inserted"}))

	created, err := repo.EnsureUser(context.Background(), db, user)

	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureUser_DBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(ensureUser)).
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.EnsureUser(context.Background(), db, models.NewUser(1, "", "", ""))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.True(t, IsRetryable(err))
}

func TestGetUser_Found(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(getUser)).
		WithArgs(int64(42)).
		WillReturnRows(userRows().AddRow(7, 42, "john", "en", "admin", true, false, now))

	user, found, err := repo.GetUser(context.Background(), db, 42)

	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.User{
		ID: 7, UserID: 42, Username: "john", Language: "en",
		Role: models.RoleAdmin, IsAlive: true, CreatedAt: now,
	}, user)
}

func TestGetUser_NullUsername(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getUser)).
		WithArgs(int64(42)).
		WillReturnRows(userRows().AddRow(7, 42, nil, "ru", "user", false, true, time.Now()))

	user, found, err := repo.GetUser(context.Background(), db, 42)

	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, user.Username)
	assert.True(t, user.Banned)
	assert.False(t, user.IsAlive)
}

func TestGetUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getUser)).
		WithArgs(int64(42)).
		WillReturnRows(userRows())

	_, found, err := repo.GetUser(context.Background(), db, 42)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetUser_ScanError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getUser)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, found, err := repo.GetUser(context.Background(), db, 42)

	require.Error(t, err)
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestGetUserByUsername_Found(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE lower(username) = lower($1) ORDER BY id DESC LIMIT 2")).
		WithArgs("John").
		WillReturnRows(userRows().AddRow(7, 42, "john", "en", "user", true, false, time.Now()))

	user, found, err := repo.GetUserByUsername(context.Background(), db, "John")

	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(42), user.UserID)
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)

	mock.ExpectQuery("FROM users").
		WithArgs("ghost").
		WillReturnRows(userRows())

	_, found, err := repo.GetUserByUsername(context.Background(), db, "ghost")

	require.NoError(t, err)
	assert.False(t, found)
}

// TestGetUserByUsername_Ambiguous covers two accounts sharing a handle: the
// lookup must refuse to pick one.
func TestGetUserByUsername_Ambiguous(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE lower(username) = lower($1) ORDER BY id DESC LIMIT 2")).
		WithArgs("john").
		WillReturnRows(userRows().
			AddRow(8, 43, "John", "en", "user", true, false, time.Now()).
			AddRow(7, 42, "john", "ru", "user", true, false, time.Now()))

	user, found, err := repo.GetUserByUsername(context.Background(), db, "john")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousUsername)
	assert.True(t, found)
	assert.Zero(t, user.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByUsername_QueryError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)

	mock.ExpectQuery("FROM users").
		WithArgs("john").
		WillReturnError(pgError(pgerrcode.AdminShutdown))

	_, found, err := repo.GetUserByUsername(context.Background(), db, "john")

	require.Error(t, err)
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestUpdates(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		args   []driver.Value
		call   func(r UserRepository, q Querier) error
		result error
	}{
		{
			name:  "alive",
			query: updateAliveStatus,
			args:  []driver.Value{false, int64(42)},
			call: func(r UserRepository, q Querier) error {
				return r.UpdateAliveStatus(context.Background(), q, 42, false)
			},
		},
		{
			name:  "banned by id",
			query: updateBannedStatusByID,
			args:  []driver.Value{true, int64(42)},
			call: func(r UserRepository, q Querier) error {
				return r.UpdateBannedStatusByID(context.Background(), q, 42, true)
			},
		},
		{
			name:  "language",
			query: updateLanguage,
			args:  []driver.Value{"en", int64(42)},
			call: func(r UserRepository, q Querier) error {
				return r.UpdateLanguage(context.Background(), q, 42, "en")
			},
		},
		{
			name:   "failure is wrapped",
			query:  updateLanguage,
			args:   []driver.Value{"en", int64(42)},
			result: errors.New("boom"),
			call: func(r UserRepository, q Querier) error {
				return r.UpdateLanguage(context.Background(), q, 42, "en")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newTestUserRepo(t)

			exp := mock.ExpectExec(regexp.QuoteMeta(tt.query)).WithArgs(tt.args...)
			if tt.result != nil {
				exp.WillReturnError(tt.result)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := tt.call(repo, db)
			if tt.result != nil {
				assert.ErrorIs(t, err, ErrExecutingStatement)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetBannedStatusByID(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getBannedStatusByID)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"banned"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(getBannedStatusByID)).
		WithArgs(int64(43)).
		WillReturnRows(sqlmock.NewRows([]string{"banned"}))

	banned, found, err := repo.GetBannedStatusByID(context.Background(), db, 42)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, banned)

	banned, found, err = repo.GetBannedStatusByID(context.Background(), db, 43)
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, banned)
}

func TestGetBannedStatusByUsername(t *testing.T) {
	t.Run("single user", func(t *testing.T) {
		repo, mock, db := newTestUserRepo(t)

		mock.ExpectQuery("FROM users WHERE lower").
			WithArgs("john").
			WillReturnRows(userRows().AddRow(7, 42, "john", "en", "user", true, true, time.Now()))

		banned, found, err := repo.GetBannedStatusByUsername(context.Background(), db, "john")

		require.NoError(t, err)
		assert.True(t, found)
		assert.True(t, banned)
	})

	t.Run("shared handle", func(t *testing.T) {
		repo, mock, db := newTestUserRepo(t)

		mock.ExpectQuery("FROM users WHERE lower").
			WithArgs("john").
			WillReturnRows(userRows().
				AddRow(8, 43, "john", "en", "user", true, false, time.Now()).
				AddRow(7, 42, "JOHN", "en", "user", true, true, time.Now()))

		banned, _, err := repo.GetBannedStatusByUsername(context.Background(), db, "john")

		assert.ErrorIs(t, err, ErrAmbiguousUsername)
		assert.False(t, banned)
	})
}

func TestUpdateBannedStatusByUsername(t *testing.T) {
	const query = "UPDATE users SET banned = $1 WHERE user_id = (SELECT user_id FROM users WHERE lower(username) = lower($2))"

	tests := []struct {
		name      string
		affected  int64
		dbErr     error
		wantFound bool
		wantErr   error
	}{
		{name: "single user", affected: 1, wantFound: true},
		{name: "unknown handle", affected: 0, wantFound: false},
		{name: "shared handle", dbErr: pgError(pgerrcode.CardinalityViolation), wantFound: true, wantErr: ErrAmbiguousUsername},
		{name: "failure is wrapped", dbErr: pgError(pgerrcode.AdminShutdown), wantErr: ErrExecutingStatement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newTestUserRepo(t)

			exp := mock.ExpectExec(regexp.QuoteMeta(query)).WithArgs(true, "john")
			if tt.dbErr != nil {
				exp.WillReturnError(tt.dbErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			found, err := repo.UpdateBannedStatusByUsername(context.Background(), db, "john", true)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantFound, found)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetBannedStatusByID_QueryError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getBannedStatusByID)).
		WillReturnError(pgError(pgerrcode.SyntaxError))

	_, found, err := repo.GetBannedStatusByID(context.Background(), db, 42)

	require.Error(t, err)
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.False(t, IsRetryable(err))
}

func TestGetRole(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getRole)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("admin"))
	mock.ExpectQuery(regexp.QuoteMeta(getRole)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("superuser"))
	mock.ExpectQuery(regexp.QuoteMeta(getRole)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"role"}))

	role, found, err := repo.GetRole(context.Background(), db, 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.RoleAdmin, role)

	_, _, err = repo.GetRole(context.Background(), db, 2)
	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.ErrorIs(t, err, models.ErrUnknownRole)

	_, found, err = repo.GetRole(context.Background(), db, 3)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetLanguageAndAliveStatus(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getLanguage)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"language"}).AddRow("en"))
	mock.ExpectQuery(regexp.QuoteMeta(getAliveStatus)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"is_alive"}).AddRow(true))

	lang, found, err := repo.GetLanguage(context.Background(), db, 42)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "en", lang)

	alive, found, err := repo.GetAliveStatus(context.Background(), db, 42)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, alive)
}

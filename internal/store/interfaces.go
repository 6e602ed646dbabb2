package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/tg-lang-bot/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Querier is the subset of database/sql shared by *sql.DB, *sql.Conn and
// *sql.Tx. Repository methods take a Querier so that the caller decides
// which connection and transaction a statement runs on.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UserRepository reads and writes rows of the "users" table.
//
// None of the methods open a transaction. Lookups report a missing user
// through the found flag instead of an error.
type UserRepository interface {
	// EnsureUser inserts user unless a row with the same UserID exists. An
	// existing row keeps its values except is_alive, which is set to true.
	// created is true only for an insert.
	EnsureUser(ctx context.Context, q Querier, user models.User) (created bool, err error)

	GetUser(ctx context.Context, q Querier, userID int64) (user models.User, found bool, err error)
	GetUserByUsername(ctx context.Context, q Querier, username string) (user models.User, found bool, err error)

	UpdateAliveStatus(ctx context.Context, q Querier, userID int64, isAlive bool) error
	UpdateBannedStatusByID(ctx context.Context, q Querier, userID int64, banned bool) error
	// UpdateBannedStatusByUsername changes at most one user. A handle shared
	// by several users is an error wrapping [ErrAmbiguousUsername].
	UpdateBannedStatusByUsername(ctx context.Context, q Querier, username string, banned bool) (found bool, err error)
	UpdateLanguage(ctx context.Context, q Querier, userID int64, language string) error

	GetBannedStatusByID(ctx context.Context, q Querier, userID int64) (banned, found bool, err error)
	GetBannedStatusByUsername(ctx context.Context, q Querier, username string) (banned, found bool, err error)
	GetRole(ctx context.Context, q Querier, userID int64) (role models.Role, found bool, err error)
	GetLanguage(ctx context.Context, q Querier, userID int64) (language string, found bool, err error)
	GetAliveStatus(ctx context.Context, q Querier, userID int64) (isAlive, found bool, err error)
}

// ActivityRepository maintains the per-day activity counters.
type ActivityRepository interface {
	// Tick records one action of userID for the current date.
	Tick(ctx context.Context, q Querier, userID int64) error

	// TopUsers returns at most limit users ordered by total actions,
	// ties broken by ascending user id.
	TopUsers(ctx context.Context, q Querier, limit uint64) ([]models.ActivityStat, error)
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

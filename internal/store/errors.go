package store

import "errors"

// Connection and pool errors.
var (
	// ErrConnectingDatabase is returned when the pool cannot be opened or
	// the initial ping fails.
	ErrConnectingDatabase = errors.New("error connecting database")

	// ErrPoolExhausted is returned by [DB.Acquire] when no connection became
	// free within the configured acquire timeout. It is retryable.
	ErrPoolExhausted = errors.New("connection pool exhausted")

	// ErrAcquiringConnection is returned when checking out a connection
	// fails for any other reason.
	ErrAcquiringConnection = errors.New("failed to acquire connection")
)

// Low-level database operation errors. Repository methods wrap the driver
// error with one of these.
var (
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT or UPDATE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	ErrScanningRow  = errors.New("failed to scan row")
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnknownRole is returned when a stored role is outside the known set.
	ErrUnknownRole = errors.New("stored role is unknown")

	// ErrAmbiguousUsername is returned when more than one user carries the
	// requested handle.
	ErrAmbiguousUsername = errors.New("username matches more than one user")
)

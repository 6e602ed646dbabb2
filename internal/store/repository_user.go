// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] so
// failures are logged with the trace id of the event being processed.
type userRepository struct {
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository].
func NewUserRepository(logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		logger: logger,
	}
}

// EnsureUser inserts a user row, or marks an existing one alive again. The
// other columns of an existing row are left as is, so the values of the
// first call win.
func (r *userRepository) EnsureUser(ctx context.Context, q Querier, user models.User) (bool, error) {
	log := logger.FromContext(ctx)

	var inserted bool
	err := q.QueryRowContext(ctx, ensureUser,
		user.UserID, nullString(user.Username), user.Language, string(user.Role), user.IsAlive, user.Banned).Scan(&inserted)
	if errors.Is(err, sql.ErrNoRows) {
		// known and already alive: the conflict update touched nothing
		return false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.EnsureUser").Int64("user_id", user.UserID).
			Str("pg_code", postgresError(err)).Msg("error upserting user")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if inserted {
		log.Info().Int64("user_id", user.UserID).Str("language", user.Language).
			Str("role", user.Role.String()).Msg("user added")
	} else {
		log.Info().Int64("user_id", user.UserID).Msg("user is alive again")
	}

	return inserted, nil
}

// GetUser returns the user with the given platform id.
func (r *userRepository) GetUser(ctx context.Context, q Querier, userID int64) (models.User, bool, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(q.QueryRowContext(ctx, getUser, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetUser").Int64("user_id", userID).Msg("error getting user")
		return models.User{}, false, err
	}

	return user, true, nil
}

// GetUserByUsername returns the user with the given handle (without "@").
// Handles are not unique in storage; when more than one row matches, the
// returned error wraps [ErrAmbiguousUsername].
func (r *userRepository) GetUserByUsername(ctx context.Context, q Querier, username string) (models.User, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetUserByUsernameQuery(username)
	if err != nil {
		return models.User{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetUserByUsername").Str("username", username).Msg("error getting user")
		return models.User{}, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 2)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.GetUserByUsername").Str("username", username).Msg("error scanning user")
			return models.User{}, false, err
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return models.User{}, false, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	switch len(users) {
	case 0:
		return models.User{}, false, nil
	case 1:
		return users[0], true, nil
	default:
		log.Warn().Str("username", username).Msg("username matches more than one user")
		return models.User{}, true, fmt.Errorf("%w: %s", ErrAmbiguousUsername, username)
	}
}

func (r *userRepository) UpdateAliveStatus(ctx context.Context, q Querier, userID int64, isAlive bool) error {
	if err := r.exec(ctx, q, "*userRepository.UpdateAliveStatus", userID, updateAliveStatus, isAlive, userID); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug().Int64("user_id", userID).Bool("is_alive", isAlive).Msg("updated is_alive status")
	return nil
}

func (r *userRepository) UpdateBannedStatusByID(ctx context.Context, q Querier, userID int64, banned bool) error {
	if err := r.exec(ctx, q, "*userRepository.UpdateBannedStatusByID", userID, updateBannedStatusByID, banned, userID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info().Int64("user_id", userID).Bool("banned", banned).Msg("updated banned status")
	return nil
}

func (r *userRepository) UpdateBannedStatusByUsername(ctx context.Context, q Querier, username string, banned bool) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateBannedStatusByUsernameQuery(username, banned)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if postgresError(err) == pgerrcode.CardinalityViolation {
		log.Warn().Str("username", username).Msg("username matches more than one user")
		return true, fmt.Errorf("%w: %s", ErrAmbiguousUsername, username)
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateBannedStatusByUsername").Str("username", username).
			Str("pg_code", postgresError(err)).Msg("error updating banned status")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return false, nil
	}

	log.Info().Str("username", username).Bool("banned", banned).Msg("updated banned status")
	return true, nil
}

func (r *userRepository) UpdateLanguage(ctx context.Context, q Querier, userID int64, language string) error {
	if err := r.exec(ctx, q, "*userRepository.UpdateLanguage", userID, updateLanguage, language, userID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info().Int64("user_id", userID).Str("language", language).Msg("language set")
	return nil
}

func (r *userRepository) GetBannedStatusByID(ctx context.Context, q Querier, userID int64) (bool, bool, error) {
	var banned bool
	found, err := r.scalar(ctx, q, "*userRepository.GetBannedStatusByID", &banned, getBannedStatusByID, userID)
	return banned, found, err
}

// GetBannedStatusByUsername reads the ban flag of the only user with the
// given handle.
func (r *userRepository) GetBannedStatusByUsername(ctx context.Context, q Querier, username string) (bool, bool, error) {
	user, found, err := r.GetUserByUsername(ctx, q, username)
	if err != nil || !found {
		return false, found, err
	}
	return user.Banned, true, nil
}

// GetRole returns the stored role. A value outside the known roles is an
// error wrapping [ErrUnknownRole].
func (r *userRepository) GetRole(ctx context.Context, q Querier, userID int64) (models.Role, bool, error) {
	var raw string
	found, err := r.scalar(ctx, q, "*userRepository.GetRole", &raw, getRole, userID)
	if err != nil || !found {
		return "", found, err
	}

	role, err := models.ParseRole(raw)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.GetRole").Int64("user_id", userID).Msg("unknown role stored")
		return "", true, fmt.Errorf("%w: %w", ErrUnknownRole, err)
	}

	return role, true, nil
}

func (r *userRepository) GetLanguage(ctx context.Context, q Querier, userID int64) (string, bool, error) {
	var language string
	found, err := r.scalar(ctx, q, "*userRepository.GetLanguage", &language, getLanguage, userID)
	return language, found, err
}

func (r *userRepository) GetAliveStatus(ctx context.Context, q Querier, userID int64) (bool, bool, error) {
	var isAlive bool
	found, err := r.scalar(ctx, q, "*userRepository.GetAliveStatus", &isAlive, getAliveStatus, userID)
	return isAlive, found, err
}

func (r *userRepository) exec(ctx context.Context, q Querier, funcName string, userID int64, query string, args ...any) error {
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Int64("user_id", userID).
			Str("pg_code", postgresError(err)).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// scalar reads a single column of at most one row into dest.
func (r *userRepository) scalar(ctx context.Context, q Querier, funcName string, dest any, query string, args ...any) (bool, error) {
	err := q.QueryRowContext(ctx, query, args...).Scan(dest)
	if errors.Is(err, sql.ErrNoRows) {
		logger.FromContext(ctx).Debug().Str("func", funcName).Any("args", args).Msg("no user found")
		return false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Any("args", args).Msg("error executing query")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return true, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user     models.User
		username sql.NullString
		role     string
	)

	err := row.Scan(&user.ID, &user.UserID, &username, &user.Language, &role, &user.IsAlive, &user.Banned, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, err
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	user.Username = username.String
	user.Role = models.Role(role)

	return user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	ensureUser = `INSERT INTO users (user_id, username, language, role, is_alive, banned)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (user_id) DO UPDATE SET is_alive = TRUE
    WHERE users.is_alive = FALSE
    RETURNING (xmax = 0) AS inserted;`

	getUser = `SELECT id, user_id, username, language, role, is_alive, banned, created_at
    FROM users
    WHERE user_id = $1;`

	updateAliveStatus = `UPDATE users SET is_alive = $1 WHERE user_id = $2;`

	updateBannedStatusByID = `UPDATE users SET banned = $1 WHERE user_id = $2;`

	updateLanguage = `UPDATE users SET language = $1 WHERE user_id = $2;`

	getBannedStatusByID = `SELECT banned FROM users WHERE user_id = $1;`

	getRole = `SELECT role FROM users WHERE user_id = $1;`

	getLanguage = `SELECT language FROM users WHERE user_id = $1;`

	getAliveStatus = `SELECT is_alive FROM users WHERE user_id = $1;`

	tickActivity = `INSERT INTO activity (user_id) VALUES ($1)
    ON CONFLICT (user_id, activity_date)
    DO UPDATE SET actions = activity.actions + 1;`
)

var userColumns = []string{"id", "user_id", "username", "language", "role", "is_alive", "banned", "created_at"}

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// usernameEq matches usernames case-insensitively; platform handles are
// not case sensitive.
func usernameEq(username string) sq.Sqlizer {
	return sq.Expr("lower(username) = lower(?)", username)
}

// buildGetUserByUsernameQuery selects up to two users with the given handle,
// enough to tell a unique match from an ambiguous one.
func buildGetUserByUsernameQuery(username string) (string, []any, error) {
	return psql().
		Select(userColumns...).
		From("users").
		Where(usernameEq(username)).
		OrderBy("id DESC").
		Limit(2).
		ToSql()
}

// buildUpdateBannedStatusByUsernameQuery targets a single user. The scalar
// subquery makes PostgreSQL fail with cardinality_violation when the handle
// is shared.
func buildUpdateBannedStatusByUsernameQuery(username string, banned bool) (string, []any, error) {
	return psql().
		Update("users").
		Set("banned", banned).
		Where(sq.Expr("user_id = (SELECT user_id FROM users WHERE lower(username) = lower(?))", username)).
		ToSql()
}

// buildTopUsersQuery aggregates actions over all recorded days.
func buildTopUsersQuery(limit uint64) (string, []any, error) {
	return psql().
		Select("user_id", "SUM(actions) AS total_actions").
		From("activity").
		GroupBy("user_id").
		OrderBy("total_actions DESC", "user_id ASC").
		Limit(limit).
		ToSql()
}

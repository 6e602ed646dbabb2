package models

import "time"

// DefaultLanguage is stored for users whose platform reported no language.
const DefaultLanguage = "ru"

// User represents a bot user as persisted in the "users" table.
type User struct {
	// ID is the surrogate key assigned by the database.
	ID int64 `json:"id"`

	// UserID is the platform identity of the user. It is unique and never
	// changes once the row is created.
	UserID int64 `json:"user_id"`

	// Username is the optional platform handle without the leading "@".
	Username string `json:"username,omitempty"`

	// Language is the committed locale code used to pick translations.
	Language string `json:"language"`

	// Role is assigned once at creation time.
	Role Role `json:"role"`

	// IsAlive is false once the platform reports that the user blocked the bot.
	IsAlive bool `json:"is_alive"`

	// Banned marks a shadow-banned user. Only administrative actions change it.
	Banned bool `json:"banned"`

	// CreatedAt is set by the database on insert.
	CreatedAt time.Time `json:"created_at"`
}

// NewUser returns a user ready to be inserted: alive, not banned, with the
// language defaulted when the platform did not report one.
func NewUser(userID int64, username, language string, role Role) User {
	if language == "" {
		language = DefaultLanguage
	}
	if role == "" {
		role = RoleUser
	}

	return User{
		UserID:   userID,
		Username: username,
		Language: language,
		Role:     role,
		IsAlive:  true,
	}
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

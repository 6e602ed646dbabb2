package models

// ActivityStat is one row of the activity leaderboard: the total number of
// recorded actions of a user across all days.
type ActivityStat struct {
	UserID       int64 `json:"user_id"`
	TotalActions int64 `json:"total_actions"`
}

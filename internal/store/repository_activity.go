package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/models"
)

// activityRepository is the PostgreSQL-backed implementation of
// [ActivityRepository] over the "activity" table.
type activityRepository struct {
	logger *logger.Logger
}

func NewActivityRepository(logger *logger.Logger) ActivityRepository {
	logger.Debug().Msg("creating activity repository")
	return &activityRepository{
		logger: logger,
	}
}

// Tick upserts today's counter of userID. The conflict clause makes the
// increment atomic for concurrent ticks of the same user.
func (r *activityRepository) Tick(ctx context.Context, q Querier, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := q.ExecContext(ctx, tickActivity, userID); err != nil {
		log.Err(err).Str("func", "*activityRepository.Tick").Int64("user_id", userID).
			Str("pg_code", postgresError(err)).Msg("error updating activity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Debug().Int64("user_id", userID).Msg("user activity updated")
	return nil
}

// TopUsers returns the leaderboard of total actions.
func (r *activityRepository) TopUsers(ctx context.Context, q Querier, limit uint64) ([]models.ActivityStat, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildTopUsersQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*activityRepository.TopUsers").Msg("error fetching statistics")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	stats := make([]models.ActivityStat, 0, min(limit, 16))
	for rows.Next() {
		var stat models.ActivityStat
		if err = rows.Scan(&stat.UserID, &stat.TotalActions); err != nil {
			log.Err(err).Str("func", "*activityRepository.TopUsers").Msg("error scanning statistics row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		stats = append(stats, stat)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return stats, nil
}

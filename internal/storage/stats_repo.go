package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type StatsRepo struct {
	db DBTX
}

func NewStatsRepo(db DBTX) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) Get(ctx context.Context, userID string) (*StatsRow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, total_completed, current_streak, longest_streak, max_daily_tasks,
			early_completions, late_completions, early_bird_completions, weekend_completions,
			last_completion_date, daily_completions
		FROM user_stats
		WHERE user_id = ?
	`, userID)

	var (
		s         StatsRow
		lastDate  sql.NullString
		dailyJSON sql.NullString
	)
	if err := row.Scan(
		&s.UserID, &s.TotalCompleted, &s.CurrentStreak, &s.LongestStreak, &s.MaxDailyTasks,
		&s.EarlyCompletions, &s.LateCompletions, &s.EarlyBirdCompletions, &s.WeekendCompletions,
		&lastDate, &dailyJSON,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("stats get: %w", err)
	}

	s.LastCompletionDate = lastDate.String
	s.DailyCompletions = map[string]int{}
	if dailyJSON.Valid && dailyJSON.String != "" {
		if err := json.Unmarshal([]byte(dailyJSON.String), &s.DailyCompletions); err != nil {
			return nil, fmt.Errorf("stats unmarshal daily: %w", err)
		}
	}
	return &s, nil
}

// GetOrCreate returns the user's stats row, inserting a zeroed one on first
// use (stats are created lazily on the first completion path).
func (r *StatsRepo) GetOrCreate(ctx context.Context, userID string) (*StatsRow, error) {
	s, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO user_stats (user_id) VALUES (?)`, userID); err != nil {
		return nil, fmt.Errorf("stats insert: %w", err)
	}
	return r.Get(ctx, userID)
}

func (r *StatsRepo) Update(ctx context.Context, s *StatsRow) error {
	daily, err := json.Marshal(s.DailyCompletions)
	if err != nil {
		return fmt.Errorf("stats marshal daily: %w", err)
	}

	var lastDate *string
	if s.LastCompletionDate != "" {
		lastDate = &s.LastCompletionDate
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE user_stats
		SET total_completed = ?, current_streak = ?, longest_streak = ?, max_daily_tasks = ?,
			early_completions = ?, late_completions = ?, early_bird_completions = ?, weekend_completions = ?,
			last_completion_date = ?, daily_completions = ?
		WHERE user_id = ?
	`, s.TotalCompleted, s.CurrentStreak, s.LongestStreak, s.MaxDailyTasks,
		s.EarlyCompletions, s.LateCompletions, s.EarlyBirdCompletions, s.WeekendCompletions,
		lastDate, string(daily), s.UserID)
	if err != nil {
		return fmt.Errorf("stats update: %w", err)
	}
	return nil
}

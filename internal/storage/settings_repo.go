package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SettingsRepo struct {
	db DBTX
}

func NewSettingsRepo(db DBTX) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Get(ctx context.Context, userID string) (*Settings, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, roll_over_tasks, last_reset_date, last_active_time
		FROM user_settings
		WHERE user_id = ?
	`, userID)

	var s Settings
	var rollOver int
	var activeMillis int64
	if err := row.Scan(&s.UserID, &rollOver, &s.LastResetDate, &activeMillis); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("settings get: %w", err)
	}
	s.RollOverTasks = rollOver != 0
	s.LastActiveTime = time.UnixMilli(activeMillis)
	return &s, nil
}

// GetOrCreate returns the user's settings, inserting defaults on first use.
func (r *SettingsRepo) GetOrCreate(ctx context.Context, userID, today string, now time.Time) (*Settings, error) {
	s, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, roll_over_tasks, last_reset_date, last_active_time)
		VALUES (?, 0, ?, ?)
	`, userID, today, now.UnixMilli()); err != nil {
		return nil, fmt.Errorf("settings insert: %w", err)
	}
	return r.Get(ctx, userID)
}

func (r *SettingsRepo) Update(ctx context.Context, s *Settings) error {
	rollOver := 0
	if s.RollOverTasks {
		rollOver = 1
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE user_settings
		SET roll_over_tasks = ?, last_reset_date = ?, last_active_time = ?
		WHERE user_id = ?
	`, rollOver, s.LastResetDate, s.LastActiveTime.UnixMilli(), s.UserID)
	if err != nil {
		return fmt.Errorf("settings update: %w", err)
	}
	return nil
}

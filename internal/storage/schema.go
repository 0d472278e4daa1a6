package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS todos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			text TEXT NOT NULL,

			due_time INTEGER,
			is_completed INTEGER DEFAULT 0,
			completed_at INTEGER,

			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			created_date TEXT NOT NULL,
			display_order INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS user_stats (
			user_id TEXT PRIMARY KEY,
			total_completed INTEGER DEFAULT 0,
			current_streak INTEGER DEFAULT 0,
			longest_streak INTEGER DEFAULT 0,
			max_daily_tasks INTEGER DEFAULT 0,
			early_completions INTEGER DEFAULT 0,
			late_completions INTEGER DEFAULT 0,
			early_bird_completions INTEGER DEFAULT 0,
			weekend_completions INTEGER DEFAULT 0,
			last_completion_date TEXT,
			daily_completions TEXT
		);`,
		// One row per (user, achievement), written exactly once at unlock time.
		`CREATE TABLE IF NOT EXISTS achievement_unlocks (
			user_id TEXT NOT NULL,
			achievement_id TEXT NOT NULL,
			unlocked_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, achievement_id)
		);`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			message TEXT NOT NULL,
			is_read INTEGER DEFAULT 0,
			created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS user_settings (
			user_id TEXT PRIMARY KEY,
			roll_over_tasks INTEGER DEFAULT 0,
			last_reset_date TEXT NOT NULL,
			last_active_time INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_todos_user_completed ON todos(user_id, is_completed);`,
		`CREATE INDEX IF NOT EXISTS idx_todos_user_date ON todos(user_id, created_date);`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}

package storage

import (
	"context"
	"fmt"
	"time"
)

type UnlockRepo struct {
	db DBTX
}

func NewUnlockRepo(db DBTX) *UnlockRepo {
	return &UnlockRepo{db: db}
}

// Insert records an unlock. The primary key makes a duplicate insert fail
// rather than silently double-unlocking.
func (r *UnlockRepo) Insert(ctx context.Context, u Unlock) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO achievement_unlocks (user_id, achievement_id, unlocked_at)
		VALUES (?, ?, ?)
	`, u.UserID, u.AchievementID, u.UnlockedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("unlock insert: %w", err)
	}
	return nil
}

func (r *UnlockRepo) ListByUser(ctx context.Context, userID string) ([]Unlock, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, achievement_id, unlocked_at
		FROM achievement_unlocks
		WHERE user_id = ?
		ORDER BY unlocked_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("unlock list: %w", err)
	}
	defer rows.Close()

	var out []Unlock
	for rows.Next() {
		var u Unlock
		var ms int64
		if err := rows.Scan(&u.UserID, &u.AchievementID, &ms); err != nil {
			return nil, fmt.Errorf("unlock scan: %w", err)
		}
		u.UnlockedAt = time.UnixMilli(ms)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unlock rows: %w", err)
	}
	return out, nil
}

// Recent returns the newest unlocks first, at most n.
func (r *UnlockRepo) Recent(ctx context.Context, userID string, n int) ([]Unlock, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, achievement_id, unlocked_at
		FROM achievement_unlocks
		WHERE user_id = ?
		ORDER BY unlocked_at DESC
		LIMIT ?
	`, userID, n)
	if err != nil {
		return nil, fmt.Errorf("unlock recent: %w", err)
	}
	defer rows.Close()

	var out []Unlock
	for rows.Next() {
		var u Unlock
		var ms int64
		if err := rows.Scan(&u.UserID, &u.AchievementID, &ms); err != nil {
			return nil, fmt.Errorf("unlock recent scan: %w", err)
		}
		u.UnlockedAt = time.UnixMilli(ms)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unlock recent rows: %w", err)
	}
	return out, nil
}

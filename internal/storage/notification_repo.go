package storage

import (
	"context"
	"fmt"
	"time"
)

type NotificationRepo struct {
	db DBTX
}

func NewNotificationRepo(db DBTX) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) Insert(ctx context.Context, userID, message string, createdAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (user_id, message, is_read, created_at)
		VALUES (?, ?, 0, ?)
	`, userID, message, createdAt.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("notification insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("notification last insert id: %w", err)
	}
	return id, nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string) ([]Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, message, is_read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("notification list: %w", err)
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		var isRead int
		var ms int64
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &isRead, &ms); err != nil {
			return nil, fmt.Errorf("notification scan: %w", err)
		}
		n.IsRead = isRead != 0
		n.CreatedAt = time.UnixMilli(ms)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("notification rows: %w", err)
	}
	return out, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("notification mark read: %w", err)
	}
	return nil
}

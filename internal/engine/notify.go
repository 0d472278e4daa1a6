package engine

import (
	"context"
	"fmt"
	"time"

	"tally/internal/storage"
)

// inactivityWindow is how long a user can be idle before the pending-task
// sweep stops nudging them.
const inactivityWindow = 3 * 24 * time.Hour

// SweepPending inserts a pending-task reminder for every user with
// incomplete todos, skipping users idle past the inactivity window. Returns
// the number of notifications written. Invoked hourly by the notify daemon.
func (s *Service) SweepPending(ctx context.Context) (int, error) {
	counts, err := s.todos.PendingCounts(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	today := DayOf(now)
	sent := 0
	for userID, pending := range counts {
		if pending == 0 {
			continue
		}
		set, err := s.settings.GetOrCreate(ctx, userID, today, now)
		if err != nil {
			return sent, err
		}
		if now.Sub(set.LastActiveTime) > inactivityWindow {
			continue
		}

		msg := fmt.Sprintf("You have %d pending tasks. Stay productive!", pending)
		if _, err := s.notifications.Insert(ctx, userID, msg, now); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

func (s *Service) Notifications(ctx context.Context) ([]storage.Notification, error) {
	return s.notifications.ListByUser(ctx, storage.MainUserKey)
}

func (s *Service) MarkNotificationRead(ctx context.Context, id int64) error {
	return s.notifications.MarkRead(ctx, id)
}

package engine

import (
	"context"
	"database/sql"
	"fmt"

	"tally/internal/storage"
)

type CompleteResult struct {
	TodoID        int64
	WasEarly      bool
	Stats         Stats
	NewlyUnlocked []Achievement
}

// CompleteTodo marks a todo done and folds the completion into the user's
// ledger. The stats update, unlock records and unlock notifications are
// written as one transaction so two racing completions cannot double-count a
// streak or double-unlock an achievement.
func (s *Service) CompleteTodo(ctx context.Context, id int64) (*CompleteResult, error) {
	todo, err := s.todos.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, fmt.Errorf("todo %d not found", id)
	}
	if todo.IsCompleted {
		return nil, fmt.Errorf("todo %d is already completed", id)
	}

	now := s.now()
	ev := CompletionEvent{
		Hour:     now.Hour(),
		WasEarly: todo.DueTime != nil && now.Before(*todo.DueTime),
		Day:      DayOf(now),
	}

	var result CompleteResult
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		todos := storage.NewTodoRepo(tx)
		stats := storage.NewStatsRepo(tx)
		unlocks := storage.NewUnlockRepo(tx)
		notifications := storage.NewNotificationRepo(tx)

		row, err := stats.GetOrCreate(ctx, todo.UserID)
		if err != nil {
			return err
		}

		updated, err := ApplyCompletion(statsFromRow(row), ev)
		if err != nil {
			return err
		}

		existing, err := unlocks.ListByUser(ctx, todo.UserID)
		if err != nil {
			return err
		}
		alreadyUnlocked := make(map[string]bool, len(existing))
		for _, u := range existing {
			alreadyUnlocked[u.AchievementID] = true
		}
		newly := EvaluateUnlocks(updated, alreadyUnlocked)

		if err := todos.SetCompleted(ctx, id, &now); err != nil {
			return err
		}
		if err := stats.Update(ctx, rowFromStats(todo.UserID, updated)); err != nil {
			return err
		}
		for _, a := range newly {
			if err := unlocks.Insert(ctx, storage.Unlock{
				UserID:        todo.UserID,
				AchievementID: a.ID,
				UnlockedAt:    now,
			}); err != nil {
				return err
			}
			msg := fmt.Sprintf("Achievement unlocked: %s %s", a.Icon, a.Title)
			if _, err := notifications.Insert(ctx, todo.UserID, msg, now); err != nil {
				return err
			}
		}

		result = CompleteResult{TodoID: id, WasEarly: ev.WasEarly, Stats: updated, NewlyUnlocked: newly}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.touchActivity(ctx, todo.UserID); err != nil {
		return nil, err
	}
	return &result, nil
}

// UncompleteTodo reverts a completion. Ledger counters and unlocks stay as
// they are: an unlock is terminal, and streak history is not rewritten.
func (s *Service) UncompleteTodo(ctx context.Context, id int64) error {
	todo, err := s.todos.Get(ctx, id)
	if err != nil {
		return err
	}
	if todo == nil {
		return fmt.Errorf("todo %d not found", id)
	}
	if !todo.IsCompleted {
		return fmt.Errorf("todo %d is not completed", id)
	}
	return s.todos.SetCompleted(ctx, id, nil)
}

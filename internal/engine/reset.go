package engine

import (
	"context"

	"tally/internal/storage"
)

// PastTodos returns incomplete todos left over from earlier days, the set
// the daily reset offers to carry over.
func (s *Service) PastTodos(ctx context.Context) ([]storage.Todo, error) {
	return s.todos.ListPastIncomplete(ctx, storage.MainUserKey, DayOf(s.now()))
}

// CarryOver moves the given todos onto today.
func (s *Service) CarryOver(ctx context.Context, ids []int64) error {
	today := DayOf(s.now())
	for _, id := range ids {
		if err := s.todos.UpdateCreatedDate(ctx, id, today); err != nil {
			return err
		}
	}
	return nil
}

// MaybeDailyReset runs once per calendar day: with roll-over enabled it
// carries every leftover todo onto today, otherwise leftovers stay under the
// past filter until carried over explicitly.
func (s *Service) MaybeDailyReset(ctx context.Context) (carried int, err error) {
	now := s.now()
	today := DayOf(now)

	set, err := s.settings.GetOrCreate(ctx, storage.MainUserKey, today, now)
	if err != nil {
		return 0, err
	}
	if set.LastResetDate == today {
		return 0, nil
	}

	if set.RollOverTasks {
		past, err := s.PastTodos(ctx)
		if err != nil {
			return 0, err
		}
		ids := make([]int64, 0, len(past))
		for _, t := range past {
			ids = append(ids, t.ID)
		}
		if err := s.CarryOver(ctx, ids); err != nil {
			return 0, err
		}
		carried = len(ids)
	}

	set.LastResetDate = today
	if err := s.settings.Update(ctx, set); err != nil {
		return 0, err
	}
	return carried, nil
}

func (s *Service) Settings(ctx context.Context) (*storage.Settings, error) {
	now := s.now()
	return s.settings.GetOrCreate(ctx, storage.MainUserKey, DayOf(now), now)
}

func (s *Service) SetRollOver(ctx context.Context, enabled bool) error {
	set, err := s.Settings(ctx)
	if err != nil {
		return err
	}
	set.RollOverTasks = enabled
	return s.settings.Update(ctx, set)
}

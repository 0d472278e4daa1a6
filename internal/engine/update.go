package engine

import (
	"context"
	"fmt"
	"time"
)

func (s *Service) UpdateText(ctx context.Context, id int64, text string) error {
	t, err := normalizeText(text)
	if err != nil {
		return err
	}
	todo, err := s.todos.Get(ctx, id)
	if err != nil {
		return err
	}
	if todo == nil {
		return fmt.Errorf("todo %d not found", id)
	}
	return s.todos.UpdateText(ctx, id, t)
}

// UpdateDueTime resolves a temporal phrase ("tomorrow 9am", "in 2 hours")
// and sets it as the todo's due time.
func (s *Service) UpdateDueTime(ctx context.Context, id int64, phrase string) (time.Time, error) {
	todo, err := s.todos.Get(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	if todo == nil {
		return time.Time{}, fmt.Errorf("todo %d not found", id)
	}

	parsed := s.extractor.Extract(phrase, s.now())
	if parsed.DueTime == nil {
		return time.Time{}, fmt.Errorf("no time found in %q", phrase)
	}
	if err := s.todos.UpdateDueTime(ctx, id, parsed.DueTime); err != nil {
		return time.Time{}, err
	}
	return *parsed.DueTime, nil
}

// snoozeStep is how far a snooze pushes the due time.
const snoozeStep = 30 * time.Minute

// SnoozeTodo pushes the due time back by snoozeStep, never past the end of
// the current day.
func (s *Service) SnoozeTodo(ctx context.Context, id int64) (time.Time, error) {
	todo, err := s.todos.Get(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	if todo == nil {
		return time.Time{}, fmt.Errorf("todo %d not found", id)
	}
	if todo.DueTime == nil {
		return time.Time{}, fmt.Errorf("todo %d has no due time to snooze", id)
	}

	next := todo.DueTime.Add(snoozeStep)
	if eod := EndOfDay(s.now()); next.After(eod) {
		next = eod
	}
	if err := s.todos.UpdateDueTime(ctx, id, &next); err != nil {
		return time.Time{}, err
	}
	return next, nil
}

func (s *Service) RemoveTodo(ctx context.Context, id int64) error {
	todo, err := s.todos.Get(ctx, id)
	if err != nil {
		return err
	}
	if todo == nil {
		return fmt.Errorf("todo %d not found", id)
	}
	return s.todos.Delete(ctx, id)
}

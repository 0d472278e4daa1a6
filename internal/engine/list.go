package engine

import (
	"context"
	"sort"

	"tally/internal/storage"
)

// TodoView is a todo with its overdue status computed against now.
type TodoView struct {
	storage.Todo
	IsOverdue bool
}

// ListTodos returns the user's todos under the given filter and sort.
// Overdue status is derived on the fly, never stored.
func (s *Service) ListTodos(ctx context.Context, filter Filter, sortBy SortMode) ([]TodoView, error) {
	todos, err := s.todos.ListByUser(ctx, storage.MainUserKey)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := DayOf(now)

	views := make([]TodoView, 0, len(todos))
	for _, t := range todos {
		views = append(views, TodoView{
			Todo:      t,
			IsOverdue: !t.IsCompleted && t.DueTime != nil && t.DueTime.Before(now),
		})
	}

	filtered := views[:0]
	for _, v := range views {
		if matchesFilter(v, filter, today) {
			filtered = append(filtered, v)
		}
	}
	views = filtered

	switch sortBy {
	case SortByCreated:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		})
	case SortManual:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].DisplayOrder < views[j].DisplayOrder
		})
	default: // SortByDue: undated last, ties by insertion order
		sort.SliceStable(views, func(i, j int) bool {
			a, b := views[i], views[j]
			if a.DueTime == nil && b.DueTime == nil {
				return a.ID < b.ID
			}
			if a.DueTime == nil {
				return false
			}
			if b.DueTime == nil {
				return true
			}
			return a.DueTime.Before(*b.DueTime)
		})
	}

	return views, nil
}

func matchesFilter(v TodoView, filter Filter, today string) bool {
	switch filter {
	case FilterToday:
		return v.CreatedDate == today || (v.DueTime != nil && DayOf(*v.DueTime) == today)
	case FilterOverdue:
		return v.IsOverdue
	case FilterCompleted:
		return v.IsCompleted
	case FilterUnscheduled:
		return v.DueTime == nil
	case FilterPast:
		return v.CreatedDate < today && !v.IsCompleted
	default:
		// "all" still hides stale incomplete items from earlier days unless
		// they are scheduled; those live under the past filter.
		return v.CreatedDate == today || v.IsCompleted || v.DueTime != nil
	}
}

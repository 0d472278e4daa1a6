package engine

import (
	"context"
	"time"

	"tally/internal/storage"
)

// UserStats returns the user's ledger, zero-valued before any completion.
func (s *Service) UserStats(ctx context.Context) (Stats, error) {
	row, err := s.stats.Get(ctx, storage.MainUserKey)
	if err != nil {
		return Stats{}, err
	}
	return statsFromRow(row), nil
}

// AchievementViews joins the full catalog with unlock state and progress.
func (s *Service) AchievementViews(ctx context.Context) ([]AchievementView, error) {
	st, err := s.UserStats(ctx)
	if err != nil {
		return nil, err
	}
	unlocks, err := s.unlocks.ListByUser(ctx, storage.MainUserKey)
	if err != nil {
		return nil, err
	}
	unlockedAt := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.AchievementID] = u.UnlockedAt
	}
	return BuildViews(st, unlockedAt), nil
}

// RecentUnlocks returns up to n most recent unlocks, newest first.
func (s *Service) RecentUnlocks(ctx context.Context, n int) ([]AchievementView, error) {
	views, err := s.AchievementViews(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]AchievementView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	unlocks, err := s.unlocks.Recent(ctx, storage.MainUserKey, n)
	if err != nil {
		return nil, err
	}
	out := make([]AchievementView, 0, len(unlocks))
	for _, u := range unlocks {
		if v, ok := byID[u.AchievementID]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

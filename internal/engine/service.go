package engine

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"tally/internal/storage"
)

type Service struct {
	db        *sql.DB
	now       func() time.Time
	extractor *Extractor

	todos         *storage.TodoRepo
	stats         *storage.StatsRepo
	unlocks       *storage.UnlockRepo
	notifications *storage.NotificationRepo
	settings      *storage.SettingsRepo
}

func NewService(db *sql.DB) *Service {
	return NewServiceWithClock(db, time.Now)
}

// NewServiceWithClock pins the service's wall clock. Tests use this to make
// relative-phrase resolution and day bookkeeping deterministic.
func NewServiceWithClock(db *sql.DB, now func() time.Time) *Service {
	return &Service{
		db:            db,
		now:           now,
		extractor:     NewExtractor(),
		todos:         storage.NewTodoRepo(db),
		stats:         storage.NewStatsRepo(db),
		unlocks:       storage.NewUnlockRepo(db),
		notifications: storage.NewNotificationRepo(db),
		settings:      storage.NewSettingsRepo(db),
	}
}

func (s *Service) TodoRepo() *storage.TodoRepo                 { return s.todos }
func (s *Service) StatsRepo() *storage.StatsRepo               { return s.stats }
func (s *Service) UnlockRepo() *storage.UnlockRepo             { return s.unlocks }
func (s *Service) NotificationRepo() *storage.NotificationRepo { return s.notifications }
func (s *Service) SettingsRepo() *storage.SettingsRepo         { return s.settings }

func normalizeText(text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", errors.New("task text is required")
	}
	return t, nil
}

func statsFromRow(row *storage.StatsRow) Stats {
	if row == nil {
		return Stats{DailyCompletions: map[string]int{}}
	}
	daily := row.DailyCompletions
	if daily == nil {
		daily = map[string]int{}
	}
	return Stats{
		TotalCompleted:       row.TotalCompleted,
		CurrentStreak:        row.CurrentStreak,
		LongestStreak:        row.LongestStreak,
		MaxDailyTasks:        row.MaxDailyTasks,
		EarlyCompletions:     row.EarlyCompletions,
		LateCompletions:      row.LateCompletions,
		EarlyBirdCompletions: row.EarlyBirdCompletions,
		WeekendCompletions:   row.WeekendCompletions,
		LastCompletionDate:   row.LastCompletionDate,
		DailyCompletions:     daily,
	}
}

func rowFromStats(userID string, st Stats) *storage.StatsRow {
	return &storage.StatsRow{
		UserID:               userID,
		TotalCompleted:       st.TotalCompleted,
		CurrentStreak:        st.CurrentStreak,
		LongestStreak:        st.LongestStreak,
		MaxDailyTasks:        st.MaxDailyTasks,
		EarlyCompletions:     st.EarlyCompletions,
		LateCompletions:      st.LateCompletions,
		EarlyBirdCompletions: st.EarlyBirdCompletions,
		WeekendCompletions:   st.WeekendCompletions,
		LastCompletionDate:   st.LastCompletionDate,
		DailyCompletions:     st.DailyCompletions,
	}
}

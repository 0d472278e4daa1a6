package storage

import "time"

// MainUserKey identifies the single local user. The schema stays user-keyed
// so unlock records and stats survive a future multi-profile migration.
const MainUserKey = "main"

type Todo struct {
	ID           int64
	UserID       string
	Text         string
	DueTime      *time.Time
	IsCompleted  bool
	CompletedAt  *time.Time
	CreatedAt    time.Time
	CreatedDate  string // YYYY-MM-DD, drives the daily reset
	DisplayOrder int64
}

type StatsRow struct {
	UserID               string
	TotalCompleted       int
	CurrentStreak        int
	LongestStreak        int
	MaxDailyTasks        int
	EarlyCompletions     int
	LateCompletions      int
	EarlyBirdCompletions int
	WeekendCompletions   int
	LastCompletionDate   string // empty before first completion
	DailyCompletions     map[string]int
}

type Unlock struct {
	UserID        string
	AchievementID string
	UnlockedAt    time.Time
}

type Notification struct {
	ID        int64
	UserID    string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

type Settings struct {
	UserID         string
	RollOverTasks  bool
	LastResetDate  string
	LastActiveTime time.Time
}

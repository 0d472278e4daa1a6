package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestStatsRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	repo := NewStatsRepo(db)

	row, err := repo.GetOrCreate(ctx, MainUserKey)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if row.TotalCompleted != 0 || row.LastCompletionDate != "" {
		t.Fatalf("fresh row = %+v, want zero values", row)
	}

	row.TotalCompleted = 3
	row.CurrentStreak = 2
	row.LongestStreak = 2
	row.MaxDailyTasks = 2
	row.LastCompletionDate = "2024-01-02"
	row.DailyCompletions = map[string]int{"2024-01-01": 1, "2024-01-02": 2}
	if err := repo.Update(ctx, row); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.Get(ctx, MainUserKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.TotalCompleted != 3 || got.LastCompletionDate != "2024-01-02" {
		t.Fatalf("got = %+v", got)
	}
	if got.DailyCompletions["2024-01-01"] != 1 || got.DailyCompletions["2024-01-02"] != 2 {
		t.Fatalf("daily = %+v", got.DailyCompletions)
	}
}

func TestUnlockDuplicateInsertFails(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	repo := NewUnlockRepo(db)
	u := Unlock{UserID: MainUserKey, AchievementID: "first_task", UnlockedAt: time.UnixMilli(1704103200000)}
	if err := repo.Insert(ctx, u); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Insert(ctx, u); err == nil {
		t.Fatal("expected primary key violation on duplicate unlock")
	}
}

package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tally/internal/storage"
)

// newTestService opens a throwaway database and pins the service clock to
// *now, which tests advance to simulate passing days.
func newTestService(t *testing.T, start time.Time) (*Service, *time.Time) {
	t.Helper()

	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	now := start
	svc := NewServiceWithClock(db, func() time.Time { return now })
	return svc, &now
}

func TestAddTodoExtractsDue(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))

	res, err := svc.AddTodo(ctx, "Submit report at 3pm", false)
	if err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	if res.Text != "Submit report" {
		t.Fatalf("Text = %q, want %q", res.Text, "Submit report")
	}
	if res.DueTime == nil || res.DueTime.Hour() != 15 {
		t.Fatalf("DueTime = %v, want 3pm today", res.DueTime)
	}

	stored, err := svc.TodoRepo().Get(ctx, res.TodoID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored == nil {
		t.Fatal("todo not persisted")
	}
	if stored.Text != "Submit report" || stored.CreatedDate != "2024-01-01" {
		t.Fatalf("stored = %+v", stored)
	}
	if stored.DueTime == nil || !stored.DueTime.Equal(*res.DueTime) {
		t.Fatalf("stored due = %v, want %v", stored.DueTime, res.DueTime)
	}
}

func TestAddTodoLiteral(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))

	res, err := svc.AddTodo(ctx, "pay rent tomorrow", true)
	if err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	if res.Text != "pay rent tomorrow" {
		t.Fatalf("Text = %q, want input verbatim", res.Text)
	}
	if res.DueTime != nil {
		t.Fatalf("DueTime = %v, want nil in literal mode", res.DueTime)
	}
}

func TestAddTodoRejectsEmptyText(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))

	if _, err := svc.AddTodo(ctx, "   ", false); err == nil {
		t.Fatal("expected error for blank input")
	}
}

func TestCompleteTodoPersistsLedgerAndUnlocks(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC))

	added, err := svc.AddTodo(ctx, "Write tests", true)
	if err != nil {
		t.Fatalf("AddTodo: %v", err)
	}

	res, err := svc.CompleteTodo(ctx, added.TodoID)
	if err != nil {
		t.Fatalf("CompleteTodo: %v", err)
	}
	if res.Stats.TotalCompleted != 1 || res.Stats.CurrentStreak != 1 {
		t.Fatalf("stats = %+v, want total 1, streak 1", res.Stats)
	}
	if len(res.NewlyUnlocked) != 1 || res.NewlyUnlocked[0].ID != "first_task" {
		t.Fatalf("newly = %v, want [first_task]", ids(res.NewlyUnlocked))
	}

	todo, err := svc.TodoRepo().Get(ctx, added.TodoID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !todo.IsCompleted || todo.CompletedAt == nil {
		t.Fatalf("todo = %+v, want completed with timestamp", todo)
	}

	row, err := svc.StatsRepo().Get(ctx, storage.MainUserKey)
	if err != nil {
		t.Fatalf("stats get: %v", err)
	}
	if row == nil || row.TotalCompleted != 1 || row.DailyCompletions["2024-01-01"] != 1 {
		t.Fatalf("stats row = %+v", row)
	}
	if row.LastCompletionDate != "2024-01-01" {
		t.Fatalf("LastCompletionDate = %q", row.LastCompletionDate)
	}

	unlocks, err := svc.UnlockRepo().ListByUser(ctx, storage.MainUserKey)
	if err != nil {
		t.Fatalf("unlocks: %v", err)
	}
	if len(unlocks) != 1 || unlocks[0].AchievementID != "first_task" {
		t.Fatalf("unlocks = %+v, want one first_task record", unlocks)
	}

	notes, err := svc.Notifications(ctx)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if len(notes) != 1 || notes[0].Message != "Achievement unlocked: 🥇 First Task Done" {
		t.Fatalf("notifications = %+v", notes)
	}
}

func TestCompleteTodoTwiceErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC))

	added, err := svc.AddTodo(ctx, "Write tests", true)
	if err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	if _, err := svc.CompleteTodo(ctx, added.TodoID); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if _, err := svc.CompleteTodo(ctx, added.TodoID); err == nil {
		t.Fatal("expected error on double completion")
	}
}

func TestCompleteBeforeDueUnlocksBeatTheClock(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, start)

	due := start.Add(2 * time.Hour)
	id, err := svc.TodoRepo().Insert(ctx, storage.TodoInsert{
		UserID:       storage.MainUserKey,
		Text:         "Ship release",
		DueTime:      &due,
		CreatedDate:  DayOf(start),
		DisplayOrder: start.UnixMilli(),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	res, err := svc.CompleteTodo(ctx, id)
	if err != nil {
		t.Fatalf("CompleteTodo: %v", err)
	}
	if !res.WasEarly {
		t.Fatal("WasEarly = false, want true for pre-due completion")
	}
	if res.Stats.EarlyCompletions != 1 {
		t.Fatalf("EarlyCompletions = %d, want 1", res.Stats.EarlyCompletions)
	}

	got := ids(res.NewlyUnlocked)
	want := []string{"first_task", "beat_the_clock"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("newly = %v, want %v", got, want)
	}
}

func TestCompleteTouchesOwnersActivity(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, start)

	id, err := svc.TodoRepo().Insert(ctx, storage.TodoInsert{
		UserID:       "guest",
		Text:         "Visiting task",
		CreatedDate:  DayOf(start),
		DisplayOrder: start.UnixMilli(),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := svc.CompleteTodo(ctx, id); err != nil {
		t.Fatalf("CompleteTodo: %v", err)
	}

	// Activity lands on the todo's owner, not the default user.
	set, err := svc.SettingsRepo().Get(ctx, "guest")
	if err != nil {
		t.Fatalf("settings get: %v", err)
	}
	if set == nil || !set.LastActiveTime.Equal(start) {
		t.Fatalf("guest settings = %+v, want active at %v", set, start)
	}

	main, err := svc.SettingsRepo().Get(ctx, storage.MainUserKey)
	if err != nil {
		t.Fatalf("settings get main: %v", err)
	}
	if main != nil {
		t.Fatalf("main settings = %+v, want none created", main)
	}
}

func TestUncompleteKeepsLedger(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC))

	added, err := svc.AddTodo(ctx, "Write tests", true)
	if err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	if _, err := svc.CompleteTodo(ctx, added.TodoID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := svc.UncompleteTodo(ctx, added.TodoID); err != nil {
		t.Fatalf("uncomplete: %v", err)
	}

	todo, err := svc.TodoRepo().Get(ctx, added.TodoID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if todo.IsCompleted || todo.CompletedAt != nil {
		t.Fatalf("todo = %+v, want incomplete again", todo)
	}

	// Counters and unlocks are not rewound.
	row, err := svc.StatsRepo().Get(ctx, storage.MainUserKey)
	if err != nil {
		t.Fatalf("stats get: %v", err)
	}
	if row.TotalCompleted != 1 {
		t.Fatalf("TotalCompleted = %d, want 1 preserved", row.TotalCompleted)
	}
	unlocks, err := svc.UnlockRepo().ListByUser(ctx, storage.MainUserKey)
	if err != nil {
		t.Fatalf("unlocks: %v", err)
	}
	if len(unlocks) != 1 {
		t.Fatalf("unlocks = %+v, want first_task preserved", unlocks)
	}

	if err := svc.UncompleteTodo(ctx, added.TodoID); err == nil {
		t.Fatal("expected error uncompleting an incomplete todo")
	}
}

func TestUpdateDueTime(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))

	added, err := svc.AddTodo(ctx, "Water plants", true)
	if err != nil {
		t.Fatalf("AddTodo: %v", err)
	}

	if _, err := svc.UpdateDueTime(ctx, added.TodoID, "whenever"); err == nil {
		t.Fatal("expected error for phrase without a time")
	}

	due, err := svc.UpdateDueTime(ctx, added.TodoID, "tomorrow at 9am")
	if err != nil {
		t.Fatalf("UpdateDueTime: %v", err)
	}
	if DayOf(due) != "2024-01-02" || due.Hour() != 9 {
		t.Fatalf("due = %v, want tomorrow 9am", due)
	}

	stored, err := svc.TodoRepo().Get(ctx, added.TodoID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.DueTime == nil || !stored.DueTime.Equal(due) {
		t.Fatalf("stored due = %v, want %v", stored.DueTime, due)
	}
}

func TestSnoozeTodo(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, start)

	due := start.Add(10 * time.Minute)
	id, err := svc.TodoRepo().Insert(ctx, storage.TodoInsert{
		UserID:       storage.MainUserKey,
		Text:         "Stand-up notes",
		DueTime:      &due,
		CreatedDate:  DayOf(start),
		DisplayOrder: start.UnixMilli(),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	next, err := svc.SnoozeTodo(ctx, id)
	if err != nil {
		t.Fatalf("SnoozeTodo: %v", err)
	}
	if !next.Equal(due.Add(30 * time.Minute)) {
		t.Fatalf("next = %v, want due+30m", next)
	}
}

func TestSnoozeCapsAtEndOfDay(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 23, 40, 0, 0, time.UTC)
	svc, _ := newTestService(t, start)

	due := time.Date(2024, 1, 1, 23, 45, 0, 0, time.UTC)
	id, err := svc.TodoRepo().Insert(ctx, storage.TodoInsert{
		UserID:       storage.MainUserKey,
		Text:         "Midnight oil",
		DueTime:      &due,
		CreatedDate:  DayOf(start),
		DisplayOrder: start.UnixMilli(),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	next, err := svc.SnoozeTodo(ctx, id)
	if err != nil {
		t.Fatalf("SnoozeTodo: %v", err)
	}
	if !next.Equal(EndOfDay(start)) {
		t.Fatalf("next = %v, want end of day %v", next, EndOfDay(start))
	}

	undated, err := svc.AddTodo(ctx, "No deadline", true)
	if err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	if _, err := svc.SnoozeTodo(ctx, undated.TodoID); err == nil {
		t.Fatal("expected error snoozing a todo without a due time")
	}
}

func TestDailyResetCarriesOverWhenEnabled(t *testing.T) {
	ctx := context.Background()
	svc, now := newTestService(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))

	if err := svc.SetRollOver(ctx, true); err != nil {
		t.Fatalf("SetRollOver: %v", err)
	}
	added, err := svc.AddTodo(ctx, "Old task", true)
	if err != nil {
		t.Fatalf("AddTodo: %v", err)
	}

	*now = now.AddDate(0, 0, 1)

	carried, err := svc.MaybeDailyReset(ctx)
	if err != nil {
		t.Fatalf("MaybeDailyReset: %v", err)
	}
	if carried != 1 {
		t.Fatalf("carried = %d, want 1", carried)
	}

	todo, err := svc.TodoRepo().Get(ctx, added.TodoID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if todo.CreatedDate != "2024-01-02" {
		t.Fatalf("CreatedDate = %q, want moved to today", todo.CreatedDate)
	}

	// Second reset on the same day is a no-op.
	carried, err = svc.MaybeDailyReset(ctx)
	if err != nil {
		t.Fatalf("second reset: %v", err)
	}
	if carried != 0 {
		t.Fatalf("carried = %d, want 0 on repeat", carried)
	}
}

func TestDailyResetLeavesPastWithoutRollOver(t *testing.T) {
	ctx := context.Background()
	svc, now := newTestService(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))

	added, err := svc.AddTodo(ctx, "Old task", true)
	if err != nil {
		t.Fatalf("AddTodo: %v", err)
	}

	*now = now.AddDate(0, 0, 1)

	carried, err := svc.MaybeDailyReset(ctx)
	if err != nil {
		t.Fatalf("MaybeDailyReset: %v", err)
	}
	if carried != 0 {
		t.Fatalf("carried = %d, want 0 with roll-over off", carried)
	}

	past, err := svc.PastTodos(ctx)
	if err != nil {
		t.Fatalf("PastTodos: %v", err)
	}
	if len(past) != 1 || past[0].ID != added.TodoID {
		t.Fatalf("past = %+v, want the leftover todo", past)
	}

	if err := svc.CarryOver(ctx, []int64{added.TodoID}); err != nil {
		t.Fatalf("CarryOver: %v", err)
	}
	past, err = svc.PastTodos(ctx)
	if err != nil {
		t.Fatalf("PastTodos: %v", err)
	}
	if len(past) != 0 {
		t.Fatalf("past = %+v, want empty after carry over", past)
	}
}

func TestSweepPending(t *testing.T) {
	ctx := context.Background()
	svc, now := newTestService(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))

	if _, err := svc.AddTodo(ctx, "Lingering task", true); err != nil {
		t.Fatalf("AddTodo: %v", err)
	}

	sent, err := svc.SweepPending(ctx)
	if err != nil {
		t.Fatalf("SweepPending: %v", err)
	}
	if sent != 1 {
		t.Fatalf("sent = %d, want 1", sent)
	}

	notes, err := svc.Notifications(ctx)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if len(notes) != 1 || notes[0].Message != "You have 1 pending tasks. Stay productive!" {
		t.Fatalf("notifications = %+v", notes)
	}

	// Past the inactivity window the sweep goes quiet.
	*now = now.AddDate(0, 0, 4)
	sent, err = svc.SweepPending(ctx)
	if err != nil {
		t.Fatalf("SweepPending: %v", err)
	}
	if sent != 0 {
		t.Fatalf("sent = %d, want 0 for an idle user", sent)
	}
}

func TestListTodosFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	svc, now := newTestService(t, start)

	if _, err := svc.AddTodo(ctx, "alpha", true); err != nil {
		t.Fatalf("add alpha: %v", err)
	}
	betaDue := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	if _, err := svc.TodoRepo().Insert(ctx, storage.TodoInsert{
		UserID:       storage.MainUserKey,
		Text:         "beta",
		DueTime:      &betaDue,
		CreatedDate:  "2024-01-02",
		DisplayOrder: start.UnixMilli(),
	}); err != nil {
		t.Fatalf("insert beta: %v", err)
	}
	if _, err := svc.TodoRepo().Insert(ctx, storage.TodoInsert{
		UserID:       storage.MainUserKey,
		Text:         "stale",
		CreatedDate:  "2024-01-01",
		DisplayOrder: start.UnixMilli(),
	}); err != nil {
		t.Fatalf("insert stale: %v", err)
	}

	// Default view: dated first, undated after, stale leftovers hidden.
	views, err := svc.ListTodos(ctx, FilterAll, SortByDue)
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(views) != 2 || views[0].Text != "beta" || views[1].Text != "alpha" {
		t.Fatalf("views = %v", texts(views))
	}

	past, err := svc.ListTodos(ctx, FilterPast, SortByDue)
	if err != nil {
		t.Fatalf("ListTodos past: %v", err)
	}
	if len(past) != 1 || past[0].Text != "stale" {
		t.Fatalf("past = %v", texts(past))
	}

	*now = time.Date(2024, 1, 2, 16, 0, 0, 0, time.UTC)
	overdue, err := svc.ListTodos(ctx, FilterOverdue, SortByDue)
	if err != nil {
		t.Fatalf("ListTodos overdue: %v", err)
	}
	if len(overdue) != 1 || overdue[0].Text != "beta" || !overdue[0].IsOverdue {
		t.Fatalf("overdue = %v", texts(overdue))
	}
}

func TestAchievementViewsAndRecentUnlocks(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC))

	added, err := svc.AddTodo(ctx, "One and done", true)
	if err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	if _, err := svc.CompleteTodo(ctx, added.TodoID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	views, err := svc.AchievementViews(ctx)
	if err != nil {
		t.Fatalf("AchievementViews: %v", err)
	}
	if len(views) != len(Catalog()) {
		t.Fatalf("views = %d, want full catalog", len(views))
	}
	for _, v := range views {
		if v.ID == "first_task" && !v.IsUnlocked {
			t.Fatal("first_task should be unlocked")
		}
		if v.ID == "task_master_10" && v.ProgressPercent != 10 {
			t.Fatalf("task_master_10 percent = %d, want 10", v.ProgressPercent)
		}
	}

	recent, err := svc.RecentUnlocks(ctx, 3)
	if err != nil {
		t.Fatalf("RecentUnlocks: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != "first_task" {
		t.Fatalf("recent = %+v", recent)
	}
}

func texts(views []TodoView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Text)
	}
	return out
}

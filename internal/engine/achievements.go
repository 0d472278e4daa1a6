package engine

import (
	"math"
	"time"
)

type ConditionKind string

const (
	CondTotalCompleted    ConditionKind = "total_completed"
	CondStreak            ConditionKind = "streak"
	CondEarlyCompletion   ConditionKind = "early_completion"
	CondLateCompletion    ConditionKind = "late_completion"
	CondEarlyBird         ConditionKind = "early_bird"
	CondDailyTasks        ConditionKind = "daily_tasks"
	CondWeekendCompletion ConditionKind = "weekend_completion"
)

type Condition struct {
	Kind   ConditionKind
	Target int
}

type Category string

const (
	CategoryMilestone Category = "milestone"
	CategoryStreak    Category = "streak"
	CategoryDaily     Category = "daily"
	CategorySpecial   Category = "special"
)

// Achievement is one entry of the static catalog.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Category    Category
	Condition   Condition
}

// Catalog returns the achievement definitions in evaluation order. The ids,
// targets and categories are load-bearing: persisted unlock records are keyed
// by achievement id, so changing them would orphan existing unlocks.
func Catalog() []Achievement {
	return []Achievement{
		{ID: "first_task", Title: "First Task Done", Description: "Complete your first to-do", Icon: "🥇", Category: CategoryMilestone, Condition: Condition{CondTotalCompleted, 1}},
		{ID: "task_master_10", Title: "Task Master", Description: "Complete 10 tasks", Icon: "⭐", Category: CategoryMilestone, Condition: Condition{CondTotalCompleted, 10}},
		{ID: "task_champion_50", Title: "Task Champion", Description: "Complete 50 tasks", Icon: "🏆", Category: CategoryMilestone, Condition: Condition{CondTotalCompleted, 50}},
		{ID: "task_legend_100", Title: "Task Legend", Description: "Complete 100 tasks", Icon: "👑", Category: CategoryMilestone, Condition: Condition{CondTotalCompleted, 100}},
		{ID: "streak_3", Title: "Getting Started", Description: "Complete at least 1 task for 3 days in a row", Icon: "🔥", Category: CategoryStreak, Condition: Condition{CondStreak, 3}},
		{ID: "streak_7", Title: "Weekly Warrior", Description: "Complete at least 1 task for 7 days in a row", Icon: "📅", Category: CategoryStreak, Condition: Condition{CondStreak, 7}},
		{ID: "streak_30", Title: "Consistency Master", Description: "Complete at least 1 task for 30 days in a row", Icon: "💎", Category: CategoryStreak, Condition: Condition{CondStreak, 30}},
		{ID: "beat_the_clock", Title: "Beat the Clock", Description: "Complete a task before its due time", Icon: "⏰", Category: CategorySpecial, Condition: Condition{CondEarlyCompletion, 1}},
		{ID: "night_owl", Title: "Night Owl", Description: "Complete a task after 11 PM", Icon: "🌙", Category: CategorySpecial, Condition: Condition{CondLateCompletion, 1}},
		{ID: "early_bird", Title: "Early Bird", Description: "Complete a task before 6 AM", Icon: "🌅", Category: CategorySpecial, Condition: Condition{CondEarlyBird, 1}},
		{ID: "productive_day_5", Title: "Productive Day", Description: "Complete 5 tasks in a single day", Icon: "📈", Category: CategoryDaily, Condition: Condition{CondDailyTasks, 5}},
		{ID: "productive_day_10", Title: "Super Productive", Description: "Complete 10 tasks in a single day", Icon: "🚀", Category: CategoryDaily, Condition: Condition{CondDailyTasks, 10}},
		{ID: "weekend_warrior", Title: "Weekend Warrior", Description: "Complete tasks on both Saturday and Sunday", Icon: "🏖️", Category: CategorySpecial, Condition: Condition{CondWeekendCompletion, 1}},
	}
}

// Progress returns the (current, max) pair for an achievement against the
// given ledger. The switch is exhaustive over ConditionKind.
func Progress(a Achievement, stats Stats) (current, max int) {
	max = a.Condition.Target
	switch a.Condition.Kind {
	case CondTotalCompleted:
		current = stats.TotalCompleted
	case CondStreak:
		current = stats.LongestStreak
	case CondEarlyCompletion:
		current = stats.EarlyCompletions
	case CondLateCompletion:
		current = stats.LateCompletions
	case CondEarlyBird:
		current = stats.EarlyBirdCompletions
	case CondDailyTasks:
		current = stats.MaxDailyTasks
	case CondWeekendCompletion:
		// Binary: any weekend completion satisfies the target of 1.
		if stats.WeekendCompletions > 0 {
			current = 1
		}
	default:
		current, max = 0, 1
	}
	return current, max
}

// ProgressPercent is the display percentage for a (current, max) pair.
// A non-positive max counts as already satisfied.
func ProgressPercent(current, max int) int {
	if max <= 0 {
		return 100
	}
	pct := int(math.Round(100 * float64(current) / float64(max)))
	if pct > 100 {
		return 100
	}
	return pct
}

func isSatisfied(a Achievement, stats Stats) bool {
	current, max := Progress(a, stats)
	return current >= max
}

// EvaluateUnlocks returns, in catalog order, the achievements whose condition
// is newly satisfied by stats. Ids already present in alreadyUnlocked are
// never reported again: an unlock is terminal.
func EvaluateUnlocks(stats Stats, alreadyUnlocked map[string]bool) []Achievement {
	var newly []Achievement
	for _, a := range Catalog() {
		if alreadyUnlocked[a.ID] {
			continue
		}
		if isSatisfied(a, stats) {
			newly = append(newly, a)
		}
	}
	return newly
}

// AchievementView is an achievement joined with its per-user unlock state and
// progress, for display.
type AchievementView struct {
	Achievement
	IsUnlocked      bool
	UnlockedAt      *time.Time
	Progress        int
	MaxProgress     int
	ProgressPercent int
}

// BuildViews joins the catalog with unlock timestamps and computes progress
// against the ledger. unlockedAt maps achievement id to unlock time.
func BuildViews(stats Stats, unlockedAt map[string]time.Time) []AchievementView {
	catalog := Catalog()
	views := make([]AchievementView, 0, len(catalog))
	for _, a := range catalog {
		current, max := Progress(a, stats)
		v := AchievementView{
			Achievement:     a,
			Progress:        current,
			MaxProgress:     max,
			ProgressPercent: ProgressPercent(current, max),
		}
		if at, ok := unlockedAt[a.ID]; ok {
			v.IsUnlocked = true
			t := at
			v.UnlockedAt = &t
		}
		views = append(views, v)
	}
	return views
}

package engine

// Stats is a user's running productivity ledger. All counters are monotonic;
// CurrentStreak is the consecutive-day run ending at LastCompletionDate.
// Invariants under correct operation: LongestStreak >= CurrentStreak and
// MaxDailyTasks >= every DailyCompletions value.
type Stats struct {
	TotalCompleted       int
	CurrentStreak        int
	LongestStreak        int
	MaxDailyTasks        int
	EarlyCompletions     int
	LateCompletions      int
	EarlyBirdCompletions int
	WeekendCompletions   int
	// LastCompletionDate is empty before the first completion ever recorded.
	LastCompletionDate string
	DailyCompletions   map[string]int
}

// CompletionEvent describes a single task being marked done.
type CompletionEvent struct {
	// Hour is the local hour of day the completion happened, 0..23.
	Hour int
	// WasEarly is true when the task was completed strictly before its due time.
	WasEarly bool
	// Day is the calendar date of the completion (see DayOf).
	Day string
}

// lateHour is the threshold for the night-owl band. The source carried a
// second revision counting hours before 5 AM as late too; that band already
// belongs to the early-bird counter, so only >= 23 counts here.
const lateHour = 23

const earlyBirdHour = 6

// ApplyCompletion folds one completion event into the ledger and returns the
// updated snapshot. The input stats are not mutated.
func ApplyCompletion(stats Stats, ev CompletionEvent) (Stats, error) {
	if ev.Hour < 0 || ev.Hour > 23 {
		return Stats{}, InvalidEventError{Field: "hour", Value: ev.Hour}
	}
	for day, n := range stats.DailyCompletions {
		if n < 0 {
			return Stats{}, InvalidStatsError{Day: day, Count: n}
		}
	}

	out := stats
	out.DailyCompletions = make(map[string]int, len(stats.DailyCompletions)+1)
	for day, n := range stats.DailyCompletions {
		out.DailyCompletions[day] = n
	}
	out.DailyCompletions[ev.Day]++

	// Streak rule: a repeat completion on the same day neither extends nor
	// resets the run. A first-ever completion or a completion on the day
	// right after the last one extends it; anything else (a gap of two or
	// more days, or a last date in the future from clock skew) restarts at 1.
	switch {
	case stats.LastCompletionDate == ev.Day:
		// unchanged
	case stats.LastCompletionDate == "" || IsDayBefore(stats.LastCompletionDate, ev.Day):
		out.CurrentStreak = stats.CurrentStreak + 1
	default:
		out.CurrentStreak = 1
	}

	if out.CurrentStreak > out.LongestStreak {
		out.LongestStreak = out.CurrentStreak
	}
	if out.DailyCompletions[ev.Day] > out.MaxDailyTasks {
		out.MaxDailyTasks = out.DailyCompletions[ev.Day]
	}

	out.TotalCompleted++
	if ev.WasEarly {
		out.EarlyCompletions++
	}
	if ev.Hour >= lateHour {
		out.LateCompletions++
	}
	if ev.Hour < earlyBirdHour {
		out.EarlyBirdCompletions++
	}
	if IsWeekend(ev.Day) {
		out.WeekendCompletions++
	}
	out.LastCompletionDate = ev.Day

	return out, nil
}

package engine

import "fmt"

// InvalidEventError indicates a completion event outside the valid input
// domain (e.g. an impossible hour of day).
type InvalidEventError struct {
	Field string
	Value int
}

func (e InvalidEventError) Error() string {
	return fmt.Sprintf("invalid completion event: %s=%d", e.Field, e.Value)
}

// InvalidStatsError indicates prior statistics that violate their own
// invariants (e.g. a negative per-day completion count).
type InvalidStatsError struct {
	Day   string
	Count int
}

func (e InvalidStatsError) Error() string {
	return fmt.Sprintf("invalid stats: dailyCompletions[%s]=%d", e.Day, e.Count)
}

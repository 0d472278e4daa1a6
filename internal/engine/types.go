package engine

import "strings"

type Filter string

const (
	FilterAll         Filter = "all"
	FilterToday       Filter = "today"
	FilterOverdue     Filter = "overdue"
	FilterCompleted   Filter = "completed"
	FilterUnscheduled Filter = "unscheduled"
	FilterPast        Filter = "past"
)

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterToday, FilterOverdue, FilterCompleted, FilterUnscheduled, FilterPast:
		return true
	default:
		return false
	}
}

// DefaultFilter is used when user input is missing/invalid.
const DefaultFilter Filter = FilterAll

// ParseFilter parses user input to a Filter.
// If input is empty or unrecognized, returns DefaultFilter.
func ParseFilter(input string) Filter {
	f := Filter(strings.TrimSpace(strings.ToLower(input)))
	if f.IsValid() {
		return f
	}
	return DefaultFilter
}

type SortMode string

const (
	SortByDue     SortMode = "due"
	SortByCreated SortMode = "created"
	SortManual    SortMode = "manual"
)

func (s SortMode) IsValid() bool {
	switch s {
	case SortByDue, SortByCreated, SortManual:
		return true
	default:
		return false
	}
}

const DefaultSort SortMode = SortByDue

func ParseSortMode(input string) SortMode {
	s := SortMode(strings.TrimSpace(strings.ToLower(input)))
	if s.IsValid() {
		return s
	}
	return DefaultSort
}

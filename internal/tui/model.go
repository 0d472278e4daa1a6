package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tally/internal/engine"
	"tally/internal/ui"
)

// filterCycle is the order the board steps through with the f key.
var filterCycle = []engine.Filter{
	engine.FilterAll,
	engine.FilterToday,
	engine.FilterOverdue,
	engine.FilterCompleted,
	engine.FilterUnscheduled,
	engine.FilterPast,
}

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	filter   int
	stats    engine.Stats
	todos    []engine.TodoView
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	stats engine.Stats
	todos []engine.TodoView
	err   error
}

type actedMsg struct {
	log string
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.svc.UserStats(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		todos, err := m.svc.ListTodos(m.ctx, filterCycle[m.filter], engine.SortByDue)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{stats: stats, todos: todos}
	}
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTodo(m.ctx, id)
		if err != nil {
			return actedMsg{err: err}
		}
		log := fmt.Sprintf("Completed #%d (streak %d)", id, res.Stats.CurrentStreak)
		if len(res.NewlyUnlocked) > 0 {
			a := res.NewlyUnlocked[0]
			log = fmt.Sprintf("%s %s %s!", a.Icon, ui.BadgeUnlock, a.Title)
		}
		return actedMsg{log: log}
	}
}

func (m boardModel) removeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.RemoveTodo(m.ctx, id); err != nil {
			return actedMsg{err: err}
		}
		return actedMsg{log: fmt.Sprintf("Deleted #%d", id)}
	}
}

func (m boardModel) snoozeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		next, err := m.svc.SnoozeTodo(m.ctx, id)
		if err != nil {
			return actedMsg{err: err}
		}
		return actedMsg{log: fmt.Sprintf("Snoozed #%d until %s", id, next.Format("15:04"))}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.stats = msg.stats
		m.todos = msg.todos
		if m.selected >= len(m.todos) {
			m.selected = len(m.todos) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, nil
	case actedMsg:
		if msg.err != nil {
			m.lastLog = msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.log
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "f":
			m.filter = (m.filter + 1) % len(filterCycle)
			m.selected = 0
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.todos)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			if t, ok := m.current(); ok {
				if t.IsCompleted {
					m.lastLog = "Already completed."
					return m, nil
				}
				m.lastLog = fmt.Sprintf("Completing #%d…", t.ID)
				return m, m.completeCmd(t.ID)
			}
		case "d":
			if t, ok := m.current(); ok {
				return m, m.removeCmd(t.ID)
			}
		case "s":
			if t, ok := m.current(); ok {
				return m, m.snoozeCmd(t.ID)
			}
		}
	}
	return m, nil
}

func (m boardModel) current() (engine.TodoView, bool) {
	if m.selected < 0 || m.selected >= len(m.todos) {
		return engine.TodoView{}, false
	}
	return m.todos[m.selected], true
}

func (m boardModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s  %s %d  %s %d done",
		ui.Heading(ui.IconTask, "Tally"),
		ui.IconStreak, m.stats.CurrentStreak,
		ui.IconDone, m.stats.TotalCompleted)
	b.WriteString(header + "\n")
	b.WriteString(ui.Muted.Render(fmt.Sprintf("filter: %s", filterCycle[m.filter])) + "\n\n")

	if m.loading {
		b.WriteString(ui.Muted.Render("Loading…") + "\n")
	} else if len(m.todos) == 0 {
		b.WriteString(ui.Muted.Render("Nothing here. Add something: tl add \"Buy milk tomorrow 9am\"") + "\n")
	}

	for i, t := range m.todos {
		line := fmt.Sprintf("%s #%d %s", ui.Checkbox(t.IsCompleted, t.IsOverdue), t.ID, t.Text)
		if t.DueTime != nil {
			line += " " + ui.Muted.Render(t.DueTime.Format("Jan 2 15:04"))
		}
		if i == m.selected {
			line = ui.SelectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + ui.Dim.Render(m.lastLog) + "\n")
	b.WriteString(ui.Dim.Render("j/k move · space complete · s snooze · d delete · f filter · r refresh · q quit") + "\n")
	return b.String()
}

package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"tally/internal/engine"
)

// RunBoard starts the interactive todo board.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	p := tea.NewProgram(newBoardModel(ctx, svc), tea.WithOutput(out))
	_, err := p.Run()
	return err
}

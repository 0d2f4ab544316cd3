package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/engine"
)

// RunBoard starts the interactive quest board.
func RunBoard(ctx context.Context, game *engine.Game) error {
	p := tea.NewProgram(newBoardModel(ctx, game), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package dashboard

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vladcraftcom/ai-project-template/internal/orchestrator"
)

// Run starts the dashboard and blocks until the user quits.
func Run(ctx context.Context, state *orchestrator.State) error {
	program := tea.NewProgram(NewModel(ctx, state), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

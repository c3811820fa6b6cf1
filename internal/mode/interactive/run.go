// ABOUTME: Entry point for the Bubble Tea chat
// ABOUTME: Creates the tea.Program bound to ctx and blocks until the user exits

package interactive

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive chat. Blocks until the user exits or ctx is
// canceled.
func Run(ctx context.Context, deps AppDeps) error {
	p := tea.NewProgram(
		NewAppModel(deps),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}

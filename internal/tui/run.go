package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/grocery-manager/internal/engine"
)

// ErrNotGroceryDay is returned when the interactive list is opened on a day
// without a grocery list.
var ErrNotGroceryDay = errors.New("today is not a grocery day")

// Run shows the interactive shopping list until the user quits. Dismissals
// are written through dismisser as they happen.
func Run(ctx context.Context, eval *engine.Evaluation, dismisser Dismisser, opts ...tea.ProgramOption) error {
	if eval == nil || dismisser == nil {
		return fmt.Errorf("evaluation and dismisser are required")
	}
	if !eval.IsGroceryDay {
		return ErrNotGroceryDay
	}

	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(New(ctx, eval, dismisser), opts...)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("shopping list error: %w", err)
	}
	return nil
}

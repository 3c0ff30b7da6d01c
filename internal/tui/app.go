package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/find-files/internal/finder"
)

// Run shows the interactive view until the user quits. It returns the error
// that ended the search, if any.
func Run(ctx context.Context, f *finder.Finder, opts ...tea.ProgramOption) error {
	opts = append(opts, tea.WithContext(ctx))

	final, err := tea.NewProgram(NewModel(ctx, f), opts...).Run()
	if err != nil {
		return fmt.Errorf("interactive view failed: %w", err)
	}

	if m, ok := final.(Model); ok {
		return m.Err()
	}

	return nil
}

// unexported constants.
const (
	timeRounding = time.Millisecond
)

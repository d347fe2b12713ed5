// Package ui implements the interactive triage screen.
package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/babarot/sweep/internal/config"
	"github.com/babarot/sweep/internal/library"
	"github.com/babarot/sweep/internal/selector"
	"github.com/babarot/sweep/internal/trash"
)

// Run shows candidates until the user quits and returns the assets trashed
// during the session.
func Run(ctx context.Context, sel *selector.Selector, store *trash.Store, source string, cfg config.UI) ([]library.Asset, error) {
	m := NewModel(ctx, sel, store, source, cfg)

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, fmt.Errorf("run triage ui: %w", err)
	}

	result, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	return result.Trashed(), result.Err()
}

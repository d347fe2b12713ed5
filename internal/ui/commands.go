package ui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/babarot/sweep/internal/library"
)

// nextCmd asks the selector for a new candidate, never the one in exclude
func nextCmd(m Model, exclude ...string) tea.Cmd {
	return func() tea.Msg {
		asset, found, err := m.selector.Next(m.ctx, exclude...)
		return candidateMsg{asset: asset, found: found, exclude: exclude, err: err}
	}
}

func countCmd(m Model) tea.Cmd {
	return func() tea.Msg {
		return countMsg{count: m.store.Count(m.ctx)}
	}
}

func trashCmd(m Model, asset library.Asset) tea.Cmd {
	return func() tea.Msg {
		slog.Debug("trash", "id", asset.ID)
		m.store.Add(m.ctx, asset.ID)
		return trashedMsg{asset: asset, count: m.store.Count(m.ctx)}
	}
}

func restoreCmd(m Model, asset library.Asset) tea.Cmd {
	return func() tea.Msg {
		slog.Debug("restore", "id", asset.ID)
		m.store.Remove(m.ctx, asset.ID)
		return restoredMsg{asset: asset, count: m.store.Count(m.ctx)}
	}
}

package ui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/babarot/sweep/internal/library"
)

// Update handles all UI state updates based on incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		slog.Debug("Key pressed", "key", msg.String())
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case candidateMsg:
		if msg.err != nil {
			m.pending = false
			m.err = msg.err
			m.state = QUITTING
			return m, tea.Quit
		}
		if !msg.found {
			if m.retried {
				slog.Info("library exhausted")
				m.pending = false
				m.state = EXHAUSTED_VIEW
				m.current = library.Asset{}
				return m, nil
			}
			slog.Debug("no candidate, resetting selector")
			m.retried = true
			m.selector.Reset()
			return m, nextCmd(m, msg.exclude...)
		}
		m.pending = false
		m.retried = false
		m.current = msg.asset
		m.state = TRIAGE_VIEW
		return m, nil

	case trashedMsg:
		m.trashed = append(m.trashed, msg.asset)
		m.count = msg.count
		m.status = fmt.Sprintf("deleted %s", msg.asset.Filename)
		return m, nextCmd(m, msg.asset.ID)

	case restoredMsg:
		m.pending = false
		m.count = msg.count
		m.status = fmt.Sprintf("restored %s", msg.asset.Filename)
		m.retried = false
		m.current = msg.asset
		m.state = TRIAGE_VIEW
		return m, nil

	case countMsg:
		m.count = msg.count
		return m, nil
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = QUITTING
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// keep, delete and undo wait until the previous one has produced a
	// new candidate
	if m.pending {
		slog.Debug("Key ignored while loading", "key", msg.String())
		return m, nil
	}

	if key.Matches(msg, m.keys.Undo) {
		if len(m.trashed) == 0 {
			m.status = "nothing to undo"
			return m, nil
		}
		last := m.trashed[len(m.trashed)-1]
		m.trashed = m.trashed[:len(m.trashed)-1]
		m.pending = true
		return m, restoreCmd(m, last)
	}

	if m.state != TRIAGE_VIEW {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Keep):
		m.status = fmt.Sprintf("kept %s", m.current.Filename)
		m.pending = true
		return m, nextCmd(m, m.current.ID)

	case key.Matches(msg, m.keys.Delete):
		m.pending = true
		return m, trashCmd(m, m.current)
	}

	return m, nil
}

package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type TriageKeyMap struct {
	Keep   key.Binding
	Delete key.Binding
	Undo   key.Binding

	Help key.Binding
	Quit key.Binding
}

func (k TriageKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Keep,
		k.Delete,
		k.Undo,
		k.Help,
	}
}

func (k TriageKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Keep, k.Delete},
		{k.Undo},
		{k.Help, k.Quit},
	}
}

var TriageKeys = &TriageKeyMap{
	Keep: key.NewBinding(
		key.WithKeys("k", "right"),
		key.WithHelp("k/→", "keep"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "left"),
		key.WithHelp("d/←", "delete"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo delete"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

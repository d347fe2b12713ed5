package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/babarot/sweep/internal/config"
	"github.com/babarot/sweep/internal/library"
	"github.com/babarot/sweep/internal/selector"
	"github.com/babarot/sweep/internal/trash"
	"github.com/babarot/sweep/internal/ui/keys"
	"github.com/babarot/sweep/internal/ui/styles"
)

// Model is the triage screen: one candidate at a time, keep or delete
type Model struct {
	ctx      context.Context
	selector *selector.Selector
	store    *trash.Store

	state  ViewType
	source string

	current library.Asset
	// retried is set after a miss made the selector forget its recent ids,
	// so a second miss in a row means the library is exhausted
	retried bool
	// pending is set while a keep, delete or undo is waiting for its result
	pending bool
	// trashed holds ids deleted in this session, newest last, for undo
	trashed []library.Asset
	count   int
	status  string

	config config.UI
	keys   *keys.TriageKeyMap
	help   help.Model
	styles *styles.Styles

	err error
}

// NewModel builds the triage screen. source names the library in the header.
func NewModel(ctx context.Context, sel *selector.Selector, store *trash.Store, source string, cfg config.UI) Model {
	return Model{
		ctx:      ctx,
		selector: sel,
		store:    store,
		state:    LOADING_VIEW,
		source:   source,
		config:   cfg,
		keys:     keys.TriageKeys,
		help:     help.New(),
		styles:   styles.New(cfg),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(countCmd(m), nextCmd(m))
}

// Err returns the error that stopped the program, if any
func (m Model) Err() error {
	return m.err
}

// Trashed returns the assets deleted during the session
func (m Model) Trashed() []library.Asset {
	return m.trashed
}

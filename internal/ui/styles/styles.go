package styles

import (
	"github.com/babarot/sweep/internal/config"
	"github.com/charmbracelet/lipgloss"
)

// Color chart: https://github.com/muesli/termenv

type Styles struct {
	Title    lipgloss.Style
	Filename lipgloss.Style
	Meta     lipgloss.Style
	Keep     lipgloss.Style
	Delete   lipgloss.Style
	Info     lipgloss.Style
	Frame    lipgloss.Style
	Help     lipgloss.Style
}

func New(cfg config.UI) *Styles {
	return &Styles{
		Title:    Title(cfg),
		Filename: lipgloss.NewStyle().Bold(true),
		Meta:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"}),
		Keep:     Badge(cfg.Style.Keep),
		Delete:   Badge(cfg.Style.Delete),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Style.Info)),
		Frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
		Help:     lipgloss.NewStyle().Margin(1, 2),
	}
}

var Title = func(cfg config.UI) lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1).
		Background(lipgloss.Color(cfg.Style.Info)).
		Foreground(lipgloss.Color("#FFFDF5")).
		Bold(true)
}

var Badge = func(color string) lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1).
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color("#FFFDF5"))
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// View returns the string representation of the current UI state
func (m Model) View() string {
	switch m.state {
	case LOADING_VIEW:
		return m.styles.Meta.Render("  looking for a photo...") + "\n"

	case TRIAGE_VIEW:
		return m.frame(m.candidateView())

	case EXHAUSTED_VIEW:
		body := m.styles.Filename.Render("library exhausted") + "\n" +
			m.styles.Meta.Render("every photo is either kept recently or in the trash")
		return m.frame(body)

	case QUITTING:
		if m.err != nil {
			return m.err.Error() + "\n"
		}
		return ""
	}
	return ""
}

func (m Model) frame(body string) string {
	parts := []string{m.styles.Title.Render("sweep"), " "}
	if m.source != "" {
		parts = append(parts, m.styles.Meta.Render(m.source), " ")
	}
	parts = append(parts, m.styles.Info.Render(fmt.Sprintf("%d in trash", m.count)))
	header := lipgloss.JoinHorizontal(lipgloss.Center, parts...)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.styles.Frame.Render(body))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("  " + m.statusView())
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) candidateView() string {
	a := m.current
	lines := []string{
		m.styles.Filename.Render(a.Filename),
		m.styles.Meta.Render(a.ID),
		"",
		fmt.Sprintf("%-9s %s", "type", a.MediaType),
		fmt.Sprintf("%-9s %s", "size", humanize.Bytes(uint64(max(a.Size, 0)))),
		fmt.Sprintf("%-9s %s (%s)", "modified", a.ModifiedAt.Format("2006-01-02 15:04"), humanize.Time(a.ModifiedAt)),
	}
	return strings.Join(lines, "\n")
}

func (m Model) statusView() string {
	switch {
	case strings.HasPrefix(m.status, "deleted"):
		return m.styles.Delete.Render(m.status)
	case strings.HasPrefix(m.status, "kept"), strings.HasPrefix(m.status, "restored"):
		return m.styles.Keep.Render(m.status)
	default:
		return m.styles.Meta.Render(m.status)
	}
}

package app

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/wallon-qodo/multi-term-sub000/internal/pool"
)

// helpEntry is one row in the keybinding overlay.
type helpEntry struct {
	Keys string
	Desc string
}

// helpSection groups related bindings.
type helpSection struct {
	Title   string
	Entries []helpEntry
}

var helpSections = []helpSection{
	{
		Title: "Panes",
		Entries: []helpEntry{
			{"c", "open a new pane"},
			{"x", "close the focused pane"},
			{"n / p", "focus next / previous pane"},
			{"s", "swap focused pane with the next"},
			{"r", "rename the focused pane"},
		},
	},
	{
		Title: "Layout",
		Entries: []helpEntry{
			{"t / m / b", "tiled / monocle / tabbed layout"},
			{"h / l", "shrink / grow the focused split"},
			{"[ / ]", "cycle visible pane or tab"},
		},
	},
	{
		Title: "Workspaces",
		Entries: []helpEntry{
			{"1-9", "switch to workspace"},
			{"shift+1-9", "move focused pane to workspace"},
		},
	},
	{
		Title: "Other",
		Entries: []helpEntry{
			{"?", "toggle this help"},
			{"d / q", "quit"},
		},
	},
}

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))
	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("11"))
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Width(12)
	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// renderHelp draws the keybinding overlay. All commands follow the prefix
// key, so the header names it.
func (m *Mux) renderHelp() string {
	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)

	sb.WriteString(helpTitleStyle.Render(
		fmt.Sprintf("Keybindings (press %s first)", m.Config.Keybindings.Prefix)))
	sb.WriteString("\n")

	for _, section := range helpSections {
		sb.WriteString("\n")
		sb.WriteString(helpSectionStyle.Render(section.Title))
		sb.WriteString("\n")
		for _, entry := range section.Entries {
			sb.WriteString(helpKeyStyle.Render(entry.Keys))
			sb.WriteString(helpDescStyle.Render(entry.Desc))
			sb.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Border(m.paneBorder()).
		BorderForeground(focusedBorderColor).
		Padding(1, 3).
		Render(sb.String())
}

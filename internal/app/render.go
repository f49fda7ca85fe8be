package app

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wallon-qodo/multi-term-sub000/internal/layout"
	"github.com/wallon-qodo/multi-term-sub000/internal/pool"
)

// Z ordering for canvas layers.
const (
	zPane    = 10
	zFocused = 20
	zChrome  = 100
	zOverlay = 200
)

var (
	focusedBorderColor = lipgloss.Color("12")
	paneBorderColor    = lipgloss.Color("8")
	statusBarStyle     = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("252"))
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("12")).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Background(lipgloss.Color("238")).
				Padding(0, 1)
)

// paneBorder maps the configured border style name to a lipgloss border.
func (m *Mux) paneBorder() lipgloss.Border {
	switch m.Config.Appearance.BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// renderPane draws one pane box sized to its projected rectangle.
func (m *Mux) renderPane(sl layout.SessionLayout) string {
	title := sl.SessionID
	command := ""
	if sess, ok := m.Sessions.Get(sl.SessionID); ok {
		title = sess.Title
		command = sess.Command
	}

	borderColor := paneBorderColor
	if sl.Focused {
		borderColor = focusedBorderColor
	}

	innerWidth := max(1, sl.Rect.Width-2)
	innerHeight := max(1, sl.Rect.Height-2)

	label := lipgloss.NewStyle().Bold(true).Render(title)
	body := lipgloss.Place(innerWidth, innerHeight,
		lipgloss.Center, lipgloss.Center,
		label+"\n"+lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(command))

	return lipgloss.NewStyle().
		Border(m.paneBorder()).
		BorderForeground(borderColor).
		Width(innerWidth).
		Height(innerHeight).
		Render(body)
}

// renderTabStrip draws the tab row for tabbed workspaces.
func (m *Mux) renderTabStrip(layouts []layout.SessionLayout) string {
	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)

	for _, sl := range layouts {
		if sl.TabIndex < 0 {
			continue
		}
		title := sl.SessionID
		if sess, ok := m.Sessions.Get(sl.SessionID); ok {
			title = sess.Title
		}
		label := fmt.Sprintf("%d:%s", sl.TabIndex+1, title)
		if sl.Visible {
			sb.WriteString(activeTabStyle.Render(label))
		} else {
			sb.WriteString(inactiveTabStyle.Render(label))
		}
	}
	return sb.String()
}

// renderStatusBar draws the bottom bar: workspace indicator on the left,
// transient status text on the right.
func (m *Mux) renderStatusBar() string {
	ws := m.ActiveWorkspace()
	left := ""
	if ws != nil {
		left = fmt.Sprintf(" [%d] %s  %s  %d panes ",
			ws.ID, ws.Name, m.Layouts.Mode(ws.ID), len(ws.SessionIDs))
	}

	right := ""
	if m.PrefixActive {
		right = " PREFIX "
	} else if m.StatusText != "" && time.Now().Before(m.StatusUntil) {
		right = " " + m.StatusText + " "
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return statusBarStyle.Width(m.Width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderRenamePrompt draws the centered title input overlay.
func (m *Mux) renderRenamePrompt() string {
	prompt := fmt.Sprintf("Rename pane: %s█", m.RenameBuffer)
	return lipgloss.NewStyle().
		Border(m.paneBorder()).
		BorderForeground(focusedBorderColor).
		Padding(0, 2).
		Render(prompt)
}

// GetCanvas composites the current frame from pane, chrome, and overlay
// layers.
func (m *Mux) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(m.Width, m.Height)

	ws := m.ActiveWorkspace()
	if ws == nil {
		return canvas
	}

	layersPtr := pool.GetLayerSlice()
	layers := (*layersPtr)[:0]
	defer func() {
		// Appends may have grown the backing array; store it back so the
		// pool keeps the larger capacity.
		*layersPtr = layers
		pool.PutLayerSlice(layersPtr)
	}()

	layouts := m.Layouts.Apply(ws.Membership(), false)
	mode := m.Layouts.Mode(ws.ID)

	for _, sl := range layouts {
		if !sl.Visible {
			continue
		}
		z := zPane
		if sl.Focused {
			z = zFocused
		}
		layers = append(layers, lipgloss.NewLayer(m.renderPane(sl)).
			X(sl.Rect.X).
			Y(sl.Rect.Y).
			Z(z).
			ID(sl.SessionID))
	}

	if mode == layout.ModeTabbed && len(layouts) > 0 {
		layers = append(layers, lipgloss.NewLayer(m.renderTabStrip(layouts)).
			X(0).Y(0).Z(zChrome).ID("tabstrip"))
	}

	if len(layouts) == 0 {
		welcome := lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Render(fmt.Sprintf("Press %s then c to open a pane", m.Config.Keybindings.Prefix))
		layers = append(layers, lipgloss.NewLayer(welcome).
			X(max(0, (m.Width-lipgloss.Width(welcome))/2)).
			Y(max(0, m.viewportHeight()/2)).
			Z(zChrome).ID("welcome"))
	}

	if m.Config.Appearance.ShowStatusBar {
		layers = append(layers, lipgloss.NewLayer(m.renderStatusBar()).
			X(0).Y(max(0, m.Height-StatusBarHeight)).Z(zChrome).ID("statusbar"))
	}

	if m.ShowHelp {
		help := m.renderHelp()
		layers = append(layers, lipgloss.NewLayer(help).
			X(max(0, (m.Width-lipgloss.Width(help))/2)).
			Y(max(0, (m.Height-lipgloss.Height(help))/2)).
			Z(zOverlay).ID("help"))
	}

	if m.Renaming {
		prompt := m.renderRenamePrompt()
		layers = append(layers, lipgloss.NewLayer(prompt).
			X(max(0, (m.Width-lipgloss.Width(prompt))/2)).
			Y(max(0, (m.Height-lipgloss.Height(prompt))/2)).
			Z(zOverlay).ID("rename"))
	}

	canvas.Compose(lipgloss.NewCompositor(layers...))
	return canvas
}

// View renders the composited canvas into an alt-screen view.
func (m *Mux) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(m.GetCanvas().Render()))
	view.AltScreen = true
	return view
}

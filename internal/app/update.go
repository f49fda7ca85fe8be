package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/wallon-qodo/multi-term-sub000/internal/config"
	"github.com/wallon-qodo/multi-term-sub000/internal/layout"
)

// TickerMsg drives periodic UI updates such as status message expiry.
type TickerMsg time.Time

// SessionExitMsg signals that a session has been closed and should be removed
// from its workspace and layout.
type SessionExitMsg struct {
	SessionID string
}

// ConfigReloadedMsg carries a freshly reloaded configuration from the file
// watcher.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ListenForSessionExits creates a command that converts registry exit signals
// into messages.
func ListenForSessionExits(exits <-chan string) tea.Cmd {
	return func() tea.Msg {
		sessionID, ok := <-exits
		if !ok {
			return nil
		}
		return SessionExitMsg{SessionID: sessionID}
	}
}

// TickCmd schedules the next periodic tick.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Init starts the tick timer and the session exit listener.
func (m *Mux) Init() tea.Cmd {
	return tea.Batch(
		TickCmd(),
		ListenForSessionExits(m.Sessions.Exits()),
	)
}

// Update handles all incoming messages and mutates the application state.
func (m *Mux) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		if m.StatusText != "" && time.Now().After(m.StatusUntil) {
			m.StatusText = ""
		}
		return m, TickCmd()

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		if err := m.Layouts.SetViewportSize(max(1, msg.Width), m.viewportHeight()); err != nil {
			m.logger.Error("failed to resize viewport", "err", err)
		}
		return m, nil

	case SessionExitMsg:
		// The session may already be gone if the user closed it; removal is
		// idempotent across both managers.
		if ws := m.Workspaces.SessionWorkspace(msg.SessionID); ws != nil {
			m.Workspaces.RemoveSession(ws.ID, msg.SessionID)
			m.Layouts.RemoveSession(ws.ID, msg.SessionID)
		}
		return m, ListenForSessionExits(m.Sessions.Exits())

	case ConfigReloadedMsg:
		if msg.Config != nil {
			m.Config = msg.Config
			m.setStatus("Configuration reloaded")
			m.logger.Info("configuration reloaded")
		}
		return m, nil

	case tea.KeyPressMsg:
		return m, m.HandleKey(msg)
	}

	return m, nil
}

// shiftedDigits maps the shifted US number row to workspace slots, used for
// the "move pane to workspace" prefix commands.
var shiftedDigits = map[string]int{
	"!": 1, "@": 2, "#": 3, "$": 4, "%": 5, "^": 6, "&": 7, "*": 8, "(": 9,
}

// HandleKey processes a key press. All commands live behind a tmux-style
// prefix; the prefix key itself and quit are the only direct bindings.
func (m *Mux) HandleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if m.Renaming {
		return m.handleRenameKey(msg)
	}

	if !m.PrefixActive {
		switch key {
		case m.Config.Keybindings.Prefix:
			m.PrefixActive = true
		case "esc":
			m.ShowHelp = false
		case "ctrl+q":
			return m.quit()
		}
		return nil
	}

	m.PrefixActive = false

	switch key {
	case "c":
		m.OpenSession("", "")
	case "x":
		if !m.CloseFocusedSession() {
			m.setStatus("No pane to close")
		}
	case "n":
		m.FocusNext(1)
	case "p":
		m.FocusNext(-1)
	case "t":
		m.SetWorkspaceMode(layout.ModeTiled)
	case "m":
		m.SetWorkspaceMode(layout.ModeMonocle)
	case "b":
		m.SetWorkspaceMode(layout.ModeTabbed)
	case "]":
		m.CycleVisible(1)
	case "[":
		m.CycleVisible(-1)
	case "l":
		m.AdjustFocusedSplit(m.Config.General.SplitStep)
	case "h":
		m.AdjustFocusedSplit(-m.Config.General.SplitStep)
	case "s":
		if !m.SwapFocusedWithNext() {
			m.setStatus("Nothing to swap")
		}
	case "r":
		m.StartRename()
	case "?":
		m.ShowHelp = !m.ShowHelp
	case "d", "q":
		return m.quit()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.SwitchWorkspace(int(key[0] - '0'))
	default:
		if target, ok := shiftedDigits[key]; ok {
			m.MoveFocusedToWorkspace(target)
		}
	}

	return nil
}

func (m *Mux) handleRenameKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.CommitRename()
	case "esc":
		m.CancelRename()
	case "backspace":
		if len(m.RenameBuffer) > 0 {
			runes := []rune(m.RenameBuffer)
			m.RenameBuffer = string(runes[:len(runes)-1])
		}
	default:
		if msg.Text != "" {
			m.RenameBuffer += msg.Text
		}
	}
	return nil
}

func (m *Mux) quit() tea.Cmd {
	if m.Config.General.RestoreOnStart {
		_ = m.SaveSnapshot()
	}
	return tea.Quit
}

package app

import (
	"fmt"
	"os"

	"github.com/wallon-qodo/multi-term-sub000/internal/layout"
	"github.com/wallon-qodo/multi-term-sub000/internal/workspace"
)

// defaultShell picks the command for new panes.
func defaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "sh"
}

// OpenSession creates a session and places it in the active workspace. The
// workspace manager is updated first so that membership is already true when
// the layout tree learns about the pane.
func (m *Mux) OpenSession(title, command string) string {
	ws := m.ActiveWorkspace()
	if ws == nil {
		return ""
	}
	if command == "" {
		command = defaultShell()
	}

	sess := m.Sessions.Create(title, command, "")
	m.Workspaces.AddSession(ws.ID, sess.ID)
	m.Layouts.AddSession(ws.ID, sess.ID)
	ws.SetFocus(sess.ID)

	m.logger.Debug("opened session", "id", sess.ID, "workspace", ws.ID)
	return sess.ID
}

// CloseFocusedSession closes the focused pane and removes it everywhere.
func (m *Mux) CloseFocusedSession() bool {
	ws := m.ActiveWorkspace()
	if ws == nil || ws.FocusedSessionID == "" {
		return false
	}
	return m.closeSession(ws.FocusedSessionID)
}

// closeSession tears a session out of the registry and both managers. Safe to
// call for sessions that already exited.
func (m *Mux) closeSession(sessionID string) bool {
	ws := m.Workspaces.SessionWorkspace(sessionID)
	if ws == nil {
		return false
	}
	m.Workspaces.RemoveSession(ws.ID, sessionID)
	m.Layouts.RemoveSession(ws.ID, sessionID)
	m.Sessions.Close(sessionID)
	m.logger.Debug("closed session", "id", sessionID, "workspace", ws.ID)
	return true
}

// FocusNext moves focus through the active workspace's panes. Direction is
// +1 for next, -1 for previous, wrapping at the ends.
func (m *Mux) FocusNext(direction int) bool {
	ws := m.ActiveWorkspace()
	if ws == nil || len(ws.SessionIDs) == 0 {
		return false
	}

	n := len(ws.SessionIDs)
	current := 0
	for i, id := range ws.SessionIDs {
		if id == ws.FocusedSessionID {
			current = i
			break
		}
	}
	next := ((current+direction)%n + n) % n
	return ws.SetFocus(ws.SessionIDs[next])
}

// SwitchWorkspace changes the visible workspace.
func (m *Mux) SwitchWorkspace(id int) bool {
	if !m.Workspaces.SetActive(id) {
		return false
	}
	ws := m.Workspaces.Get(id)
	m.setStatus(fmt.Sprintf("Workspace %d: %s", id, ws.Name))
	return true
}

// MoveFocusedToWorkspace sends the focused pane to another workspace without
// following it.
func (m *Mux) MoveFocusedToWorkspace(target int) bool {
	ws := m.ActiveWorkspace()
	if ws == nil || ws.FocusedSessionID == "" {
		return false
	}
	// Moving a pane to its own workspace changes no membership, so the
	// layout structures must not be touched either.
	if target == ws.ID {
		return true
	}
	sessionID := ws.FocusedSessionID

	if !m.Workspaces.MoveSession(sessionID, ws.ID, target) {
		return false
	}
	m.Layouts.RemoveSession(ws.ID, sessionID)
	m.Layouts.AddSession(target, sessionID)
	m.setStatus(fmt.Sprintf("Moved pane to workspace %d", target))
	return true
}

// SetWorkspaceMode switches the active workspace's layout mode, keeping the
// workspace record and the layout manager in agreement.
func (m *Mux) SetWorkspaceMode(mode layout.Mode) bool {
	ws := m.ActiveWorkspace()
	if ws == nil {
		return false
	}
	if !m.Layouts.SetMode(ws.ID, mode) {
		return false
	}
	ws.Mode = mode
	m.setStatus(fmt.Sprintf("Layout: %s", mode))
	return true
}

// CycleVisible steps through panes in the active workspace's current mode:
// the stack in monocle, the tab index in tabbed, and focus order in tiled.
func (m *Mux) CycleVisible(direction int) bool {
	ws := m.ActiveWorkspace()
	if ws == nil {
		return false
	}

	switch m.Layouts.Mode(ws.ID) {
	case layout.ModeMonocle:
		return m.Layouts.CycleStack(ws.ID, direction)
	case layout.ModeTabbed:
		n := len(ws.SessionIDs)
		if n == 0 {
			return false
		}
		current := m.currentTabIndex(ws)
		return m.Layouts.SwitchTab(ws.ID, ((current+direction)%n+n)%n)
	default:
		return m.FocusNext(direction)
	}
}

// currentTabIndex finds the tab currently shown, by projecting the workspace.
func (m *Mux) currentTabIndex(ws *workspace.Workspace) int {
	layouts := m.Layouts.Apply(ws.Membership(), false)
	for _, sl := range layouts {
		if sl.Visible && sl.TabIndex >= 0 {
			return sl.TabIndex
		}
	}
	return 0
}

// AdjustFocusedSplit grows or shrinks the focused pane's share of its split.
func (m *Mux) AdjustFocusedSplit(delta float64) bool {
	ws := m.ActiveWorkspace()
	if ws == nil || ws.FocusedSessionID == "" {
		return false
	}
	return m.Layouts.AdjustSplit(ws.ID, ws.FocusedSessionID, delta)
}

// SwapFocusedWithNext exchanges the focused pane's position with the next
// pane in tree order. Geometry moves, focus stays with the same session.
func (m *Mux) SwapFocusedWithNext() bool {
	ws := m.ActiveWorkspace()
	if ws == nil || ws.FocusedSessionID == "" {
		return false
	}
	tree := m.Layouts.Tree(ws.ID)
	if tree == nil {
		return false
	}
	order := tree.Panes()
	if len(order) < 2 {
		return false
	}
	for i, id := range order {
		if id == ws.FocusedSessionID {
			other := order[(i+1)%len(order)]
			return m.Layouts.SwapPanes(ws.ID, id, other)
		}
	}
	return false
}

// StartRename begins editing the focused pane's title.
func (m *Mux) StartRename() bool {
	sess := m.FocusedSession()
	if sess == nil {
		return false
	}
	m.Renaming = true
	m.RenameBuffer = sess.Title
	return true
}

// CommitRename applies the pending title and leaves rename mode.
func (m *Mux) CommitRename() {
	ws := m.ActiveWorkspace()
	if ws != nil && ws.FocusedSessionID != "" && m.RenameBuffer != "" {
		m.Sessions.Rename(ws.FocusedSessionID, m.RenameBuffer)
	}
	m.Renaming = false
	m.RenameBuffer = ""
}

// CancelRename leaves rename mode without changing the title.
func (m *Mux) CancelRename() {
	m.Renaming = false
	m.RenameBuffer = ""
}

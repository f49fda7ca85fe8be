package workspace

import "fmt"

// Manager owns the nine workspace slots and tracks which one is active.
// Slots are created once at startup and never destroyed. Session ids are
// assumed unique across the whole manager; the session backend guarantees
// that, nothing here enforces it.
type Manager struct {
	workspaces [NumWorkspaces]*Workspace
	activeID   int
}

// NewManager creates the nine workspaces with their configured names and
// activates workspace 1. Names beyond the slot count are ignored; missing
// names fall back to the slot number.
func NewManager(names []string) *Manager {
	m := &Manager{activeID: 1}
	for i := range m.workspaces {
		id := i + 1
		name := fmt.Sprintf("%d", id)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		ws, err := NewWorkspace(id, name)
		if err != nil {
			// Unreachable: slot numbers come from the loop above.
			panic(err)
		}
		m.workspaces[i] = ws
	}
	return m
}

// Get returns the workspace with the given slot number, or nil if the
// number is out of range.
func (m *Manager) Get(id int) *Workspace {
	if id < 1 || id > NumWorkspaces {
		return nil
	}
	return m.workspaces[id-1]
}

// Active returns the currently active workspace.
func (m *Manager) Active() *Workspace {
	return m.workspaces[m.activeID-1]
}

// ActiveID returns the active workspace's slot number.
func (m *Manager) ActiveID() int {
	return m.activeID
}

// SetActive switches the active workspace. Returns false for out-of-range
// slot numbers.
func (m *Manager) SetActive(id int) bool {
	if id < 1 || id > NumWorkspaces {
		return false
	}
	m.activeID = id
	return true
}

// AddSession adds a session to a workspace. If the workspace was empty the
// new session becomes its focused session. Returns false if the workspace
// does not exist or the session was already a member.
func (m *Manager) AddSession(workspaceID int, sessionID string) bool {
	ws := m.Get(workspaceID)
	if ws == nil {
		return false
	}
	wasEmpty := ws.IsEmpty()
	if !ws.AddSession(sessionID) {
		return false
	}
	if wasEmpty {
		ws.SetFocus(sessionID)
	}
	return true
}

// RemoveSession removes a session from a workspace, applying the focus
// tie-break in Workspace.RemoveSession. Returns false if the workspace
// does not exist or the session was not a member.
func (m *Manager) RemoveSession(workspaceID int, sessionID string) bool {
	ws := m.Get(workspaceID)
	if ws == nil {
		return false
	}
	return ws.RemoveSession(sessionID)
}

// MoveSession moves a session between workspaces. Both workspaces must
// exist and the session must be a member of the source before anything is
// mutated; on any failed precondition both sides are left untouched. If
// the destination was empty the moved session becomes its focus.
func (m *Manager) MoveSession(sessionID string, fromID, toID int) bool {
	from := m.Get(fromID)
	to := m.Get(toID)
	if from == nil || to == nil || !from.Contains(sessionID) {
		return false
	}
	if fromID == toID {
		return true
	}

	wasEmpty := to.IsEmpty()
	from.RemoveSession(sessionID)
	to.AddSession(sessionID)
	if wasEmpty {
		to.SetFocus(sessionID)
	}
	return true
}

// SessionWorkspace returns the workspace containing the session, scanning
// slots in order, or nil if no workspace holds it.
func (m *Manager) SessionWorkspace(sessionID string) *Workspace {
	for _, ws := range m.workspaces {
		if ws.Contains(sessionID) {
			return ws
		}
	}
	return nil
}

// All returns the workspaces in slot order. The returned slice is a copy;
// the workspaces themselves are shared.
func (m *Manager) All() []*Workspace {
	out := make([]*Workspace, NumWorkspaces)
	copy(out, m.workspaces[:])
	return out
}

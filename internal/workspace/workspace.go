// Package workspace implements the membership and focus model: nine fixed
// workspaces, each holding an ordered list of session ids, a focused
// session and a layout mode. This package is the source of truth for which
// sessions live where; the layout package derives presentation state from
// it and must be resynchronized on every membership change.
package workspace

import (
	"fmt"
	"time"

	"github.com/wallon-qodo/multi-term-sub000/internal/layout"
)

// NumWorkspaces is the fixed number of workspace slots. Workspaces are
// numbered 1 through NumWorkspaces and live for the whole process.
const NumWorkspaces = 9

// Workspace is one numbered container of sessions. The session id order is
// significant: it is the tab strip order and the seed order for monocle
// cycling. FocusedSessionID is empty when nothing is focused and otherwise
// always names a current member.
type Workspace struct {
	ID               int
	Name             string
	SessionIDs       []string
	FocusedSessionID string
	Mode             layout.Mode
	CreatedAt        time.Time
	ModifiedAt       time.Time
}

// NewWorkspace creates a workspace with the given slot number and name.
// Slot numbers outside [1, NumWorkspaces] are rejected.
func NewWorkspace(id int, name string) (*Workspace, error) {
	if id < 1 || id > NumWorkspaces {
		return nil, fmt.Errorf("workspace id %d out of range 1-%d", id, NumWorkspaces)
	}
	now := time.Now()
	return &Workspace{
		ID:         id,
		Name:       name,
		Mode:       layout.ModeTiled,
		CreatedAt:  now,
		ModifiedAt: now,
	}, nil
}

// AddSession appends a session to the workspace. Adding a session that is
// already a member is a no-op. Returns true if the membership changed.
func (w *Workspace) AddSession(sessionID string) bool {
	if w.Contains(sessionID) {
		return false
	}
	w.SessionIDs = append(w.SessionIDs, sessionID)
	w.touch()
	return true
}

// RemoveSession drops a session from the workspace. If the removed session
// was focused, focus moves to the member now occupying its old index, or
// the last member when it was at the end, or nothing when the workspace is
// left empty. Returns true if a removal occurred.
func (w *Workspace) RemoveSession(sessionID string) bool {
	index := w.indexOf(sessionID)
	if index < 0 {
		return false
	}

	w.SessionIDs = append(w.SessionIDs[:index], w.SessionIDs[index+1:]...)

	if w.FocusedSessionID == sessionID {
		if len(w.SessionIDs) == 0 {
			w.FocusedSessionID = ""
		} else {
			w.FocusedSessionID = w.SessionIDs[min(index, len(w.SessionIDs)-1)]
		}
	}

	w.touch()
	return true
}

// SetFocus focuses a member session. An empty id always succeeds and
// clears focus; a concrete id succeeds only for a current member and
// otherwise leaves the workspace untouched.
func (w *Workspace) SetFocus(sessionID string) bool {
	if sessionID == "" {
		w.FocusedSessionID = ""
		w.touch()
		return true
	}
	if !w.Contains(sessionID) {
		return false
	}
	w.FocusedSessionID = sessionID
	w.touch()
	return true
}

// Contains reports whether the session is a member of this workspace.
func (w *Workspace) Contains(sessionID string) bool {
	return w.indexOf(sessionID) >= 0
}

// IsEmpty reports whether the workspace holds no sessions.
func (w *Workspace) IsEmpty() bool {
	return len(w.SessionIDs) == 0
}

// Membership returns the slice of workspace truth the layout manager
// consumes when computing geometry.
func (w *Workspace) Membership() layout.Membership {
	return layout.Membership{
		WorkspaceID: w.ID,
		SessionIDs:  w.SessionIDs,
		FocusedID:   w.FocusedSessionID,
	}
}

func (w *Workspace) indexOf(sessionID string) int {
	for i, id := range w.SessionIDs {
		if id == sessionID {
			return i
		}
	}
	return -1
}

func (w *Workspace) touch() {
	w.ModifiedAt = time.Now()
}

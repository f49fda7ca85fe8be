// Package snapshot persists the arrangement of workspaces and panes so a
// session can be restored after a restart. Only the shape is recorded: which
// commands ran where, in what order, and what had focus. The snapshot replays
// through the workspace and layout managers, so restored trees are rebuilt by
// the same insertion path that built the originals.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/wallon-qodo/multi-term-sub000/internal/layout"
	"github.com/wallon-qodo/multi-term-sub000/internal/session"
	"github.com/wallon-qodo/multi-term-sub000/internal/workspace"
)

// PaneSnapshot records one pane in insertion order.
type PaneSnapshot struct {
	Title   string `toml:"title"`
	Command string `toml:"command"`
	Dir     string `toml:"dir,omitempty"`
	Focused bool   `toml:"focused"`
}

// WorkspaceSnapshot records one workspace slot. Empty workspaces are omitted
// from the snapshot entirely.
type WorkspaceSnapshot struct {
	ID    int            `toml:"id"`
	Name  string         `toml:"name"`
	Mode  string         `toml:"mode"`
	Panes []PaneSnapshot `toml:"panes"`
}

// Snapshot is the full persisted state.
type Snapshot struct {
	SavedAt         time.Time           `toml:"saved_at"`
	ActiveWorkspace int                 `toml:"active_workspace"`
	Workspaces      []WorkspaceSnapshot `toml:"workspaces,omitempty"`
}

// StatePath returns the snapshot location under the XDG state directory.
func StatePath() string {
	return filepath.Join(xdg.StateHome, "multiterm", "state.toml")
}

// Capture builds a snapshot from the live managers. Sessions missing from the
// registry are skipped rather than recorded as dead panes.
func Capture(wm *workspace.Manager, reg *session.Registry) *Snapshot {
	snap := &Snapshot{
		SavedAt:         time.Now(),
		ActiveWorkspace: wm.ActiveID(),
	}

	for _, ws := range wm.All() {
		if ws.IsEmpty() {
			continue
		}

		wsnap := WorkspaceSnapshot{
			ID:   ws.ID,
			Name: ws.Name,
			Mode: ws.Mode.String(),
		}
		for _, id := range ws.SessionIDs {
			sess, ok := reg.Get(id)
			if !ok {
				continue
			}
			wsnap.Panes = append(wsnap.Panes, PaneSnapshot{
				Title:   sess.Title,
				Command: sess.Command,
				Dir:     sess.Dir,
				Focused: id == ws.FocusedSessionID,
			})
		}
		if len(wsnap.Panes) > 0 {
			snap.Workspaces = append(snap.Workspaces, wsnap)
		}
	}

	return snap
}

// Save writes the snapshot, creating parent directories as needed.
func (s *Snapshot) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

// Load reads a snapshot from disk. A missing file returns (nil, nil) so
// callers can treat first launch and restored launch uniformly.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := toml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	return &snap, nil
}

// Restore replays a snapshot into live managers. Each pane is created fresh
// in the registry and inserted in recorded order, so split geometry comes out
// the same as when the snapshot was taken. Workspaces with invalid slots or
// unparseable modes are skipped. Returns the number of panes restored.
func Restore(snap *Snapshot, wm *workspace.Manager, lm *layout.Manager, reg *session.Registry) int {
	if snap == nil {
		return 0
	}

	restored := 0
	for _, wsnap := range snap.Workspaces {
		ws := wm.Get(wsnap.ID)
		if ws == nil {
			continue
		}
		mode, err := layout.ParseMode(wsnap.Mode)
		if err != nil {
			continue
		}

		if wsnap.Name != "" {
			ws.Name = wsnap.Name
		}
		ws.Mode = mode
		lm.SetMode(wsnap.ID, mode)

		var focusID string
		for _, pane := range wsnap.Panes {
			sess := reg.Create(pane.Title, pane.Command, pane.Dir)
			wm.AddSession(wsnap.ID, sess.ID)
			lm.AddSession(wsnap.ID, sess.ID)
			if pane.Focused {
				focusID = sess.ID
			}
			restored++
		}
		if focusID != "" {
			ws.SetFocus(focusID)
		}
	}

	wm.SetActive(snap.ActiveWorkspace)
	return restored
}

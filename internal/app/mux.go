// Package app provides the core multiterm application logic: the Bubble Tea
// model that ties session, workspace, and layout state together.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wallon-qodo/multi-term-sub000/internal/config"
	"github.com/wallon-qodo/multi-term-sub000/internal/layout"
	"github.com/wallon-qodo/multi-term-sub000/internal/session"
	"github.com/wallon-qodo/multi-term-sub000/internal/snapshot"
	"github.com/wallon-qodo/multi-term-sub000/internal/workspace"
)

// StatusBarHeight is the number of rows reserved at the bottom of the screen.
const StatusBarHeight = 1

// statusDuration is how long a transient status message stays visible.
const statusDuration = 3 * time.Second

// Options configures a new Mux.
type Options struct {
	Config       *config.Config
	Logger       *log.Logger
	SnapshotPath string // empty disables persistence
	Restore      *snapshot.Snapshot
}

// Mux is the main application state. It owns the three managers and routes
// every user action through them: membership changes go to the workspace
// manager first, then to the layout manager, so the two never disagree about
// which sessions exist.
type Mux struct {
	Config     *config.Config
	Sessions   *session.Registry
	Workspaces *workspace.Manager
	Layouts    *layout.Manager

	Width  int
	Height int

	PrefixActive bool      // true after the prefix key, next key is a command
	Renaming     bool      // true while typing a new title for the focused pane
	ShowHelp     bool      // true while the keybinding overlay is open
	RenameBuffer string    // pending title text
	StatusText   string    // transient message shown in the status bar
	StatusUntil  time.Time // when the status message expires

	SnapshotPath string
	logger       *log.Logger
}

// NewMux creates the application model. The layout manager starts with a
// placeholder viewport; the first WindowSizeMsg sets the real one.
func NewMux(opts Options) (*Mux, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	lm, err := layout.NewManager(80, 24)
	if err != nil {
		return nil, fmt.Errorf("failed to create layout manager: %w", err)
	}

	m := &Mux{
		Config:       cfg,
		Sessions:     session.NewRegistry(),
		Workspaces:   workspace.NewManager(cfg.Workspaces.Names),
		Layouts:      lm,
		SnapshotPath: opts.SnapshotPath,
		logger:       logger,
	}

	defaultMode := cfg.DefaultModeValue()
	for _, ws := range m.Workspaces.All() {
		ws.Mode = defaultMode
		m.Layouts.SetMode(ws.ID, defaultMode)
	}

	if opts.Restore != nil {
		n := snapshot.Restore(opts.Restore, m.Workspaces, m.Layouts, m.Sessions)
		if n > 0 {
			logger.Info("restored previous session", "panes", n)
			m.setStatus(fmt.Sprintf("Restored %d panes", n))
		}
	}

	return m, nil
}

// ActiveWorkspace returns the workspace the user is looking at.
func (m *Mux) ActiveWorkspace() *workspace.Workspace {
	return m.Workspaces.Active()
}

// FocusedSession returns the focused session in the active workspace, or nil.
func (m *Mux) FocusedSession() *session.Session {
	ws := m.ActiveWorkspace()
	if ws == nil || ws.FocusedSessionID == "" {
		return nil
	}
	sess, ok := m.Sessions.Get(ws.FocusedSessionID)
	if !ok {
		return nil
	}
	return sess
}

// SaveSnapshot persists the current arrangement if persistence is enabled.
func (m *Mux) SaveSnapshot() error {
	if m.SnapshotPath == "" {
		return nil
	}
	snap := snapshot.Capture(m.Workspaces, m.Sessions)
	if err := snap.Save(m.SnapshotPath); err != nil {
		m.logger.Error("failed to save snapshot", "err", err)
		return err
	}
	m.logger.Debug("saved snapshot", "path", m.SnapshotPath)
	return nil
}

func (m *Mux) setStatus(text string) {
	m.StatusText = text
	m.StatusUntil = time.Now().Add(statusDuration)
}

// viewportHeight is the screen height minus the status bar, when one is
// shown. Panes get the full height otherwise.
func (m *Mux) viewportHeight() int {
	h := m.Height
	if m.Config.Appearance.ShowStatusBar {
		h -= StatusBarHeight
	}
	return max(1, h)
}

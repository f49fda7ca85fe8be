package layout

import "fmt"

// NumWorkspaces mirrors the fixed workspace slot count. The manager
// pre-creates state for every slot at construction, so workspace ids need
// validating exactly once.
const NumWorkspaces = 9

// Membership is the slice of workspace truth the manager needs to compute
// geometry: which sessions the workspace holds, in presentation order, and
// which of them is focused. The workspace package produces these.
type Membership struct {
	WorkspaceID int
	SessionIDs  []string
	FocusedID   string
}

// Manager owns the per-workspace layout state and the viewport, dispatches
// layout computation per mode and serves cache hits. All mutators clear
// the affected cache; only Apply repopulates it.
//
// Manager is not safe for concurrent use; the UI event loop is its single
// caller.
type Manager struct {
	width  int
	height int
	states [NumWorkspaces]*workspaceState
}

// NewManager creates layout state for all workspace slots against the
// given viewport. Dimensions below one cell are rejected.
func NewManager(width, height int) (*Manager, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid viewport size %dx%d", width, height)
	}
	m := &Manager{width: width, height: height}
	for i := range m.states {
		m.states[i] = newWorkspaceState(ModeTiled)
	}
	return m, nil
}

func (m *Manager) state(workspaceID int) *workspaceState {
	if workspaceID < 1 || workspaceID > NumWorkspaces {
		return nil
	}
	return m.states[workspaceID-1]
}

// Viewport returns the rectangle currently being partitioned.
func (m *Manager) Viewport() Rect {
	return Rect{X: 0, Y: 0, Width: m.width, Height: m.height}
}

// SetViewportSize updates the viewport and clears every workspace's cache,
// since all cached geometry is viewport-dependent. Dimensions below one
// cell are rejected without touching anything.
func (m *Manager) SetViewportSize(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid viewport size %dx%d", width, height)
	}
	m.width = width
	m.height = height
	for _, st := range m.states {
		st.invalidate()
	}
	return nil
}

// Apply returns the session layouts for a workspace. A valid cache is
// served as-is unless force is set; otherwise geometry is recomputed for
// the workspace's current mode, cached and returned.
func (m *Manager) Apply(ms Membership, force bool) []SessionLayout {
	st := m.state(ms.WorkspaceID)
	if st == nil {
		return nil
	}
	if !force && !st.dirty && st.lastLayouts != nil {
		return st.lastLayouts
	}

	var layouts []SessionLayout
	switch st.mode {
	case ModeTiled:
		layouts = m.applyTiled(st, ms)
	case ModeMonocle:
		st.syncStack(ms.SessionIDs)
		layouts = stackLayouts(st.stackOrder, st.stackIndex, ms.FocusedID, m.Viewport())
	case ModeTabbed:
		if st.tabIndex >= len(ms.SessionIDs) {
			st.tabIndex = len(ms.SessionIDs) - 1
		}
		if st.tabIndex < 0 {
			st.tabIndex = 0
		}
		layouts = tabLayouts(ms.SessionIDs, st.tabIndex, ms.FocusedID, m.Viewport())
	}

	st.lastLayouts = layouts
	st.dirty = false
	return layouts
}

// applyTiled projects the workspace's BSP tree onto the viewport. Every
// member gets an entry; a member that somehow has no pane (tree out of
// sync) is reported hidden rather than dropped.
func (m *Manager) applyTiled(st *workspaceState, ms Membership) []SessionLayout {
	rects := ProjectTree(st.tree.Root(), m.Viewport())
	layouts := make([]SessionLayout, 0, len(ms.SessionIDs))
	for _, id := range ms.SessionIDs {
		rect, ok := rects[id]
		if !ok {
			rect = m.Viewport()
		}
		layouts = append(layouts, SessionLayout{
			SessionID: id,
			Rect:      rect,
			Visible:   ok,
			Focused:   id == ms.FocusedID,
			TabIndex:  -1,
		})
	}
	return layouts
}

// FocusedLayout returns the layout entry for the workspace's focused
// session, computing layouts if the cache is stale. The second return is
// false when nothing is focused or the focused id has no entry.
func (m *Manager) FocusedLayout(ms Membership) (SessionLayout, bool) {
	if ms.FocusedID == "" {
		return SessionLayout{}, false
	}
	for _, sl := range m.Apply(ms, false) {
		if sl.SessionID == ms.FocusedID {
			return sl, true
		}
	}
	return SessionLayout{}, false
}

// AddSession inserts a session into every per-mode structure of a
// workspace — the BSP tree and the stack order — so whichever mode is
// selected later is already consistent. Returns false for an unknown
// workspace or a session already present.
func (m *Manager) AddSession(workspaceID int, sessionID string) bool {
	st := m.state(workspaceID)
	if st == nil {
		return false
	}
	if !st.tree.InsertSpiral(sessionID) {
		return false
	}
	st.stackOrder = append(st.stackOrder, sessionID)
	st.invalidate()
	return true
}

// RemoveSession removes a session from every per-mode structure of a
// workspace. Returns false if the session was in none of them.
func (m *Manager) RemoveSession(workspaceID int, sessionID string) bool {
	st := m.state(workspaceID)
	if st == nil {
		return false
	}
	inTree := st.tree.Remove(sessionID)
	inStack := st.removeFromStack(sessionID)
	if !inTree && !inStack {
		return false
	}
	st.invalidate()
	return true
}

// CycleStack advances the monocle cursor by direction (+1 or -1), wrapping
// around the stack. Valid only in monocle mode with a non-empty stack.
func (m *Manager) CycleStack(workspaceID int, direction int) bool {
	st := m.state(workspaceID)
	if st == nil || st.mode != ModeMonocle || len(st.stackOrder) == 0 {
		return false
	}
	n := len(st.stackOrder)
	st.stackIndex = ((st.stackIndex+direction)%n + n) % n
	st.invalidate()
	return true
}

// SwitchTab moves the tab cursor. Negative indexes are rejected; an index
// past the end is kept and clamped by the next Apply, which knows the
// member count.
func (m *Manager) SwitchTab(workspaceID int, index int) bool {
	st := m.state(workspaceID)
	if st == nil || index < 0 {
		return false
	}
	st.tabIndex = index
	st.invalidate()
	return true
}

// SetMode switches a workspace's layout discipline. Entering monocle or
// tabbed resets that mode's cursor; entering tiled resets nothing, since
// the BSP tree is kept live across mode changes. Switching to the current
// mode is a no-op.
func (m *Manager) SetMode(workspaceID int, mode Mode) bool {
	st := m.state(workspaceID)
	if st == nil {
		return false
	}
	if st.mode == mode {
		return true
	}
	st.mode = mode
	switch mode {
	case ModeMonocle:
		st.stackIndex = 0
	case ModeTabbed:
		st.tabIndex = 0
	}
	st.invalidate()
	return true
}

// Mode returns a workspace's current layout discipline.
func (m *Manager) Mode(workspaceID int) Mode {
	st := m.state(workspaceID)
	if st == nil {
		return ModeTiled
	}
	return st.mode
}

// AdjustSplit rebalances the split directly above the focused session by
// delta (sign carries the direction). Valid only in tiled mode.
func (m *Manager) AdjustSplit(workspaceID int, focusedID string, delta float64) bool {
	st := m.state(workspaceID)
	if st == nil || st.mode != ModeTiled {
		return false
	}
	if !st.tree.Rebalance(focusedID, delta) {
		return false
	}
	st.invalidate()
	return true
}

// SwapPanes exchanges two sessions' panes in a workspace's tiling without
// touching the tree shape.
func (m *Manager) SwapPanes(workspaceID int, a, b string) bool {
	st := m.state(workspaceID)
	if st == nil {
		return false
	}
	if !st.tree.SwapPanes(a, b) {
		return false
	}
	st.invalidate()
	return true
}

// Tree exposes a workspace's BSP tree for tests and the renderer's pane
// ordering. Callers must not mutate it directly.
func (m *Manager) Tree(workspaceID int) *BSPTree {
	st := m.state(workspaceID)
	if st == nil {
		return nil
	}
	return st.tree
}

// StackOrder returns a copy of a workspace's monocle order.
func (m *Manager) StackOrder(workspaceID int) []string {
	st := m.state(workspaceID)
	if st == nil {
		return nil
	}
	out := make([]string, len(st.stackOrder))
	copy(out, st.stackOrder)
	return out
}

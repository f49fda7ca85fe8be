package layout

import "time"

// workspaceState is the per-workspace presentation bookkeeping. The BSP
// tree stays live even while another mode is active, so switching back to
// tiled restores the prior tiling exactly. The cache holds the result of
// the last Apply and is cleared, never recomputed, by every mutator.
type workspaceState struct {
	mode       Mode
	tree       *BSPTree
	stackOrder []string
	stackIndex int
	tabIndex   int

	lastLayouts []SessionLayout
	dirty       bool
	modifiedAt  time.Time
}

func newWorkspaceState(mode Mode) *workspaceState {
	return &workspaceState{
		mode:       mode,
		tree:       NewBSPTree(),
		dirty:      true,
		modifiedAt: time.Now(),
	}
}

// invalidate drops the cached layouts so the next Apply recomputes them.
func (s *workspaceState) invalidate() {
	s.lastLayouts = nil
	s.dirty = true
	s.modifiedAt = time.Now()
}

// syncStack reconciles the stack order with the workspace's current
// members: ids no longer present are dropped with relative order
// preserved, new ids are appended, and the cursor is clamped back into
// range.
func (s *workspaceState) syncStack(memberIDs []string) {
	members := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	kept := s.stackOrder[:0]
	known := make(map[string]bool, len(s.stackOrder))
	for _, id := range s.stackOrder {
		if members[id] {
			kept = append(kept, id)
			known[id] = true
		}
	}
	s.stackOrder = kept

	for _, id := range memberIDs {
		if !known[id] {
			s.stackOrder = append(s.stackOrder, id)
		}
	}

	if s.stackIndex >= len(s.stackOrder) {
		s.stackIndex = len(s.stackOrder) - 1
	}
	if s.stackIndex < 0 {
		s.stackIndex = 0
	}
}

// removeFromStack drops one id from the stack order, clamping the cursor.
func (s *workspaceState) removeFromStack(sessionID string) bool {
	for i, id := range s.stackOrder {
		if id == sessionID {
			s.stackOrder = append(s.stackOrder[:i], s.stackOrder[i+1:]...)
			if s.stackIndex >= len(s.stackOrder) && s.stackIndex > 0 {
				s.stackIndex = len(s.stackOrder) - 1
			}
			return true
		}
	}
	return false
}

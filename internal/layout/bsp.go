package layout

// BSPNode is a node in a binary space partitioning tree. A node is either a
// leaf holding a session id, or a split holding a direction, a ratio and
// exactly two children. Exactly one of the two shapes is active at a time:
// IsLeaf distinguishes them.
type BSPNode struct {
	SessionID string
	Direction SplitDirection
	Ratio     float64
	Left      *BSPNode
	Right     *BSPNode
}

// IsLeaf reports whether the node holds a session rather than a split.
func (n *BSPNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Split ratio bounds for Rebalance. Creation always uses 0.5; clamping only
// applies when a split is explicitly rebalanced.
const (
	MinSplitRatio = 0.1
	MaxSplitRatio = 0.9
)

// BSPTree tiles a workspace by recursively splitting panes. Leaves are
// sessions, internal nodes are splits. The tree keeps a session-id to node
// map for O(1) lookup; its key set always equals the set of leaf ids.
//
// BSPTree is not safe for concurrent use; the manager that owns it runs on
// a single goroutine.
type BSPTree struct {
	root       *BSPNode
	panes      map[string]*BSPNode
	insertions int
}

// NewBSPTree returns an empty tree.
func NewBSPTree() *BSPTree {
	return &BSPTree{panes: make(map[string]*BSPNode)}
}

// InsertSpiral adds a session using the auto-tiling policy: the newest pane
// is split in half, alternating the split axis on every insertion. Returns
// false if the id is already in the tree.
func (t *BSPTree) InsertSpiral(sessionID string) bool {
	if _, ok := t.panes[sessionID]; ok {
		return false
	}

	if t.root == nil {
		leaf := &BSPNode{SessionID: sessionID}
		t.root = leaf
		t.panes[sessionID] = leaf
		return true
	}

	direction := SplitVertical
	if t.insertions%2 != 0 {
		direction = SplitHorizontal
	}
	t.insertions++

	// The node that was a leaf becomes the split; its payload moves into
	// the left child so any existing map entries for deeper panes stay
	// valid without rewriting.
	target := t.newestLeaf()
	left := &BSPNode{SessionID: target.SessionID}
	right := &BSPNode{SessionID: sessionID}

	target.SessionID = ""
	target.Direction = direction
	target.Ratio = 0.5
	target.Left = left
	target.Right = right

	t.panes[left.SessionID] = left
	t.panes[right.SessionID] = right
	return true
}

// newestLeaf walks from the root always preferring the right child; the
// rightmost leaf is the most recently created pane.
func (t *BSPTree) newestLeaf() *BSPNode {
	node := t.root
	for !node.IsLeaf() {
		if node.Right != nil {
			node = node.Right
		} else {
			node = node.Left
		}
	}
	return node
}

// Remove deletes a session's pane and collapses the split that held it, so
// the sibling (leaf or whole subtree) takes over the freed space. Returns
// false if the session is not in the tree.
func (t *BSPTree) Remove(sessionID string) bool {
	node, ok := t.panes[sessionID]
	if !ok {
		return false
	}

	if node == t.root {
		t.Clear()
		return true
	}

	parent := t.findParent(t.root, node)
	if parent == nil {
		// Map pointed at a node the root can no longer reach; repair the
		// map and report the session gone.
		delete(t.panes, sessionID)
		return false
	}

	sibling := parent.Left
	if sibling == node {
		sibling = parent.Right
	}

	// Promote the sibling's contents onto the parent node. Child pointers
	// are moved, not copied, so identity of any deeper subtree survives.
	parent.SessionID = sibling.SessionID
	parent.Direction = sibling.Direction
	parent.Ratio = sibling.Ratio
	parent.Left = sibling.Left
	parent.Right = sibling.Right

	if parent.IsLeaf() {
		t.panes[parent.SessionID] = parent
	}
	delete(t.panes, sessionID)
	return true
}

// findParent locates the split whose child is the given node by walking
// from the root and comparing child references.
func (t *BSPTree) findParent(current, node *BSPNode) *BSPNode {
	if current == nil || current.IsLeaf() {
		return nil
	}
	if current.Left == node || current.Right == node {
		return current
	}
	if found := t.findParent(current.Left, node); found != nil {
		return found
	}
	return t.findParent(current.Right, node)
}

// Rebalance adjusts the ratio of the split directly above a session's pane
// by delta, clamped to [MinSplitRatio, MaxSplitRatio]. Ancestors are left
// untouched. Returns false if the session is absent or is the sole pane.
func (t *BSPTree) Rebalance(sessionID string, delta float64) bool {
	node, ok := t.panes[sessionID]
	if !ok {
		return false
	}

	parent := t.findParent(t.root, node)
	if parent == nil {
		return false
	}

	parent.Ratio += delta
	if parent.Ratio < MinSplitRatio {
		parent.Ratio = MinSplitRatio
	} else if parent.Ratio > MaxSplitRatio {
		parent.Ratio = MaxSplitRatio
	}
	return true
}

// SwapPanes exchanges the sessions held by two panes in place. The tree
// topology, directions and ratios are unchanged. Returns false unless both
// sessions are present and distinct.
func (t *BSPTree) SwapPanes(a, b string) bool {
	nodeA, okA := t.panes[a]
	nodeB, okB := t.panes[b]
	if !okA || !okB || nodeA == nodeB {
		return false
	}

	nodeA.SessionID, nodeB.SessionID = nodeB.SessionID, nodeA.SessionID
	t.panes[a] = nodeB
	t.panes[b] = nodeA
	return true
}

// Panes returns the session ids of all leaves in left-to-right tree order.
func (t *BSPTree) Panes() []string {
	ids := make([]string, 0, len(t.panes))
	var walk func(n *BSPNode)
	walk = func(n *BSPNode) {
		if n == nil {
			return
		}
		if n.IsLeaf() {
			ids = append(ids, n.SessionID)
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(t.root)
	return ids
}

// PaneCount returns the number of sessions in the tree.
func (t *BSPTree) PaneCount() int {
	return len(t.panes)
}

// IsEmpty reports whether the tree has no panes.
func (t *BSPTree) IsEmpty() bool {
	return t.root == nil
}

// Root returns the root node, or nil for an empty tree. The projector walks
// the tree through this; callers must not restructure it directly.
func (t *BSPTree) Root() *BSPNode {
	return t.root
}

// Clear resets the tree to empty, including the insertion counter, so the
// next session starts a fresh spiral.
func (t *BSPTree) Clear() {
	t.root = nil
	t.panes = make(map[string]*BSPNode)
	t.insertions = 0
}

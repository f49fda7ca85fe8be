package layout_test

import (
	"sort"
	"testing"

	"github.com/wallon-qodo/multi-term-sub000/internal/layout"
)

// =============================================================================
// Insertion Tests
// =============================================================================

func TestInsertSpiral_FirstSessionBecomesRoot(t *testing.T) {
	tree := layout.NewBSPTree()

	if !tree.InsertSpiral("a") {
		t.Fatal("Expected first insert to succeed")
	}

	root := tree.Root()
	if root == nil {
		t.Fatal("Expected non-nil root after insert")
	}
	if !root.IsLeaf() || root.SessionID != "a" {
		t.Errorf("Expected root to be leaf 'a', got leaf=%v id=%q", root.IsLeaf(), root.SessionID)
	}
	if tree.PaneCount() != 1 {
		t.Errorf("Expected 1 pane, got %d", tree.PaneCount())
	}
}

func TestInsertSpiral_DuplicateRejected(t *testing.T) {
	tree := layout.NewBSPTree()
	tree.InsertSpiral("a")

	if tree.InsertSpiral("a") {
		t.Error("Expected duplicate insert to be rejected")
	}
	if tree.PaneCount() != 1 {
		t.Errorf("Expected 1 pane after duplicate insert, got %d", tree.PaneCount())
	}
}

func TestInsertSpiral_AlternatesSplitDirection(t *testing.T) {
	tree := layout.NewBSPTree()
	for _, id := range []string{"a", "b", "c", "d"} {
		tree.InsertSpiral(id)
	}

	// 2nd insert splits vertically, 3rd horizontally, 4th vertically again.
	root := tree.Root()
	if root.IsLeaf() {
		t.Fatal("Expected root to be a split")
	}
	if root.Direction != layout.SplitVertical {
		t.Errorf("Expected root split to be vertical, got %v", root.Direction)
	}

	second := root.Right
	if second.IsLeaf() {
		t.Fatal("Expected second split below root right child")
	}
	if second.Direction != layout.SplitHorizontal {
		t.Errorf("Expected second split to be horizontal, got %v", second.Direction)
	}

	third := second.Right
	if third.IsLeaf() {
		t.Fatal("Expected third split below second right child")
	}
	if third.Direction != layout.SplitVertical {
		t.Errorf("Expected third split to be vertical, got %v", third.Direction)
	}
}

func TestInsertSpiral_SplitsNewestPane(t *testing.T) {
	tree := layout.NewBSPTree()
	tree.InsertSpiral("a")
	tree.InsertSpiral("b")
	tree.InsertSpiral("c")

	// The spiral always splits the most recently created pane, so "b"
	// shares its old half with "c" while "a" keeps the left side.
	root := tree.Root()
	if root.Left == nil || !root.Left.IsLeaf() || root.Left.SessionID != "a" {
		t.Error("Expected 'a' to keep the left half of the root split")
	}
	sub := root.Right
	if sub == nil || sub.IsLeaf() {
		t.Fatal("Expected right child to be a split")
	}
	if sub.Left.SessionID != "b" || sub.Right.SessionID != "c" {
		t.Errorf("Expected sub-split to hold b|c, got %q|%q", sub.Left.SessionID, sub.Right.SessionID)
	}
}

func TestInsertSpiral_NewSplitsUseHalfRatio(t *testing.T) {
	tree := layout.NewBSPTree()
	tree.InsertSpiral("a")
	tree.InsertSpiral("b")

	if got := tree.Root().Ratio; got != 0.5 {
		t.Errorf("Expected new split ratio 0.5, got %v", got)
	}
}

// =============================================================================
// Removal Tests
// =============================================================================

func TestRemove_CollapsesSplit(t *testing.T) {
	tree := layout.NewBSPTree()
	tree.InsertSpiral("a")
	tree.InsertSpiral("b")
	tree.InsertSpiral("c")

	if !tree.Remove("b") {
		t.Fatal("Expected removal of 'b' to succeed")
	}

	panes := tree.Panes()
	if len(panes) != 2 {
		t.Fatalf("Expected 2 panes after removal, got %d", len(panes))
	}
	sort.Strings(panes)
	if panes[0] != "a" || panes[1] != "c" {
		t.Errorf("Expected panes {a, c}, got %v", panes)
	}

	// No orphaned internal node: the surviving sibling leaf was promoted
	// onto its parent, so the root split holds exactly two leaves.
	root := tree.Root()
	if root.IsLeaf() {
		t.Fatal("Expected root to still be a split")
	}
	if !root.Left.IsLeaf() || !root.Right.IsLeaf() {
		t.Error("Expected both children to be leaves after collapse")
	}
}

func TestRemove_DeepSiblingSubtreeSurvives(t *testing.T) {
	tree := layout.NewBSPTree()
	for _, id := range []string{"a", "b", "c", "d"} {
		tree.InsertSpiral(id)
	}

	// Removing "a" promotes the whole b/c/d subtree onto the root.
	if !tree.Remove("a") {
		t.Fatal("Expected removal of 'a' to succeed")
	}
	if tree.PaneCount() != 3 {
		t.Fatalf("Expected 3 panes, got %d", tree.PaneCount())
	}
	got := tree.Panes()
	sort.Strings(got)
	want := []string{"b", "c", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected panes %v, got %v", want, got)
		}
	}
}

func TestRemove_LastPaneEmptiesTree(t *testing.T) {
	tree := layout.NewBSPTree()
	tree.InsertSpiral("a")

	if !tree.Remove("a") {
		t.Fatal("Expected removal to succeed")
	}
	if !tree.IsEmpty() {
		t.Error("Expected tree to be empty")
	}
	if tree.Root() != nil {
		t.Error("Expected nil root after removing last pane")
	}
}

func TestRemove_MissingSessionIsNoOp(t *testing.T) {
	tree := layout.NewBSPTree()
	tree.InsertSpiral("a")

	if tree.Remove("ghost") {
		t.Error("Expected removal of unknown session to fail")
	}
	if tree.PaneCount() != 1 {
		t.Errorf("Expected tree unchanged, got %d panes", tree.PaneCount())
	}
}

// =============================================================================
// Consistency Tests
// =============================================================================

func TestTreeMapConsistency_AfterMixedOperations(t *testing.T) {
	tree := layout.NewBSPTree()

	ops := []struct {
		insert bool
		id     string
	}{
		{true, "a"}, {true, "b"}, {true, "c"}, {false, "b"},
		{true, "d"}, {true, "e"}, {false, "a"}, {false, "e"},
		{true, "f"}, {false, "missing"},
	}

	live := map[string]bool{}
	for _, op := range ops {
		if op.insert {
			tree.InsertSpiral(op.id)
			live[op.id] = true
		} else {
			tree.Remove(op.id)
			delete(live, op.id)
		}

		panes := tree.Panes()
		if len(panes) != len(live) {
			t.Fatalf("After op %+v: expected %d panes, got %d", op, len(live), len(panes))
		}
		if tree.PaneCount() != len(live) {
			t.Fatalf("After op %+v: pane count %d disagrees with expected %d", op, tree.PaneCount(), len(live))
		}
		for _, id := range panes {
			if !live[id] {
				t.Fatalf("After op %+v: unexpected pane %q", op, id)
			}
		}
		assertWellFormed(t, tree.Root())
	}
}

// assertWellFormed checks that every split node has exactly two children.
func assertWellFormed(t *testing.T, node *layout.BSPNode) {
	t.Helper()
	if node == nil || node.IsLeaf() {
		return
	}
	if node.Left == nil || node.Right == nil {
		t.Fatal("Split node with a missing child")
	}
	assertWellFormed(t, node.Left)
	assertWellFormed(t, node.Right)
}

// =============================================================================
// Rebalance / Swap Tests
// =============================================================================

func TestRebalance_ClampsRatio(t *testing.T) {
	tree := layout.NewBSPTree()
	tree.InsertSpiral("a")
	tree.InsertSpiral("b")

	if !tree.Rebalance("b", 10) {
		t.Fatal("Expected rebalance to succeed")
	}
	if got := tree.Root().Ratio; got != layout.MaxSplitRatio {
		t.Errorf("Expected ratio clamped to %v, got %v", layout.MaxSplitRatio, got)
	}

	if !tree.Rebalance("b", -10) {
		t.Fatal("Expected rebalance to succeed")
	}
	if got := tree.Root().Ratio; got != layout.MinSplitRatio {
		t.Errorf("Expected ratio clamped to %v, got %v", layout.MinSplitRatio, got)
	}
}

func TestRebalance_OnlyAdjustsImmediateParent(t *testing.T) {
	tree := layout.NewBSPTree()
	tree.InsertSpiral("a")
	tree.InsertSpiral("b")
	tree.InsertSpiral("c")

	if !tree.Rebalance("c", 0.2) {
		t.Fatal("Expected rebalance to succeed")
	}
	if got := tree.Root().Ratio; got != 0.5 {
		t.Errorf("Expected root ratio untouched at 0.5, got %v", got)
	}
	if got := tree.Root().Right.Ratio; got < 0.699 || got > 0.701 {
		t.Errorf("Expected parent ratio 0.7, got %v", got)
	}
}

func TestRebalance_SolePaneFails(t *testing.T) {
	tree := layout.NewBSPTree()
	tree.InsertSpiral("a")

	if tree.Rebalance("a", 0.1) {
		t.Error("Expected rebalance of sole pane to fail")
	}
}

func TestSwapPanes_ExchangesPayloadsOnly(t *testing.T) {
	tree := layout.NewBSPTree()
	tree.InsertSpiral("a")
	tree.InsertSpiral("b")
	tree.InsertSpiral("c")

	if !tree.SwapPanes("a", "c") {
		t.Fatal("Expected swap to succeed")
	}

	root := tree.Root()
	if root.Left.SessionID != "c" {
		t.Errorf("Expected 'c' in the left pane, got %q", root.Left.SessionID)
	}
	if root.Right.Right.SessionID != "a" {
		t.Errorf("Expected 'a' in the bottom-right pane, got %q", root.Right.Right.SessionID)
	}

	// Swapped sessions remain individually addressable.
	if !tree.Remove("a") {
		t.Error("Expected map to track 'a' after swap")
	}
	if !tree.Remove("c") {
		t.Error("Expected map to track 'c' after swap")
	}
}

func TestSwapPanes_UnknownSessionFails(t *testing.T) {
	tree := layout.NewBSPTree()
	tree.InsertSpiral("a")
	tree.InsertSpiral("b")

	if tree.SwapPanes("a", "ghost") {
		t.Error("Expected swap with unknown session to fail")
	}
	if tree.SwapPanes("a", "a") {
		t.Error("Expected self-swap to fail")
	}
}

func TestClear_ResetsSpiral(t *testing.T) {
	tree := layout.NewBSPTree()
	tree.InsertSpiral("a")
	tree.InsertSpiral("b")
	tree.Clear()

	if !tree.IsEmpty() {
		t.Fatal("Expected empty tree after Clear")
	}

	// A fresh spiral starts with a vertical split again.
	tree.InsertSpiral("x")
	tree.InsertSpiral("y")
	if got := tree.Root().Direction; got != layout.SplitVertical {
		t.Errorf("Expected first split after Clear to be vertical, got %v", got)
	}
}

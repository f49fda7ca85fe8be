package layout

// TabStripHeight is the number of rows reserved for the tab strip at the
// top of a tabbed workspace.
const TabStripHeight = 1

// ProjectTree walks a BSP tree and assigns each leaf its share of the
// viewport. Splits divide their rectangle along the split axis by ratio:
// the first child gets floor(ratio * extent), the second the remainder.
// Both halves are kept at least one cell wide so every pane stays
// renderable even under extreme ratios or tiny viewports.
//
// A single-leaf tree yields the full viewport; an empty tree yields no
// entries.
func ProjectTree(root *BSPNode, viewport Rect) map[string]Rect {
	rects := make(map[string]Rect)
	projectNode(root, viewport, rects)
	return rects
}

func projectNode(node *BSPNode, rect Rect, rects map[string]Rect) {
	if node == nil {
		return
	}
	if node.IsLeaf() {
		rects[node.SessionID] = rect
		return
	}

	var first, second Rect
	switch node.Direction {
	case SplitVertical:
		leftWidth := clampSpan(int(node.Ratio*float64(rect.Width)), rect.Width)
		first = Rect{X: rect.X, Y: rect.Y, Width: leftWidth, Height: rect.Height}
		second = Rect{X: rect.X + leftWidth, Y: rect.Y, Width: max(1, rect.Width-leftWidth), Height: rect.Height}
	case SplitHorizontal:
		topHeight := clampSpan(int(node.Ratio*float64(rect.Height)), rect.Height)
		first = Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: topHeight}
		second = Rect{X: rect.X, Y: rect.Y + topHeight, Width: rect.Width, Height: max(1, rect.Height-topHeight)}
	}

	projectNode(node.Left, first, rects)
	projectNode(node.Right, second, rects)
}

// clampSpan bounds a split's first-half extent so both halves keep at
// least one cell wherever the total allows it.
func clampSpan(span, total int) int {
	if span < 1 {
		return 1
	}
	if total > 1 && span > total-1 {
		return total - 1
	}
	return span
}

// stackLayouts applies the monocle rule: every session gets the full
// viewport, but only the one at the stack cursor is visible. Hidden
// entries keep the same rectangle since they are never painted.
func stackLayouts(order []string, index int, focusedID string, viewport Rect) []SessionLayout {
	layouts := make([]SessionLayout, 0, len(order))
	for i, id := range order {
		layouts = append(layouts, SessionLayout{
			SessionID: id,
			Rect:      viewport,
			Visible:   i == index,
			Focused:   id == focusedID,
			TabIndex:  -1,
		})
	}
	return layouts
}

// tabLayouts applies the tabbed rule: the top row is reserved for the tab
// strip and every session gets the remaining area, with only the session
// at the tab cursor visible. Each entry carries its strip position.
func tabLayouts(ids []string, index int, focusedID string, viewport Rect) []SessionLayout {
	body := Rect{
		X:      viewport.X,
		Y:      viewport.Y + TabStripHeight,
		Width:  viewport.Width,
		Height: max(1, viewport.Height-TabStripHeight),
	}

	layouts := make([]SessionLayout, 0, len(ids))
	for i, id := range ids {
		layouts = append(layouts, SessionLayout{
			SessionID: id,
			Rect:      body,
			Visible:   i == index,
			Focused:   id == focusedID,
			TabIndex:  i,
		})
	}
	return layouts
}

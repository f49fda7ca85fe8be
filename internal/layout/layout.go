// Package layout computes where each session's pane sits on screen.
//
// The package is pure in-memory bookkeeping: a binary space partitioning
// tree per workspace for tiled mode, a stack order for monocle mode and a
// tab cursor for tabbed mode, all driven by a single Manager that owns the
// viewport dimensions and a lazily rebuilt geometry cache per workspace.
// Nothing here performs I/O or knows what a session actually runs.
package layout

import "fmt"

// Mode identifies the layout discipline applied to a workspace.
type Mode int

const (
	// ModeTiled arranges every session in a BSP tiling.
	ModeTiled Mode = iota
	// ModeMonocle shows one session full screen, selectable by cycling.
	ModeMonocle
	// ModeTabbed shows one session below a one-row tab strip.
	ModeTabbed
)

// String returns the mode name used in config files and the status bar.
func (m Mode) String() string {
	switch m {
	case ModeTiled:
		return "tiled"
	case ModeMonocle:
		return "monocle"
	case ModeTabbed:
		return "tabbed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a config-file mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "tiled":
		return ModeTiled, nil
	case "monocle":
		return ModeMonocle, nil
	case "tabbed":
		return ModeTabbed, nil
	default:
		return ModeTiled, fmt.Errorf("unknown layout mode %q", s)
	}
}

// SplitDirection identifies the axis of a BSP split.
type SplitDirection int

const (
	// SplitVertical divides a rectangle into left and right halves.
	SplitVertical SplitDirection = iota
	// SplitHorizontal divides a rectangle into top and bottom halves.
	SplitHorizontal
)

// Rect is a pane rectangle in integer screen cells.
// Width and Height are always at least 1.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRect validates and constructs a Rect. Rectangles narrower or shorter
// than one cell cannot be rendered and are rejected.
func NewRect(x, y, width, height int) (Rect, error) {
	if width < 1 || height < 1 {
		return Rect{}, fmt.Errorf("invalid rect dimensions %dx%d", width, height)
	}
	return Rect{X: x, Y: y, Width: width, Height: height}, nil
}

// Area returns the number of cells the rectangle covers.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// SessionLayout is the output unit of a layout computation: one per session
// in the workspace. Sessions hidden by the current mode still get an entry
// with Visible false so the renderer can unmount them.
type SessionLayout struct {
	SessionID string
	Rect      Rect
	Visible   bool
	Focused   bool
	TabIndex  int // position in the tab strip; -1 outside tabbed mode
}

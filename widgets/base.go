// Package widgets provides reactive widgets for terminal UIs.
//
// Widgets subscribe to state observables in Mount and release every
// subscription in Unmount. Dynamic widgets (DynChild, If, Local) own the
// lifecycle of the children they build.
package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/runtime"
)

// Base provides common functionality for widgets.
// Embed this in widget structs to get default implementations.
type Base struct {
	bounds      runtime.Rect
	needsRender bool
}

// Layout stores the assigned bounds.
func (b *Base) Layout(bounds runtime.Rect) {
	if b == nil {
		return
	}
	if b.bounds != bounds {
		b.bounds = bounds
		b.needsRender = true
	}
}

// Bounds returns the widget's assigned bounds.
func (b *Base) Bounds() runtime.Rect {
	if b == nil {
		return runtime.Rect{}
	}
	return b.bounds
}

// HandleMessage returns Unhandled by default.
func (b *Base) HandleMessage(msg runtime.Message) runtime.HandleResult {
	return runtime.Unhandled()
}

// NeedsRender reports whether the widget needs to re-render.
func (b *Base) NeedsRender() bool {
	if b == nil {
		return false
	}
	return b.needsRender
}

// ClearInvalidation clears the render-needed flag.
func (b *Base) ClearInvalidation() {
	if b == nil {
		return
	}
	b.needsRender = false
}

func (b *Base) markRender() {
	if b == nil {
		return
	}
	b.needsRender = true
}

// Alignment controls horizontal text placement.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// truncateString truncates a string to fit within maxWidth.
// Adds "..." if truncated.
func truncateString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// alignedX returns the column where text of the given width starts.
func alignedX(bounds runtime.Rect, width int, align Alignment) int {
	switch align {
	case AlignCenter:
		return bounds.X + max(0, bounds.Width-width)/2
	case AlignRight:
		return bounds.X + max(0, bounds.Width-width)
	default:
		return bounds.X
	}
}

// writeLine clears one row of bounds and draws text on it.
func writeLine(buf *runtime.Buffer, bounds runtime.Rect, y int, text string, style backend.Style, align Alignment) {
	if buf == nil || bounds.Width <= 0 {
		return
	}
	buf.Fill(runtime.Rect{X: bounds.X, Y: y, Width: bounds.Width, Height: 1}, ' ', style)
	text = truncateString(text, bounds.Width)
	buf.SetString(alignedX(bounds, runewidth.StringWidth(text), align), y, text, style)
}

// Package scroll tracks vertical scroll state for list-like widgets.
package scroll

import "github.com/odvcencio/furry-reactive/terminal"

// Controller provides scroll control for widgets.
type Controller interface {
	ScrollBy(dy int)
	ScrollTo(y int)
	PageBy(pages int)
	ScrollToStart()
	ScrollToEnd()
}

// Viewport tracks which rows of a taller content are visible.
type Viewport struct {
	offset   int
	content  int
	view     int
	onChange func(offset int)
}

// SetOnChange sets a callback for offset updates.
func (v *Viewport) SetOnChange(fn func(offset int)) {
	if v == nil {
		return
	}
	v.onChange = fn
}

// SetContent updates the content height and clamps the offset.
func (v *Viewport) SetContent(rows int) {
	if v == nil {
		return
	}
	v.content = max(0, rows)
	v.SetOffset(v.offset)
}

// SetView updates the visible height and clamps the offset.
func (v *Viewport) SetView(rows int) {
	if v == nil {
		return
	}
	v.view = max(0, rows)
	v.SetOffset(v.offset)
}

// Content returns the content height.
func (v *Viewport) Content() int {
	if v == nil {
		return 0
	}
	return v.content
}

// View returns the visible height.
func (v *Viewport) View() int {
	if v == nil {
		return 0
	}
	return v.view
}

// Offset returns the first visible row.
func (v *Viewport) Offset() int {
	if v == nil {
		return 0
	}
	return v.offset
}

// MaxOffset returns the largest offset that still fills the view.
func (v *Viewport) MaxOffset() int {
	if v == nil {
		return 0
	}
	return max(0, v.content-v.view)
}

// SetOffset sets the first visible row, clamped to the content.
func (v *Viewport) SetOffset(y int) {
	if v == nil {
		return
	}
	next := min(max(0, y), v.MaxOffset())
	if next == v.offset {
		return
	}
	v.offset = next
	if v.onChange != nil {
		v.onChange(next)
	}
}

// ScrollBy adjusts the offset.
func (v *Viewport) ScrollBy(dy int) {
	if v == nil {
		return
	}
	v.SetOffset(v.offset + dy)
}

// ScrollTo scrolls to an absolute row.
func (v *Viewport) ScrollTo(y int) {
	v.SetOffset(y)
}

// PageBy scrolls by whole views.
func (v *Viewport) PageBy(pages int) {
	if v == nil {
		return
	}
	v.ScrollBy(pages * max(1, v.view))
}

// ScrollToStart scrolls to the first row.
func (v *Viewport) ScrollToStart() {
	v.SetOffset(0)
}

// ScrollToEnd scrolls to the last full view.
func (v *Viewport) ScrollToEnd() {
	if v == nil {
		return
	}
	v.SetOffset(v.MaxOffset())
}

// Reveal scrolls the minimum amount needed to make row visible.
func (v *Viewport) Reveal(row int) {
	if v == nil || v.view <= 0 {
		return
	}
	switch {
	case row < v.offset:
		v.SetOffset(row)
	case row >= v.offset+v.view:
		v.SetOffset(row - v.view + 1)
	}
}

// HandleKey applies a navigation key to c.
// It returns false for keys that do not scroll.
func HandleKey(c Controller, key terminal.Key) bool {
	if c == nil {
		return false
	}
	switch key {
	case terminal.KeyUp:
		c.ScrollBy(-1)
	case terminal.KeyDown:
		c.ScrollBy(1)
	case terminal.KeyPageUp:
		c.PageBy(-1)
	case terminal.KeyPageDown:
		c.PageBy(1)
	case terminal.KeyHome:
		c.ScrollToStart()
	case terminal.KeyEnd:
		c.ScrollToEnd()
	default:
		return false
	}
	return true
}

var _ Controller = (*Viewport)(nil)

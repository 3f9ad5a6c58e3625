// Package backend abstracts the terminal surface widgets are drawn to.
package backend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-reactive/terminal"
)

// Style is a cell style (colors and attributes).
type Style = tcell.Style

// Color is a terminal color.
type Color = tcell.Color

// DefaultStyle returns the terminal's default style.
func DefaultStyle() Style {
	return tcell.StyleDefault
}

// Cell is one character cell.
type Cell struct {
	Rune  rune
	Style Style
}

// Backend is a terminal surface.
type Backend interface {
	Init() error
	Fini()
	Size() (width, height int)
	SetContent(x, y int, mainc rune, combc []rune, style Style)
	Show()
	HideCursor()
	// PollEvent blocks for the next event. It returns nil after Fini.
	PollEvent() terminal.Event
}

// RowWriter is an optional optimization for bulk row updates.
type RowWriter interface {
	SetRow(y int, startX int, cells []Cell)
}

// RectWriter is an optional optimization for bulk rectangle updates.
// The cells slice is row-major and must have width*height entries.
type RectWriter interface {
	SetRect(x, y, width, height int, cells []Cell)
}

package runtime

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-reactive/backend"
)

// Cell represents a single character cell in the buffer.
type Cell = backend.Cell

// Buffer is a 2D grid of cells for rendering widgets.
// Widgets render to the buffer, then the buffer is flushed to the backend.
// Changed cells are tracked so the flush can skip untouched regions.
type Buffer struct {
	cells  []Cell
	width  int
	height int

	dirty      []bool
	dirtyAll   bool
	dirtyCount int
	dirtyRect  Rect
}

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	w, h = max(w, 0), max(h, 0)
	return &Buffer{
		cells:  make([]Cell, w*h),
		dirty:  make([]bool, w*h),
		width:  w,
		height: h,
	}
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the buffer dimensions, preserving content where possible.
func (b *Buffer) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w == b.width && h == b.height {
		return
	}
	cells := make([]Cell, w*h)
	minW := min(w, b.width)
	for y := 0; y < min(h, b.height); y++ {
		copy(cells[y*w:y*w+minW], b.cells[y*b.width:y*b.width+minW])
	}
	b.cells = cells
	b.dirty = make([]bool, w*h)
	b.width = w
	b.height = h
	b.MarkAllDirty()
}

// Clear fills the buffer with spaces and default style.
func (b *Buffer) Clear() {
	b.Fill(Rect{0, 0, b.width, b.height}, ' ', backend.DefaultStyle())
}

// Get returns the cell at position (x, y).
// Returns a blank cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// Set writes a rune with style at position (x, y).
// No-op if out of bounds. Marks the cell as dirty if changed.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.put(x, y, Cell{Rune: r, Style: s})
}

// SetString writes s starting at (x, y) and returns the number of columns
// used. Wide runes take two columns; the trailing column holds a zero rune.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) int {
	if y < 0 || y >= b.height {
		return 0
	}
	px := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if px+w > b.width {
			break
		}
		if px >= 0 {
			b.put(px, y, Cell{Rune: r, Style: style})
			if w == 2 {
				b.put(px+1, y, Cell{Style: style})
			}
		}
		px += w
	}
	return px - x
}

// Fill fills a rectangular region with a rune and style.
// Marks changed cells as dirty.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	x0 := max(0, r.X)
	y0 := max(0, r.Y)
	x1 := min(b.width, r.X+r.Width)
	y1 := min(b.height, r.Y+r.Height)
	cell := Cell{Rune: ch, Style: s}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			b.put(x, y, cell)
		}
	}
}

// Line returns row y as text with trailing spaces trimmed.
func (b *Buffer) Line(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	var prev rune
	for _, cell := range b.cells[y*b.width : (y+1)*b.width] {
		switch {
		case cell.Rune != 0:
			sb.WriteRune(cell.Rune)
		case runewidth.RuneWidth(prev) != 2:
			sb.WriteRune(' ')
		}
		prev = cell.Rune
	}
	return strings.TrimRight(sb.String(), " ")
}

// Cells returns the row-major cell slice.
func (b *Buffer) Cells() []Cell {
	return b.cells
}

func (b *Buffer) put(x, y int, cell Cell) {
	idx := y*b.width + x
	if b.cells[idx] == cell {
		return
	}
	b.cells[idx] = cell
	b.markCellDirty(x, y, idx)
}

// markCellDirty marks a single cell as dirty and grows the bounding box.
func (b *Buffer) markCellDirty(x, y, idx int) {
	if b.dirtyAll || b.dirty[idx] {
		return
	}
	b.dirty[idx] = true
	b.dirtyCount++
	if b.dirtyCount == 1 {
		b.dirtyRect = Rect{X: x, Y: y, Width: 1, Height: 1}
		return
	}
	if x < b.dirtyRect.X {
		b.dirtyRect.Width += b.dirtyRect.X - x
		b.dirtyRect.X = x
	} else if x >= b.dirtyRect.X+b.dirtyRect.Width {
		b.dirtyRect.Width = x - b.dirtyRect.X + 1
	}
	if y < b.dirtyRect.Y {
		b.dirtyRect.Height += b.dirtyRect.Y - y
		b.dirtyRect.Y = y
	} else if y >= b.dirtyRect.Y+b.dirtyRect.Height {
		b.dirtyRect.Height = y - b.dirtyRect.Y + 1
	}
}

// MarkAllDirty marks the entire buffer as dirty.
func (b *Buffer) MarkAllDirty() {
	b.dirtyAll = true
	b.dirtyCount = b.width * b.height
	b.dirtyRect = Rect{X: 0, Y: 0, Width: b.width, Height: b.height}
}

// ClearDirty resets all dirty flags.
func (b *Buffer) ClearDirty() {
	clear(b.dirty)
	b.dirtyAll = false
	b.dirtyCount = 0
	b.dirtyRect = Rect{}
}

// IsDirty returns true if any cells have changed.
func (b *Buffer) IsDirty() bool {
	return b.dirtyAll || b.dirtyCount > 0
}

// DirtyCount returns the number of dirty cells.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// DirtyRect returns the bounding box of dirty cells.
func (b *Buffer) DirtyRect() Rect {
	return b.dirtyRect
}

// ForEachDirtyCell calls fn for each dirty cell in row-major order.
func (b *Buffer) ForEachDirtyCell(fn func(x, y int, cell Cell)) {
	r := b.dirtyRect
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			idx := y*b.width + x
			if b.dirtyAll || b.dirty[idx] {
				fn(x, y, b.cells[idx])
			}
		}
	}
}

// ForEachDirtySpan calls fn for each run of consecutive dirty cells in a row.
// endX is exclusive.
func (b *Buffer) ForEachDirtySpan(fn func(y, startX, endX int)) {
	r := b.dirtyRect
	for y := r.Y; y < r.Y+r.Height; y++ {
		start := -1
		for x := r.X; x <= r.X+r.Width; x++ {
			dirty := x < r.X+r.Width && (b.dirtyAll || b.dirty[y*b.width+x])
			switch {
			case dirty && start < 0:
				start = x
			case !dirty && start >= 0:
				fn(y, start, x)
				start = -1
			}
		}
	}
}

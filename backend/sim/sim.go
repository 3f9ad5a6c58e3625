// Package sim provides an in-memory backend for tests and scripted runs.
package sim

import (
	"errors"
	"strings"
	"sync"

	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/terminal"
)

// ErrAlreadyInit is returned when Init is called twice without Fini.
var ErrAlreadyInit = errors.New("sim: backend already initialized")

// Backend records drawn cells and replays injected events.
type Backend struct {
	mu     sync.Mutex
	width  int
	height int
	cells  []backend.Cell
	events chan terminal.Event
	done   chan struct{}
	active bool
	shows  int
}

var _ backend.RowWriter = (*Backend)(nil)

// New creates a simulated terminal of the given size.
func New(width, height int) *Backend {
	return &Backend{
		width:  width,
		height: height,
		cells:  make([]backend.Cell, width*height),
		events: make(chan terminal.Event, 64),
	}
}

// Init prepares the backend for polling.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active {
		return ErrAlreadyInit
	}
	b.active = true
	b.done = make(chan struct{})
	return nil
}

// Fini stops polling. Pending PollEvent calls return nil.
func (b *Backend) Fini() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return
	}
	b.active = false
	close(b.done)
}

// Size returns the simulated terminal size.
func (b *Backend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// SetContent stores a cell.
func (b *Backend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = backend.Cell{Rune: mainc, Style: style}
}

// SetRow stores a run of cells.
func (b *Backend) SetRow(y int, startX int, cells []backend.Cell) {
	for i, cell := range cells {
		b.SetContent(startX+i, y, cell.Rune, nil, cell.Style)
	}
}

// Show counts presented frames.
func (b *Backend) Show() {
	b.mu.Lock()
	b.shows++
	b.mu.Unlock()
}

// HideCursor is a no-op.
func (b *Backend) HideCursor() {}

// PollEvent returns the next injected event, or nil once finalized.
func (b *Backend) PollEvent() terminal.Event {
	b.mu.Lock()
	done := b.done
	b.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case ev := <-b.events:
		return ev
	case <-done:
		return nil
	}
}

// InjectKey queues a key event.
func (b *Backend) InjectKey(key terminal.Key, r rune) {
	b.events <- terminal.KeyEvent{Key: key, Rune: r}
}

// InjectResize resizes the simulated terminal and queues a resize event.
func (b *Backend) InjectResize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.cells = make([]backend.Cell, width*height)
	b.mu.Unlock()
	b.events <- terminal.ResizeEvent{Width: width, Height: height}
}

// Frames returns how many times Show was called.
func (b *Backend) Frames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// Capture returns the screen as text, one line per row with trailing
// spaces trimmed.
func (b *Backend) Capture() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		row := make([]rune, b.width)
		for x := 0; x < b.width; x++ {
			r := b.cells[y*b.width+x].Rune
			if r == 0 {
				r = ' '
			}
			row[x] = r
		}
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ContainsText reports whether text appears on a single row of the screen.
func (b *Backend) ContainsText(text string) bool {
	x, _ := b.FindText(text)
	return x >= 0
}

// FindText returns the cell position of the first occurrence of text,
// or (-1, -1) if it is not on screen.
func (b *Backend) FindText(text string) (x, y int) {
	if text == "" {
		return -1, -1
	}
	for row, line := range strings.Split(b.Capture(), "\n") {
		if idx := strings.Index(line, text); idx >= 0 {
			return len([]rune(line[:idx])), row
		}
	}
	return -1, -1
}

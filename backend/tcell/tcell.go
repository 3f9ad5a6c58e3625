// Package tcell adapts a tcell screen to the backend interface.
package tcell

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/terminal"
)

// Backend drives a real terminal through tcell.
type Backend struct {
	screen tcell.Screen
}

// New allocates a tcell screen for the current terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	return &Backend{screen: screen}, nil
}

// NewWithScreen wraps an existing screen, such as tcell.NewSimulationScreen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Init initializes the terminal.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	b.screen.Clear()
	return nil
}

// Fini restores the terminal.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size returns the terminal size.
func (b *Backend) Size() (int, int) {
	return b.screen.Size()
}

// SetContent draws a cell.
func (b *Backend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, combc, style)
}

// Show flushes pending changes.
func (b *Backend) Show() {
	b.screen.Show()
}

// HideCursor hides the terminal cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// PollEvent waits for the next supported event.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if out := translate(ev); out != nil {
			return out
		}
	}
}

var keyMap = map[tcell.Key]terminal.Key{
	tcell.KeyEnter:      terminal.KeyEnter,
	tcell.KeyEscape:     terminal.KeyEscape,
	tcell.KeyBackspace:  terminal.KeyBackspace,
	tcell.KeyBackspace2: terminal.KeyBackspace,
	tcell.KeyTab:        terminal.KeyTab,
	tcell.KeyUp:         terminal.KeyUp,
	tcell.KeyDown:       terminal.KeyDown,
	tcell.KeyLeft:       terminal.KeyLeft,
	tcell.KeyRight:      terminal.KeyRight,
	tcell.KeyPgUp:       terminal.KeyPageUp,
	tcell.KeyPgDn:       terminal.KeyPageDown,
	tcell.KeyHome:       terminal.KeyHome,
	tcell.KeyEnd:        terminal.KeyEnd,
	tcell.KeyCtrlC:      terminal.KeyCtrlC,
}

func translate(ev tcell.Event) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		mods := e.Modifiers()
		out := terminal.KeyEvent{
			Alt:   mods&tcell.ModAlt != 0,
			Ctrl:  mods&tcell.ModCtrl != 0,
			Shift: mods&tcell.ModShift != 0,
		}
		if e.Key() == tcell.KeyRune {
			out.Key = terminal.KeyRune
			out.Rune = e.Rune()
			return out
		}
		key, ok := keyMap[e.Key()]
		if !ok {
			return nil
		}
		out.Key = key
		return out
	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	}
	return nil
}

package runtime

import (
	"time"

	"github.com/odvcencio/furry-reactive/terminal"
)

// Message represents an event flowing into the UI.
// Messages come from terminal input, timers, or background goroutines.
type Message interface {
	isMessage()
}

// KeyMsg represents a keyboard input event.
type KeyMsg struct {
	Key   terminal.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// ResizeMsg indicates the terminal size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// TickMsg is sent on each frame tick for animations.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// InvalidateMsg requests a render pass without forcing a full redraw.
type InvalidateMsg struct{}

func (InvalidateMsg) isMessage() {}

// UpdateMsg runs Fn on the update loop.
// Sources must only be mutated from the loop; goroutines post an UpdateMsg
// instead of calling Set directly.
type UpdateMsg struct {
	Fn func()
}

func (UpdateMsg) isMessage() {}

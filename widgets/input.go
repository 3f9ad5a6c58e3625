package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/state"
	"github.com/odvcencio/furry-reactive/terminal"
)

// Input is a single-line text field bound two ways to a source.
// Edits are written back with Set; outside changes to the source replace
// the text and clamp the cursor.
type Input struct {
	Component
	value       *state.Source[string]
	text        []rune
	cursorPos   int
	active      bool
	style       backend.Style
	cursorStyle backend.Style
	placeholder string
	onSubmit    func(text string)
}

// NewInput creates an input bound to value.
func NewInput(value *state.Source[string]) *Input {
	return &Input{
		value:       value,
		active:      true,
		style:       backend.DefaultStyle(),
		cursorStyle: backend.DefaultStyle().Reverse(true),
	}
}

// SetPlaceholder sets text shown while the input is empty and inactive.
func (i *Input) SetPlaceholder(text string) *Input {
	i.placeholder = text
	return i
}

// SetActive toggles whether the input consumes key presses.
func (i *Input) SetActive(active bool) {
	if i.active != active {
		i.active = active
		i.Invalidate()
	}
}

// Active reports whether the input consumes key presses.
func (i *Input) Active() bool {
	return i.active
}

// OnSubmit registers a handler for Enter.
func (i *Input) OnSubmit(fn func(text string)) *Input {
	i.onSubmit = fn
	return i
}

// Text returns the current text.
func (i *Input) Text() string {
	return string(i.text)
}

// CursorPos returns the cursor position in runes.
func (i *Input) CursorPos() int {
	return i.cursorPos
}

// Mount subscribes to the bound source.
func (i *Input) Mount() {
	i.Subs.Clear()
	if i.value == nil {
		return
	}
	Observe(&i.Component, i.value.Observer(), func(v string) {
		if v == string(i.text) {
			return
		}
		i.text = []rune(v)
		i.cursorPos = min(i.cursorPos, len(i.text))
		if i.cursorPos == 0 {
			i.cursorPos = len(i.text)
		}
	})
}

// Unmount releases the subscription.
func (i *Input) Unmount() {
	i.Subs.Clear()
}

// Measure returns one row filling the available width.
func (i *Input) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: 1})
}

// Render draws the visible part of the text and the cursor.
func (i *Input) Render(ctx runtime.RenderContext) {
	bounds := i.bounds
	if bounds.Width == 0 || bounds.Height == 0 {
		return
	}
	ctx.Buffer.Fill(runtime.Rect{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: 1}, ' ', i.style)

	if len(i.text) == 0 && !i.active && i.placeholder != "" {
		ctx.Buffer.SetString(bounds.X, bounds.Y, truncateString(i.placeholder, bounds.Width), i.style.Dim(true))
		return
	}

	start := 0
	for start < i.cursorPos && runewidth.StringWidth(string(i.text[start:i.cursorPos])) >= bounds.Width {
		start++
	}
	ctx.Buffer.SetString(bounds.X, bounds.Y, string(i.text[start:]), i.style)

	if i.active {
		x := bounds.X + runewidth.StringWidth(string(i.text[start:i.cursorPos]))
		r := ' '
		if i.cursorPos < len(i.text) {
			r = i.text[i.cursorPos]
		}
		if x < bounds.X+bounds.Width {
			ctx.Buffer.Set(x, bounds.Y, r, i.cursorStyle)
		}
	}
	i.ClearInvalidation()
}

// HandleMessage edits the text while the input is active.
func (i *Input) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if !i.active {
		return runtime.Unhandled()
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}

	switch key.Key {
	case terminal.KeyEnter:
		if i.onSubmit != nil {
			i.onSubmit(string(i.text))
		}
		return runtime.Handled()
	case terminal.KeyBackspace:
		if i.cursorPos > 0 {
			i.text = append(i.text[:i.cursorPos-1], i.text[i.cursorPos:]...)
			i.cursorPos--
			i.commit()
		}
		return runtime.Handled()
	case terminal.KeyLeft:
		if i.cursorPos > 0 {
			i.cursorPos--
			i.Invalidate()
		}
		return runtime.Handled()
	case terminal.KeyRight:
		if i.cursorPos < len(i.text) {
			i.cursorPos++
			i.Invalidate()
		}
		return runtime.Handled()
	case terminal.KeyHome:
		i.cursorPos = 0
		i.Invalidate()
		return runtime.Handled()
	case terminal.KeyEnd:
		i.cursorPos = len(i.text)
		i.Invalidate()
		return runtime.Handled()
	case terminal.KeyRune:
		if key.Ctrl || key.Alt {
			return runtime.Unhandled()
		}
		i.text = append(i.text[:i.cursorPos], append([]rune{key.Rune}, i.text[i.cursorPos:]...)...)
		i.cursorPos++
		i.commit()
		return runtime.Handled()
	}
	return runtime.Unhandled()
}

func (i *Input) commit() {
	i.Invalidate()
	if i.value == nil || i.value.Closed() {
		return
	}
	i.value.Set(string(i.text))
}

package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/state"
)

// SignalLabel is a label bound to an observable string.
// It subscribes on Mount and releases the subscription on Unmount.
type SignalLabel struct {
	Component
	source    state.Observable[string]
	text      string
	style     backend.Style
	alignment Alignment
}

// NewSignalLabel creates a new observable-backed label.
func NewSignalLabel(source state.Observable[string]) *SignalLabel {
	label := &SignalLabel{
		source: source,
		style:  backend.DefaultStyle(),
	}
	if source != nil {
		source.With(func(v string, ok bool) {
			if ok {
				label.text = v
			}
		})
	}
	return label
}

// Text returns the current label text.
func (s *SignalLabel) Text() string {
	return s.text
}

// SetStyle sets the label style.
func (s *SignalLabel) SetStyle(style backend.Style) *SignalLabel {
	s.style = style
	return s
}

// SetAlignment sets text alignment.
func (s *SignalLabel) SetAlignment(align Alignment) *SignalLabel {
	s.alignment = align
	return s
}

// Measure returns the size needed for the label.
func (s *SignalLabel) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{
		Width:  runewidth.StringWidth(s.text),
		Height: 1,
	})
}

// Render draws the label.
func (s *SignalLabel) Render(ctx runtime.RenderContext) {
	if s.bounds.Width == 0 || s.bounds.Height == 0 {
		return
	}
	writeLine(ctx.Buffer, s.bounds, s.bounds.Y, s.text, s.style, s.alignment)
	s.ClearInvalidation()
}

// Mount subscribes to source changes.
func (s *SignalLabel) Mount() {
	s.Subs.Clear()
	Observe(&s.Component, s.source, func(v string) {
		s.text = v
	})
}

// Unmount unsubscribes from source changes.
func (s *SignalLabel) Unmount() {
	s.Subs.Clear()
}

package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/runtime"
)

// Label displays static text.
type Label struct {
	Base
	text      string
	style     backend.Style
	alignment Alignment
}

// NewLabel creates a label.
func NewLabel(text string) *Label {
	return &Label{text: text, style: backend.DefaultStyle()}
}

// Text returns the label text.
func (l *Label) Text() string {
	return l.text
}

// SetText replaces the label text.
func (l *Label) SetText(text string) {
	l.text = text
	l.markRender()
}

// SetStyle sets the label style.
func (l *Label) SetStyle(style backend.Style) *Label {
	l.style = style
	return l
}

// SetAlignment sets text alignment.
func (l *Label) SetAlignment(align Alignment) *Label {
	l.alignment = align
	return l
}

// Measure returns the size needed for the label.
func (l *Label) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{
		Width:  runewidth.StringWidth(l.text),
		Height: 1,
	})
}

// Render draws the label.
func (l *Label) Render(ctx runtime.RenderContext) {
	if l.bounds.Width == 0 || l.bounds.Height == 0 {
		return
	}
	writeLine(ctx.Buffer, l.bounds, l.bounds.Y, l.text, l.style, l.alignment)
	l.ClearInvalidation()
}

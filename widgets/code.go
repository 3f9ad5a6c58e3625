package widgets

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/state"
)

// Code renders syntax-highlighted source bound to an observable string.
type Code struct {
	Component
	source      state.Observable[string]
	language    string
	style       string
	lineNumbers bool
	lines       []StyledLine
}

// NewCode creates a code view for the given language.
func NewCode(source state.Observable[string], language string) *Code {
	return &Code{source: source, language: language, style: DefaultCodeStyle}
}

// WithStyle sets the chroma style name.
func (c *Code) WithStyle(name string) *Code {
	c.style = name
	return c
}

// WithLineNumbers toggles the line number gutter.
func (c *Code) WithLineNumbers(on bool) *Code {
	c.lineNumbers = on
	return c
}

// Lines returns the highlighted lines.
func (c *Code) Lines() []StyledLine {
	return c.lines
}

// Mount subscribes to the source.
func (c *Code) Mount() {
	c.Subs.Clear()
	Observe(&c.Component, c.source, c.highlight)
}

// Unmount releases the subscription.
func (c *Code) Unmount() {
	c.Subs.Clear()
}

func (c *Code) highlight(src string) {
	lines, err := Highlight(src, c.language, c.style)
	if err != nil {
		c.Logger().Warn("highlight failed", zap.String("language", c.language), zap.Error(err))
	}
	if c.lineNumbers {
		lines = numberLines(lines)
	}
	c.lines = lines
}

func numberLines(lines []StyledLine) []StyledLine {
	width := len(fmt.Sprint(len(lines)))
	gutter := backend.DefaultStyle().Dim(true)
	out := make([]StyledLine, len(lines))
	for i, line := range lines {
		prefix := Span{Text: fmt.Sprintf("%*d ", width, i+1), Style: gutter}
		out[i] = append(StyledLine{prefix}, line...)
	}
	return out
}

// Measure returns one row per line, clipped to the constraints.
func (c *Code) Measure(constraints runtime.Constraints) runtime.Size {
	width := 0
	for _, line := range c.lines {
		width = max(width, line.Width())
	}
	return constraints.Constrain(runtime.Size{Width: width, Height: len(c.lines)})
}

// Render draws the highlighted lines without wrapping.
func (c *Code) Render(ctx runtime.RenderContext) {
	if c.bounds.Empty() {
		return
	}
	ctx.Sub(c.bounds).Clear(backend.DefaultStyle())
	drawStyledLines(ctx.Buffer, c.bounds, c.lines, 0, false)
	c.ClearInvalidation()
}

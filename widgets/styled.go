package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/runtime"
)

// Span is a run of text drawn with one style.
type Span struct {
	Text  string
	Style backend.Style
}

// StyledLine is one line of styled spans.
type StyledLine []Span

// String returns the line's plain text.
func (l StyledLine) String() string {
	var sb strings.Builder
	for _, span := range l {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// Width returns the line width in cells.
func (l StyledLine) Width() int {
	w := 0
	for _, span := range l {
		w += runewidth.StringWidth(span.Text)
	}
	return w
}

// drawStyledLines draws lines into bounds starting at line offset.
// Lines longer than the bounds wrap onto the next row when wrap is set and
// are clipped otherwise. It returns the number of rows used.
func drawStyledLines(buf *runtime.Buffer, bounds runtime.Rect, lines []StyledLine, offset int, wrap bool) int {
	if buf == nil || bounds.Empty() {
		return 0
	}
	y := bounds.Y
	bottom := bounds.Y + bounds.Height
	right := bounds.X + bounds.Width
	for i := max(0, offset); i < len(lines) && y < bottom; i++ {
		x := bounds.X
	spans:
		for _, span := range lines[i] {
			for _, r := range span.Text {
				w := runewidth.RuneWidth(r)
				if w == 0 {
					continue
				}
				if x+w > right {
					if !wrap {
						break spans
					}
					y++
					x = bounds.X
					if y >= bottom {
						return y - bounds.Y
					}
				}
				buf.Set(x, y, r, span.Style)
				if w == 2 {
					buf.Set(x+1, y, 0, span.Style)
				}
				x += w
			}
		}
		y++
	}
	return y - bounds.Y
}

// wrappedHeight returns how many rows lines need at the given width.
func wrappedHeight(lines []StyledLine, width int, wrap bool) int {
	if width <= 0 {
		return 0
	}
	rows := 0
	for _, line := range lines {
		w := line.Width()
		if !wrap || w <= width {
			rows++
			continue
		}
		rows += (w + width - 1) / width
	}
	return rows
}

// plainLines splits text into unstyled lines.
func plainLines(text string, style backend.Style) []StyledLine {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	parts := strings.Split(text, "\n")
	lines := make([]StyledLine, len(parts))
	for i, part := range parts {
		lines[i] = StyledLine{{Text: part, Style: style}}
	}
	return lines
}

package widgets

import (
	"fmt"

	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/scroll"
	"github.com/odvcencio/furry-reactive/state"
	"github.com/odvcencio/furry-reactive/terminal"
)

// RenderFunc renders an item.
type RenderFunc[T any] func(item T, index int, selected bool, ctx runtime.RenderContext)

// List renders one row per item of an observable slice.
// The selection is clamped whenever the slice changes.
type List[T any] struct {
	Component
	source        state.Observable[[]T]
	items         []T
	render        RenderFunc[T]
	selected      int
	viewport      scroll.Viewport
	onSelect      func(index int, item T)
	style         backend.Style
	selectedStyle backend.Style
}

// NewList creates a list widget. A nil render draws each item with fmt.Sprint.
func NewList[T any](source state.Observable[[]T], render RenderFunc[T]) *List[T] {
	l := &List[T]{
		source:        source,
		render:        render,
		style:         backend.DefaultStyle(),
		selectedStyle: backend.DefaultStyle().Reverse(true),
	}
	if l.render == nil {
		l.render = l.renderText
	}
	return l
}

// OnSelect registers a handler for Enter on the selected item.
func (l *List[T]) OnSelect(fn func(index int, item T)) *List[T] {
	l.onSelect = fn
	return l
}

// Mount subscribes to the item source.
func (l *List[T]) Mount() {
	l.Subs.Clear()
	Observe(&l.Component, l.source, func(items []T) {
		l.items = items
		l.viewport.SetContent(len(items))
		l.setSelected(l.selected)
	})
}

// Unmount releases the subscription.
func (l *List[T]) Unmount() {
	l.Subs.Clear()
}

// Items returns the current items.
func (l *List[T]) Items() []T {
	return l.items
}

// Measure returns the desired size.
func (l *List[T]) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: len(l.items)})
}

// Layout stores bounds and keeps the selection visible.
func (l *List[T]) Layout(bounds runtime.Rect) {
	l.Base.Layout(bounds)
	l.viewport.SetView(bounds.Height)
	l.viewport.Reveal(l.selected)
}

// Render draws the visible items.
func (l *List[T]) Render(ctx runtime.RenderContext) {
	bounds := l.bounds
	if bounds.Empty() {
		return
	}
	ctx.Buffer.Fill(bounds, ' ', l.style)
	offset := l.viewport.Offset()
	for i := 0; i < bounds.Height; i++ {
		index := offset + i
		if index >= len(l.items) {
			break
		}
		row := runtime.Rect{X: bounds.X, Y: bounds.Y + i, Width: bounds.Width, Height: 1}
		l.render(l.items[index], index, index == l.selected, ctx.Sub(row))
	}
	l.ClearInvalidation()
}

func (l *List[T]) renderText(item T, index int, selected bool, ctx runtime.RenderContext) {
	style := l.style
	if selected {
		style = l.selectedStyle
	}
	writeLine(ctx.Buffer, ctx.Bounds, ctx.Bounds.Y, fmt.Sprint(item), style, AlignLeft)
}

// HandleMessage handles navigation and Enter.
func (l *List[T]) HandleMessage(msg runtime.Message) runtime.HandleResult {
	key, ok := msg.(runtime.KeyMsg)
	if !ok || len(l.items) == 0 {
		return runtime.Unhandled()
	}
	if key.Key == terminal.KeyEnter {
		if l.onSelect != nil {
			l.onSelect(l.selected, l.items[l.selected])
		}
		return runtime.Handled()
	}
	if scroll.HandleKey(l, key.Key) {
		return runtime.Handled()
	}
	return runtime.Unhandled()
}

func (l *List[T]) setSelected(index int) {
	if len(l.items) == 0 {
		l.selected = 0
		return
	}
	l.selected = min(max(0, index), len(l.items)-1)
	l.viewport.Reveal(l.selected)
}

// SelectedIndex returns the current selection index.
func (l *List[T]) SelectedIndex() int {
	return l.selected
}

// SelectedItem returns the selected item.
func (l *List[T]) SelectedItem() (T, bool) {
	var zero T
	if l.selected < 0 || l.selected >= len(l.items) {
		return zero, false
	}
	return l.items[l.selected], true
}

// ScrollBy moves the selection by dy.
func (l *List[T]) ScrollBy(dy int) {
	l.setSelected(l.selected + dy)
	l.Invalidate()
}

// ScrollTo selects an absolute index.
func (l *List[T]) ScrollTo(y int) {
	l.setSelected(y)
	l.Invalidate()
}

// PageBy moves the selection by whole pages.
func (l *List[T]) PageBy(pages int) {
	l.setSelected(l.selected + pages*max(1, l.bounds.Height))
	l.Invalidate()
}

// ScrollToStart selects the first item.
func (l *List[T]) ScrollToStart() {
	l.setSelected(0)
	l.Invalidate()
}

// ScrollToEnd selects the last item.
func (l *List[T]) ScrollToEnd() {
	l.setSelected(len(l.items) - 1)
	l.Invalidate()
}

var _ scroll.Controller = (*List[any])(nil)

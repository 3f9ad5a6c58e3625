package widgets

import (
	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/state"
	"github.com/odvcencio/furry-reactive/terminal"
)

// Tab represents a single tab. View builds the content each time the tab
// becomes selected.
type Tab struct {
	Title string
	View  func() runtime.Widget
}

// Tabs is a tabbed container whose selection lives in a source.
// Only the selected tab's content is mounted.
type Tabs struct {
	Component
	tabs          []Tab
	selected      *state.Source[int]
	current       int
	slot          childSlot
	style         backend.Style
	selectedStyle backend.Style
}

// NewTabs creates a tab container driven by selected.
func NewTabs(selected *state.Source[int], tabs ...Tab) *Tabs {
	return &Tabs{
		tabs:          tabs,
		selected:      selected,
		current:       -1,
		style:         backend.DefaultStyle(),
		selectedStyle: backend.DefaultStyle().Reverse(true),
	}
}

// Selected returns the index of the shown tab, or -1 before mount.
func (t *Tabs) Selected() int {
	return t.current
}

// Child returns the content of the shown tab.
func (t *Tabs) Child() runtime.Widget {
	return t.slot.child
}

// Mount subscribes to the selection source.
func (t *Tabs) Mount() {
	t.Subs.Clear()
	if t.selected == nil {
		t.show(0)
		return
	}
	Observe(&t.Component, t.selected.Observer(), t.show)
}

// Unmount releases the shown content.
func (t *Tabs) Unmount() {
	t.Subs.Clear()
	t.slot.release()
	t.current = -1
}

func (t *Tabs) show(index int) {
	if len(t.tabs) == 0 {
		return
	}
	index = clampIndex(index, len(t.tabs))
	if index == t.current {
		return
	}
	t.current = index
	var child runtime.Widget
	if view := t.tabs[index].View; view != nil {
		child = view()
	}
	t.slot.replace(child, t.Services)
}

func (t *Tabs) selectTab(index int) {
	if t.selected == nil {
		t.show(index)
		t.Invalidate()
		return
	}
	t.selected.Set(clampIndex(index, len(t.tabs)))
}

// Measure returns the size of the selected tab plus the title row.
func (t *Tabs) Measure(constraints runtime.Constraints) runtime.Size {
	if len(t.tabs) == 0 {
		return constraints.Constrain(runtime.Size{})
	}
	size := t.slot.measure(constraints)
	size.Height++
	return constraints.Constrain(size)
}

// Layout positions the selected tab content below the titles.
func (t *Tabs) Layout(bounds runtime.Rect) {
	t.Base.Layout(bounds)
	t.slot.layout(runtime.Rect{
		X:      bounds.X,
		Y:      bounds.Y + 1,
		Width:  bounds.Width,
		Height: max(0, bounds.Height-1),
	})
}

// Render draws tab titles and content.
func (t *Tabs) Render(ctx runtime.RenderContext) {
	bounds := t.bounds
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	ctx.Buffer.Fill(runtime.Rect{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: 1}, ' ', t.style)
	x := bounds.X
	for i, tab := range t.tabs {
		available := bounds.Width - (x - bounds.X)
		if available <= 0 {
			break
		}
		style := t.style
		if i == t.current {
			style = t.selectedStyle
		}
		x += ctx.Buffer.SetString(x, bounds.Y, truncateString(" "+tab.Title+" ", available), style)
	}
	t.slot.render(ctx)
	t.ClearInvalidation()
}

// HandleMessage offers keys to the content first. Unhandled Tab, Left and
// Right switch tabs.
func (t *Tabs) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if result := t.slot.handleMessage(msg); result.Handled {
		return result
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok || len(t.tabs) == 0 {
		return runtime.Unhandled()
	}
	switch key.Key {
	case terminal.KeyTab:
		t.selectTab((t.current + 1) % len(t.tabs))
	case terminal.KeyLeft:
		t.selectTab(t.current - 1)
	case terminal.KeyRight:
		t.selectTab(t.current + 1)
	default:
		return runtime.Unhandled()
	}
	return runtime.Handled()
}

func clampIndex(index, n int) int {
	return max(0, min(index, n-1))
}

package widgets

import (
	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/runtime"
)

// VStack lays children out top to bottom.
// Each child gets its measured height; layout is redone on every render so
// dynamic children can grow or shrink.
type VStack struct {
	Base
	children []runtime.Widget
	gap      int
}

// NewVStack creates a vertical stack.
func NewVStack(children ...runtime.Widget) *VStack {
	return &VStack{children: children}
}

// WithGap sets blank rows between children.
func (v *VStack) WithGap(gap int) *VStack {
	v.gap = max(0, gap)
	return v
}

// ChildWidgets returns the stack's children.
func (v *VStack) ChildWidgets() []runtime.Widget {
	return v.children
}

// Measure sums child heights and takes the widest child.
func (v *VStack) Measure(constraints runtime.Constraints) runtime.Size {
	var size runtime.Size
	maxSize := constraints.MaxSize()
	for i, child := range v.children {
		if child == nil {
			continue
		}
		if i > 0 {
			size.Height += v.gap
		}
		remaining := max(0, maxSize.Height-size.Height)
		s := child.Measure(runtime.Loose(runtime.Size{Width: maxSize.Width, Height: remaining}))
		size.Height += s.Height
		size.Width = max(size.Width, s.Width)
	}
	return constraints.Constrain(size)
}

// Layout assigns each child a row band.
func (v *VStack) Layout(bounds runtime.Rect) {
	v.Base.Layout(bounds)
	y := bounds.Y
	bottom := bounds.Y + bounds.Height
	for i, child := range v.children {
		if child == nil {
			continue
		}
		if i > 0 {
			y += v.gap
		}
		remaining := max(0, bottom-y)
		s := child.Measure(runtime.Loose(runtime.Size{Width: bounds.Width, Height: remaining}))
		h := min(s.Height, remaining)
		child.Layout(runtime.Rect{X: bounds.X, Y: y, Width: bounds.Width, Height: h})
		y += h
	}
}

// Render re-lays out and draws every child.
func (v *VStack) Render(ctx runtime.RenderContext) {
	v.Layout(v.bounds)
	ctx.Sub(v.bounds).Clear(backend.DefaultStyle())
	for _, child := range v.children {
		if child == nil {
			continue
		}
		if b, ok := child.(runtime.BoundsProvider); ok {
			child.Render(ctx.Sub(b.Bounds()))
			continue
		}
		child.Render(ctx)
	}
	v.ClearInvalidation()
}

// HandleMessage offers the message to each child in order.
func (v *VStack) HandleMessage(msg runtime.Message) runtime.HandleResult {
	for _, child := range v.children {
		if child == nil {
			continue
		}
		if result := child.HandleMessage(msg); result.Handled {
			return result
		}
	}
	return runtime.Unhandled()
}

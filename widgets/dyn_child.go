package widgets

import (
	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/state"
)

// DynChild rebuilds its child every time source emits.
// The previous child is unmounted before the replacement is mounted.
type DynChild[T any] struct {
	Component
	source state.Observable[T]
	view   func(T) runtime.Widget
	slot   childSlot
	builds int
}

// NewDynChild creates a widget whose child is view(v) for the latest v.
// A nil child renders nothing.
func NewDynChild[T any](source state.Observable[T], view func(T) runtime.Widget) *DynChild[T] {
	return &DynChild[T]{source: source, view: view}
}

// Child returns the current child, if any.
func (d *DynChild[T]) Child() runtime.Widget {
	return d.slot.child
}

// Builds returns how many times the view function has run.
func (d *DynChild[T]) Builds() int {
	return d.builds
}

// Mount subscribes to source. The initial push builds the first child.
func (d *DynChild[T]) Mount() {
	d.Subs.Clear()
	Observe(&d.Component, d.source, d.rebuild)
}

// Unmount cancels the subscription and releases the child.
func (d *DynChild[T]) Unmount() {
	d.Subs.Clear()
	d.slot.release()
}

func (d *DynChild[T]) rebuild(v T) {
	var next runtime.Widget
	if d.view != nil {
		next = d.view(v)
		d.builds++
	}
	d.slot.replace(next, d.Services)
}

// Measure returns the child's size.
func (d *DynChild[T]) Measure(constraints runtime.Constraints) runtime.Size {
	return d.slot.measure(constraints)
}

// Layout assigns bounds to the widget and its child.
func (d *DynChild[T]) Layout(bounds runtime.Rect) {
	d.Base.Layout(bounds)
	d.slot.layout(bounds)
}

// Render draws the current child.
func (d *DynChild[T]) Render(ctx runtime.RenderContext) {
	d.slot.render(ctx)
	d.ClearInvalidation()
}

// HandleMessage forwards messages to the child.
func (d *DynChild[T]) HandleMessage(msg runtime.Message) runtime.HandleResult {
	return d.slot.handleMessage(msg)
}

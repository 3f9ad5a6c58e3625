package widgets

import (
	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/state"
)

// Local owns a source scoped to one mounted lifetime.
// Mount creates the source from the initial value and builds the child;
// Unmount releases the child and closes the source, so observers handed
// out to the child become inert.
type Local[T any] struct {
	Component
	initial T
	build   func(*state.Source[T]) runtime.Widget
	source  *state.Source[T]
	slot    childSlot
}

// NewLocal creates a widget with component-local state.
func NewLocal[T any](initial T, build func(*state.Source[T]) runtime.Widget) *Local[T] {
	return &Local[T]{initial: initial, build: build}
}

// Source returns the live source, or nil while unmounted.
func (l *Local[T]) Source() *state.Source[T] {
	return l.source
}

// Child returns the built child, or nil while unmounted.
func (l *Local[T]) Child() runtime.Widget {
	return l.slot.child
}

// Mount creates the source and builds the child.
func (l *Local[T]) Mount() {
	l.source = state.NewSource(l.initial)
	var child runtime.Widget
	if l.build != nil {
		child = l.build(l.source)
	}
	l.slot.replace(child, l.Services)
}

// Unmount releases the child and closes the source.
func (l *Local[T]) Unmount() {
	l.slot.release()
	if l.source != nil {
		l.source.Close()
		l.source = nil
	}
}

// Measure returns the child's size.
func (l *Local[T]) Measure(constraints runtime.Constraints) runtime.Size {
	return l.slot.measure(constraints)
}

// Layout assigns bounds to the widget and its child.
func (l *Local[T]) Layout(bounds runtime.Rect) {
	l.Base.Layout(bounds)
	l.slot.layout(bounds)
}

// Render draws the child.
func (l *Local[T]) Render(ctx runtime.RenderContext) {
	l.slot.render(ctx)
	l.ClearInvalidation()
}

// HandleMessage forwards messages to the child.
func (l *Local[T]) HandleMessage(msg runtime.Message) runtime.HandleResult {
	return l.slot.handleMessage(msg)
}

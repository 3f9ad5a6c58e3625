package widgets

import (
	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/runtime"
)

// childSlot holds a single dynamically built child.
// The owner attaches and detaches the child itself, so the child is not
// reported through ChildWidgets.
type childSlot struct {
	child  runtime.Widget
	bounds runtime.Rect
}

// replace detaches the current child and attaches next in its place.
func (s *childSlot) replace(next runtime.Widget, services runtime.Services) {
	s.release()
	s.child = next
	if next == nil {
		return
	}
	runtime.AttachTree(next, services)
	next.Layout(s.bounds)
}

// release detaches and drops the current child.
func (s *childSlot) release() {
	if s.child == nil {
		return
	}
	old := s.child
	s.child = nil
	runtime.DetachTree(old)
}

func (s *childSlot) layout(bounds runtime.Rect) {
	s.bounds = bounds
	if s.child != nil {
		s.child.Layout(bounds)
	}
}

func (s *childSlot) measure(constraints runtime.Constraints) runtime.Size {
	if s.child == nil {
		return constraints.Constrain(runtime.Size{})
	}
	return s.child.Measure(constraints)
}

func (s *childSlot) render(ctx runtime.RenderContext) {
	ctx = ctx.Sub(s.bounds)
	ctx.Clear(backend.DefaultStyle())
	if s.child != nil {
		s.child.Render(ctx)
	}
}

func (s *childSlot) handleMessage(msg runtime.Message) runtime.HandleResult {
	if s.child == nil {
		return runtime.Unhandled()
	}
	return s.child.HandleMessage(msg)
}

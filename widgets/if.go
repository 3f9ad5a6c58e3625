package widgets

import (
	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/state"
)

const (
	branchElse = -1
	branchNone = -2
)

type branch struct {
	cond state.Observable[bool]
	view func() runtime.Widget
}

// If renders the view of the first branch whose condition is true, or the
// Else view when none is. The child is rebuilt only when the chosen branch
// changes.
type If struct {
	Component
	branches []branch
	elseView func() runtime.Widget
	conds    []bool
	active   int
	ready    bool
	slot     childSlot
}

// NewIf creates a conditional with a single branch.
func NewIf(cond state.Observable[bool], view func() runtime.Widget) *If {
	w := &If{active: branchNone}
	return w.ElseIf(cond, view)
}

// ElseIf appends a branch tested after the previous ones.
func (w *If) ElseIf(cond state.Observable[bool], view func() runtime.Widget) *If {
	w.branches = append(w.branches, branch{cond: cond, view: view})
	return w
}

// Else sets the view rendered when no branch condition is true.
func (w *If) Else(view func() runtime.Widget) *If {
	w.elseView = view
	return w
}

// Active returns the index of the rendered branch, -1 for the Else view,
// or -2 before the first mount.
func (w *If) Active() int {
	return w.active
}

// Child returns the current child, if any.
func (w *If) Child() runtime.Widget {
	return w.slot.child
}

// Mount subscribes to every branch condition and renders the first true one.
func (w *If) Mount() {
	w.Subs.Clear()
	w.conds = make([]bool, len(w.branches))
	w.active = branchNone
	w.ready = false
	for i, b := range w.branches {
		Observe(&w.Component, b.cond, func(v bool) {
			w.conds[i] = v
			w.choose()
		})
	}
	w.ready = true
	w.choose()
}

// Unmount cancels the condition subscriptions and releases the child.
func (w *If) Unmount() {
	w.Subs.Clear()
	w.slot.release()
	w.active = branchNone
	w.ready = false
}

func (w *If) choose() {
	if !w.ready {
		return
	}
	next := branchElse
	for i, ok := range w.conds {
		if ok {
			next = i
			break
		}
	}
	if next == w.active {
		return
	}
	w.active = next

	view := w.elseView
	if next >= 0 {
		view = w.branches[next].view
	}
	var child runtime.Widget
	if view != nil {
		child = view()
	}
	w.slot.replace(child, w.Services)
}

// Measure returns the child's size.
func (w *If) Measure(constraints runtime.Constraints) runtime.Size {
	return w.slot.measure(constraints)
}

// Layout assigns bounds to the widget and its child.
func (w *If) Layout(bounds runtime.Rect) {
	w.Base.Layout(bounds)
	w.slot.layout(bounds)
}

// Render draws the active branch.
func (w *If) Render(ctx runtime.RenderContext) {
	w.slot.render(ctx)
	w.ClearInvalidation()
}

// HandleMessage forwards messages to the active branch.
func (w *If) HandleMessage(msg runtime.Message) runtime.HandleResult {
	return w.slot.handleMessage(msg)
}

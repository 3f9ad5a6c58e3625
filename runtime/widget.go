package runtime

import "github.com/odvcencio/furry-reactive/backend"

// Widget is a node in the render tree.
type Widget interface {
	Measure(constraints Constraints) Size
	Layout(bounds Rect)
	Render(ctx RenderContext)
	HandleMessage(msg Message) HandleResult
}

// ChildProvider exposes child widgets for tree walks.
type ChildProvider interface {
	ChildWidgets() []Widget
}

// BoundsProvider exposes a widget's laid-out bounds.
type BoundsProvider interface {
	Bounds() Rect
}

// HandleResult reports whether a message was consumed and which commands
// it produced.
type HandleResult struct {
	Handled  bool
	Commands []Command
}

// Handled marks a message as consumed.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled lets a message continue to other handlers.
func Unhandled() HandleResult {
	return HandleResult{}
}

// WithCommand consumes a message and emits commands.
func WithCommand(cmds ...Command) HandleResult {
	return HandleResult{Handled: true, Commands: cmds}
}

// RenderContext provides context to widgets during rendering.
type RenderContext struct {
	Buffer  *Buffer
	Focused bool // Is the containing layer focused?
	Bounds  Rect // Widget's allocated bounds
}

// Sub creates a new context for a child widget with adjusted bounds.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	return RenderContext{
		Buffer:  ctx.Buffer,
		Focused: ctx.Focused,
		Bounds:  bounds,
	}
}

// Clear fills the context bounds with spaces using the provided style.
func (ctx RenderContext) Clear(style backend.Style) {
	if ctx.Buffer == nil {
		return
	}
	ctx.Buffer.Fill(ctx.Bounds, ' ', style)
}

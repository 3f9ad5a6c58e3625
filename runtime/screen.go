package runtime

// Layer represents a layer in the overlay stack.
type Layer struct {
	Root  Widget
	Modal bool // If true, blocks input to layers below
}

// Screen manages the widget tree, overlay stack, and rendering.
type Screen struct {
	width, height int
	layers        []*Layer
	buffer        *Buffer
	services      Services
}

// NewScreen creates a new screen with the given dimensions.
func NewScreen(w, h int) *Screen {
	return &Screen{
		width:  w,
		height: h,
		buffer: NewBuffer(w, h),
	}
}

// SetServices configures app services for bindable widgets.
func (s *Screen) SetServices(services Services) {
	s.services = services
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Resize changes the screen dimensions and re-lays out every layer.
func (s *Screen) Resize(w, h int) {
	s.width = w
	s.height = h
	s.buffer.Resize(w, h)
	bounds := Rect{0, 0, w, h}
	for _, layer := range s.layers {
		if layer.Root != nil {
			layer.Root.Layout(bounds)
		}
	}
}

// Buffer returns the screen's render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// SetRoot replaces the base layer's root widget.
// The old root is detached before the new one is attached.
func (s *Screen) SetRoot(root Widget) {
	var oldRoot Widget
	if len(s.layers) == 0 {
		s.layers = append(s.layers, &Layer{Root: root})
	} else {
		oldRoot = s.layers[0].Root
		s.layers[0].Root = root
	}
	if oldRoot != nil {
		DetachTree(oldRoot)
	}
	s.attach(root)
	s.buffer.MarkAllDirty()
}

// Root returns the base layer's root widget.
func (s *Screen) Root() Widget {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[0].Root
}

// PushLayer adds a new layer on top of the stack.
// If modal is true, input won't pass to layers below.
func (s *Screen) PushLayer(root Widget, modal bool) {
	s.layers = append(s.layers, &Layer{Root: root, Modal: modal})
	s.attach(root)
}

// PopLayer removes the top layer from the stack.
// Returns false if only the base layer remains.
func (s *Screen) PopLayer() bool {
	if len(s.layers) <= 1 {
		return false
	}
	top := s.layers[len(s.layers)-1]
	s.layers = s.layers[:len(s.layers)-1]
	if top.Root != nil {
		DetachTree(top.Root)
	}
	s.buffer.MarkAllDirty()
	return true
}

// LayerCount returns the number of layers.
func (s *Screen) LayerCount() int {
	return len(s.layers)
}

func (s *Screen) attach(root Widget) {
	if root == nil {
		return
	}
	AttachTree(root, s.services)
	root.Layout(Rect{0, 0, s.width, s.height})
}

// Render draws all layers to the buffer, bottom to top.
func (s *Screen) Render() {
	ctx := RenderContext{
		Buffer: s.buffer,
		Bounds: Rect{0, 0, s.width, s.height},
	}
	for i, layer := range s.layers {
		if layer.Root == nil {
			continue
		}
		ctx.Focused = i == len(s.layers)-1
		layer.Root.Render(ctx)
	}
}

// HandleMessage dispatches a message to the top layer first.
// Unhandled messages fall through to lower layers unless a modal layer
// is in the way. Overlay commands are applied here; every command is
// also returned to the caller.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	for i := len(s.layers) - 1; i >= 0; i-- {
		layer := s.layers[i]
		if layer.Root == nil {
			continue
		}
		result := layer.Root.HandleMessage(msg)
		for _, cmd := range result.Commands {
			s.handleCommand(cmd)
		}
		if result.Handled {
			return result
		}
		if layer.Modal {
			break
		}
	}
	return Unhandled()
}

func (s *Screen) handleCommand(cmd Command) {
	switch c := cmd.(type) {
	case PopOverlay:
		s.PopLayer()
	case PushOverlay:
		s.PushLayer(c.Widget, c.Modal)
	}
}

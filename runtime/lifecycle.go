package runtime

// Lifecycle is implemented by widgets that need mount/unmount hooks.
// Widgets subscribe to observables in Mount and release them in Unmount.
type Lifecycle interface {
	Mount()
	Unmount()
}

// Bindable widgets receive app services before they are mounted.
type Bindable interface {
	Bind(services Services)
}

// Unbindable widgets release app services after they are unmounted.
type Unbindable interface {
	Unbind()
}

// AttachTree binds services and mounts every widget under root.
// Parents are bound and mounted before their children.
func AttachTree(root Widget, services Services) {
	walkPre(root, func(w Widget) {
		if b, ok := w.(Bindable); ok && !services.isZero() {
			b.Bind(services)
		}
	})
	MountTree(root)
}

// DetachTree unmounts and unbinds every widget under root.
// Children are released before their parents.
func DetachTree(root Widget) {
	UnmountTree(root)
	walkPost(root, func(w Widget) {
		if u, ok := w.(Unbindable); ok {
			u.Unbind()
		}
	})
}

// MountTree calls Mount on widgets that implement Lifecycle.
func MountTree(root Widget) {
	walkPre(root, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Mount()
		}
	})
}

// UnmountTree calls Unmount on widgets that implement Lifecycle.
func UnmountTree(root Widget) {
	walkPost(root, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Unmount()
		}
	})
}

func walkPre(w Widget, fn func(Widget)) {
	if w == nil {
		return
	}
	fn(w)
	if children, ok := w.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			walkPre(child, fn)
		}
	}
}

func walkPost(w Widget, fn func(Widget)) {
	if w == nil {
		return
	}
	if children, ok := w.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			walkPost(child, fn)
		}
	}
	fn(w)
}

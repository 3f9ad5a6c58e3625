package state

// Mapped is an observable that transforms every value of another observable.
type Mapped[T, B any] struct {
	inner Observable[T]
	f     func(T) B
}

// Map derives an observable that applies f to every value o emits.
// f is shared by all subscriptions made through the result, so stateful
// closures see every value from every subscription.
func Map[T, B any](o Observable[T], f func(T) B) *Mapped[T, B] {
	return &Mapped[T, B]{inner: o, f: f}
}

// Subscribe subscribes to the wrapped observable. The returned token
// cancels the upstream registration.
func (m *Mapped[T, B]) Subscribe(fn func(B)) *Unsub {
	if m == nil || m.inner == nil || m.f == nil || fn == nil {
		return nil
	}
	f := m.f
	return m.inner.Subscribe(func(v T) {
		fn(f(v))
	})
}

// With samples the wrapped observable and transforms the value.
func (m *Mapped[T, B]) With(fn func(value B, ok bool)) {
	if fn == nil {
		return
	}
	if m == nil || m.inner == nil || m.f == nil {
		var zero B
		fn(zero, false)
		return
	}
	m.inner.With(func(v T, ok bool) {
		if !ok {
			var zero B
			fn(zero, false)
			return
		}
		fn(m.f(v), true)
	})
}

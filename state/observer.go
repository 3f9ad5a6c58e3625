package state

import (
	"fmt"
	"weak"
)

// Observable is the read side of reactive state.
type Observable[T any] interface {
	// Subscribe calls fn with the current value, then again after every
	// change. It returns nil when the owning Source is gone.
	Subscribe(fn func(T)) *Unsub
	// With samples the current value without subscribing.
	// ok is false once the owning Source is gone.
	With(fn func(value T, ok bool))
}

// With samples o and returns f's result.
func With[T, O any](o Observable[T], f func(value T, ok bool) O) O {
	var out O
	if f == nil {
		return out
	}
	if o == nil {
		var zero T
		return f(zero, false)
	}
	o.With(func(value T, ok bool) {
		out = f(value, ok)
	})
	return out
}

// Observer is a weak handle to a Source.
// The zero Observer is inert.
type Observer[T any] struct {
	ref weak.Pointer[shared[T]]
	id  uint64
}

func (o Observer[T]) resolve() *shared[T] {
	st := o.ref.Value()
	if st == nil || st.closed {
		return nil
	}
	return st
}

// Alive reports whether the owning Source still exists.
func (o Observer[T]) Alive() bool {
	return o.resolve() != nil
}

// Clone returns an observer of the same source with a fresh subscription id.
// Subscriptions made through o are not shared with the clone.
func (o Observer[T]) Clone() Observer[T] {
	st := o.resolve()
	if st == nil {
		return Observer[T]{ref: o.ref}
	}
	return Observer[T]{ref: o.ref, id: st.allocID()}
}

// Subscribe pushes the current value to fn and registers it under this
// observer's id, replacing any callback previously registered through o.
// It returns nil when fn is nil or the source is gone.
func (o Observer[T]) Subscribe(fn func(T)) *Unsub {
	if fn == nil {
		return nil
	}
	st := o.resolve()
	if st == nil {
		return nil
	}
	func() {
		st.borrow.acquireShared()
		defer st.borrow.releaseShared()
		fn(st.value)
	}()
	gen := st.store(o.id, fn)
	return &Unsub{id: o.id, gen: gen, target: sharedRef[T]{ref: o.ref}}
}

// With calls fn with the current value, or with ok=false if the source is gone.
func (o Observer[T]) With(fn func(value T, ok bool)) {
	if fn == nil {
		return
	}
	st := o.resolve()
	if st == nil {
		var zero T
		fn(zero, false)
		return
	}
	st.borrow.acquireShared()
	defer st.borrow.releaseShared()
	fn(st.value, true)
}

// String formats the current value, or "N/A" once the source is gone.
func (o Observer[T]) String() string {
	return With[T, string](o, func(v T, ok bool) string {
		if !ok {
			return "N/A"
		}
		return fmt.Sprint(v)
	})
}

type detacher interface {
	detach(id, gen uint64)
}

type sharedRef[T any] struct {
	ref weak.Pointer[shared[T]]
}

func (r sharedRef[T]) detach(id, gen uint64) {
	st := r.ref.Value()
	if st == nil || st.closed {
		return
	}
	st.remove(id, gen)
}

// Unsub cancels one subscription.
type Unsub struct {
	id     uint64
	gen    uint64
	target detacher
	done   bool
}

// Unsubscribe removes the callback from its source. It is safe to call more
// than once, on a nil token, or after the source has been closed.
func (u *Unsub) Unsubscribe() {
	if u == nil || u.done {
		return
	}
	u.done = true
	if u.target != nil {
		u.target.detach(u.id, u.gen)
	}
	u.target = nil
}

// Package state provides the reactive primitives used by terminal UIs.
//
// A Source owns a value. Observers derived from it hold weak references and
// can subscribe callbacks that run synchronously, in subscription id order,
// every time the Source changes. Closing the Source (or letting it become
// unreachable) makes every Observer inert.
//
// Sources are not safe for concurrent use. Mutations are expected to be
// serialized by the caller, usually the app update loop.
package state

import "weak"

type slot[T any] struct {
	fn    func(T)
	gen   uint64
	fresh bool
}

// shared is the value cell plus the subscriber registry.
// Slot index is the subscription id; cleared slots are never reused.
type shared[T any] struct {
	value     T
	slots     []slot[T]
	nextID    uint64
	nextGen   uint64
	borrow    borrowFlag
	closed    bool
	notifying bool
}

func (s *shared[T]) allocID() uint64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *shared[T]) store(id uint64, fn func(T)) uint64 {
	for uint64(len(s.slots)) <= id {
		s.slots = append(s.slots, slot[T]{})
	}
	s.nextGen++
	s.slots[id] = slot[T]{fn: fn, gen: s.nextGen, fresh: s.notifying}
	return s.nextGen
}

func (s *shared[T]) remove(id, gen uint64) {
	if id >= uint64(len(s.slots)) {
		return
	}
	if s.slots[id].gen != gen {
		return
	}
	s.slots[id] = slot[T]{}
}

func (s *shared[T]) live() int {
	n := 0
	for _, sl := range s.slots {
		if sl.fn != nil {
			n++
		}
	}
	return n
}

// notify runs one notification pass over the registry.
// Slots cleared during the pass are skipped, and slots registered during
// the pass already received the new value through their initial push.
func (s *shared[T]) notify() {
	if len(s.slots) == 0 {
		return
	}
	s.borrow.acquireShared()
	s.notifying = true
	defer func() {
		s.notifying = false
		for i := range s.slots {
			s.slots[i].fresh = false
		}
		s.borrow.releaseShared()
	}()
	for i := 0; i < len(s.slots); i++ {
		sl := s.slots[i]
		if sl.fn == nil || sl.fresh {
			continue
		}
		sl.fn(s.value)
	}
}

// Source is the single owner and sole mutator of a reactive value.
type Source[T any] struct {
	state *shared[T]
	ref   weak.Pointer[shared[T]]
}

// NewSource creates a source holding value with no observers.
func NewSource[T any](value T) *Source[T] {
	st := &shared[T]{value: value}
	return &Source[T]{state: st, ref: weak.Make(st)}
}

func (s *Source[T]) mustLive() *shared[T] {
	if s == nil || s.state == nil || s.state.closed {
		panic(ErrSourceClosed)
	}
	return s.state
}

// Observer returns a new observer handle with its own subscription id.
// A closed source returns an inert observer.
func (s *Source[T]) Observer() Observer[T] {
	if s == nil || s.state == nil || s.state.closed {
		return Observer[T]{}
	}
	return Observer[T]{ref: s.ref, id: s.state.allocID()}
}

// Get returns the current value.
func (s *Source[T]) Get() T {
	if s == nil || s.state == nil || s.state.closed {
		var zero T
		return zero
	}
	st := s.state
	st.borrow.acquireShared()
	defer st.borrow.releaseShared()
	return st.value
}

// Set replaces the value and notifies every live subscriber.
// It panics with ErrReentrantMutation when called from inside a callback
// of the same source.
func (s *Source[T]) Set(value T) {
	st := s.mustLive()
	st.borrow.acquireExclusive()
	st.value = value
	st.borrow.releaseExclusive()
	st.notify()
}

// Update mutates the value in place and notifies subscribers.
// A nil fn does nothing.
func (s *Source[T]) Update(fn func(*T)) {
	if fn == nil {
		return
	}
	SetWith(s, func(v *T) struct{} {
		fn(v)
		return struct{}{}
	})
}

// SetWith gives f exclusive access to the value, notifies subscribers and
// returns f's result once notification has completed.
func SetWith[T, U any](s *Source[T], f func(*T) U) U {
	st := s.mustLive()
	var out U
	if f == nil {
		return out
	}
	func() {
		st.borrow.acquireExclusive()
		defer st.borrow.releaseExclusive()
		out = f(&st.value)
	}()
	st.notify()
	return out
}

// Subscribers reports how many callbacks are currently registered.
func (s *Source[T]) Subscribers() int {
	if s == nil || s.state == nil {
		return 0
	}
	return s.state.live()
}

// Close tears the source down. Observers become inert and registered
// callbacks are released. Closing twice is a no-op.
func (s *Source[T]) Close() {
	if s == nil || s.state == nil || s.state.closed {
		return
	}
	st := s.state
	st.borrow.acquireExclusive()
	defer st.borrow.releaseExclusive()
	var zero T
	st.closed = true
	st.value = zero
	st.slots = nil
}

// Closed reports whether Close has been called.
func (s *Source[T]) Closed() bool {
	return s == nil || s.state == nil || s.state.closed
}

package state

// Subscriptions tracks and clears multiple subscription tokens.
type Subscriptions struct {
	unsubs []*Unsub
}

// Add tracks a token. Nil tokens are ignored.
func (s *Subscriptions) Add(unsub *Unsub) {
	if s == nil || unsub == nil {
		return
	}
	s.unsubs = append(s.unsubs, unsub)
}

// Observe subscribes fn to o and tracks the token.
// It reports false when o has no live source.
func Observe[T any](s *Subscriptions, o Observable[T], fn func(T)) bool {
	if s == nil || o == nil || fn == nil {
		return false
	}
	unsub := o.Subscribe(fn)
	if unsub == nil {
		return false
	}
	s.Add(unsub)
	return true
}

// Len returns the number of tracked tokens.
func (s *Subscriptions) Len() int {
	if s == nil {
		return 0
	}
	return len(s.unsubs)
}

// Clear unsubscribes all tracked tokens.
func (s *Subscriptions) Clear() {
	if s == nil {
		return
	}
	unsubs := s.unsubs
	s.unsubs = nil
	for _, unsub := range unsubs {
		unsub.Unsubscribe()
	}
}

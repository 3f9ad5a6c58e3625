package state

import "errors"

// Errors used as panic values for misuse of a Source.
// Recovered values can be matched with errors.Is.
var (
	ErrReentrantMutation = errors.New("state: source mutated while its value is borrowed")
	ErrBorrowedMutably   = errors.New("state: source value read during mutation")
	ErrSourceClosed      = errors.New("state: source is closed")
)

// borrowFlag is a runtime-checked borrow counter for a signal value.
// Positive values count shared borrows; -1 marks an exclusive borrow.
type borrowFlag int

func (b *borrowFlag) acquireShared() {
	if *b < 0 {
		panic(ErrBorrowedMutably)
	}
	*b++
}

func (b *borrowFlag) releaseShared() {
	*b--
}

func (b *borrowFlag) acquireExclusive() {
	if *b != 0 {
		panic(ErrReentrantMutation)
	}
	*b = -1
}

func (b *borrowFlag) releaseExclusive() {
	*b = 0
}

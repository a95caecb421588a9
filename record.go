package pmutex

import (
	"sync/atomic"

	"github.com/gammazero/deque"
)

// record is the shared synchronization state behind an initialized
// mutex. The lock counter and trylock guard are manipulated with
// lock-free atomics so a goroutine can probe-and-revert a claim
// without holding the handle slot; every other field mutates only
// while the slot is held exclusively.
type record struct {
	lock    atomic.Int32 // outstanding holds minus one; -1 means free
	tryLock atomic.Int32 // nonzero while a TryLock probe is in flight

	owner      uint64 // goroutine holding the mutex, 0 when free
	lastOwner  uint64 // most recent holder; persists past Unlock
	lastWaiter uint64 // most recent goroutine to begin waiting
	waiters    int    // goroutines currently recorded as waiting

	parked deque.Deque[chan struct{}] // wake channels of parked waiters, FIFO

	typ    Type    // behavior type, copied from Attr at Init
	shared PShared // process-shared disposition, copied at Init
}

// newRecord allocates the record for a freshly initialized mutex. A
// nil attr selects the defaults; the Default type resolves to
// Recursive here so the lock engine only ever sees the three concrete
// types.
func newRecord(attr *Attr) *record {
	typ, shared := Default, Private
	if attr != nil {
		typ, shared = attr.typ, attr.shared
	}
	if typ == Default {
		typ = Recursive
	}

	r := &record{typ: typ, shared: shared}
	r.lock.Store(-1)
	return r
}

// park registers a wake channel for a waiter about to suspend. Called
// with the handle slot held; the returned channel is closed by the
// next broadcast.
func (r *record) park() chan struct{} {
	ch := make(chan struct{})
	r.parked.PushBack(ch)
	return ch
}

// broadcast wakes every parked waiter. Called with the handle slot
// held, when ownership is released or the record is being destroyed.
// Channels left behind by cancelled waiters are closed harmlessly.
func (r *record) broadcast() {
	for r.parked.Len() > 0 {
		close(r.parked.PopFront())
	}
}

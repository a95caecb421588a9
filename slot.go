package pmutex

import (
	"runtime"
	"sync/atomic"
)

// Reserved marker records. They tag slot states and are never read as
// records; address identity is all that matters.
var (
	slotHeld = new(record) // slot is held for exclusive access
	slotDead = new(record) // mutex was destroyed
)

// slot is the exclusive-access gate over a mutex handle's stored
// record. The stored pointer is the single source of truth for the
// handle's state:
//
//	nil       not yet constructed (the static-initializer sentinel)
//	slotHeld  some goroutine has exclusive access right now
//	slotDead  destroyed; all operations fail
//	other     live record
//
// acquire/release pairs serialize globally per handle, which is what
// makes lazy initialization race-free: the goroutine that observes
// nil while holding exclusivity is the only one permitted to install
// a record. The slot itself makes no fairness promise; fairness lives
// in the lock engine.
type slot struct {
	p atomic.Pointer[record]
}

// acquire blocks until no other goroutine holds the slot, then
// returns the stored record (possibly nil or slotDead) with
// exclusivity retained. Every acquire must be paired with exactly one
// release, on every exit path.
func (s *slot) acquire() *record {
	for {
		r := s.p.Load()
		if r != slotHeld && s.p.CompareAndSwap(r, slotHeld) {
			return r
		}
		runtime.Gosched()
	}
}

// tryAcquire is the non-blocking variant of acquire. Under contention
// it returns ok == false immediately, without retrying.
func (s *slot) tryAcquire() (r *record, ok bool) {
	r = s.p.Load()
	if r == slotHeld || !s.p.CompareAndSwap(r, slotHeld) {
		return nil, false
	}
	return r, true
}

// release stores r and relinquishes exclusivity.
func (s *slot) release(r *record) {
	s.p.Store(r)
}

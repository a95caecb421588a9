package pmutex

import (
	"context"
	"runtime"
)

// Mutex is a POSIX-style mutual exclusion lock. The zero value is a
// statically-declared, not-yet-constructed mutex: the first Lock or
// TryLock initializes it with default attributes. Use Init to choose
// non-default attributes.
//
// A Mutex must not be copied after first use.
type Mutex struct {
	noCopy noCopy
	slot   slot
}

// Init initializes the mutex with the given attributes, or with
// defaults if attr is nil. Initializing a mutex that is already
// initialized is undefined behavior; the existing record is replaced
// and anyone parked on it is released.
//
// It returns ErrUnsupported if attr requests a process-shared mutex
// on a platform without shared-mutex support, allocating nothing, and
// ErrInvalid on a nil receiver.
func (m *Mutex) Init(attr *Attr) error {
	if m == nil {
		return ErrInvalid
	}
	if attr != nil && attr.shared == Shared && !sharedSupported {
		return ErrUnsupported
	}

	old := m.slot.acquire()
	if old != nil && old != slotDead {
		old.broadcast()
	}
	m.slot.release(newRecord(attr))
	return nil
}

// Destroy releases the mutex's resources. Destroying a
// statically-declared mutex that was never used succeeds and is all
// that is needed. It returns ErrBusy, leaving the mutex intact, if
// any goroutine holds it, and ErrInvalid on a nil receiver or a mutex
// already destroyed. A destroyed mutex fails every subsequent
// operation with ErrInvalid.
func (m *Mutex) Destroy() error {
	if m == nil {
		return ErrInvalid
	}

	r := m.slot.acquire()
	switch r {
	case nil:
		m.slot.release(slotDead)
		return nil
	case slotDead:
		m.slot.release(slotDead)
		return ErrInvalid
	}

	if r.owner != 0 {
		m.slot.release(r)
		return ErrBusy
	}

	// Waiters parked during a fairness deferral must not sleep past
	// destruction; wake them so they observe the dead slot.
	r.broadcast()
	m.slot.release(slotDead)
	return nil
}

// Lock acquires the mutex, blocking while another goroutine holds it.
// Behavior when the calling goroutine already holds the mutex depends
// on its type: Normal blocks forever, ErrorCheck returns ErrDeadlock,
// Recursive records a nested hold.
//
// ctx cancels a blocked call: the wait is the sole cancellation
// point, so an uncontended Lock succeeds even with an
// already-cancelled context, and a cancelled wait unwinds without
// leaving any bookkeeping behind, returning ctx.Err(). A nil ctx
// never cancels.
//
// It returns ErrInvalid on a nil receiver or a destroyed mutex.
func (m *Mutex) Lock(ctx context.Context) error {
	if m == nil {
		return ErrInvalid
	}
	self := gid()

	r := m.slot.acquire()
	for {
		switch r {
		case nil:
			r = newRecord(nil)
		case slotDead:
			m.slot.release(slotDead)
			return ErrInvalid
		}

		if r.lock.Add(1) == 0 {
			// The lock is provisionally ours, but give recorded
			// waiters their turn if we held it last cycle.
			if r.waiters > 0 && r.lastOwner == self {
				if r.lastWaiter == self {
					// We were also the last to begin waiting, so the
					// recorded waiters have stopped waiting without
					// decrementing the count. If that's wrong they
					// will increment it again.
					r.waiters = 0
				} else {
					var err error
					if r, err = m.wait(ctx, r, self); err != nil {
						return err
					}
					continue
				}
			}
			r.owner = self
			r.lastOwner = self
			r.lastWaiter = 0
			m.slot.release(r)
			return nil
		}

		// Already held. Pause while a TryLock probe is in flight so
		// its transient counter state is never acted on.
		for r.tryLock.Load() != 0 {
			runtime.Gosched()
		}

		switch r.typ {
		case Recursive:
			if r.owner == self {
				// Nested hold; the increment above already counted it.
				r.owner = self
				r.lastOwner = self
				r.lastWaiter = 0
				m.slot.release(r)
				return nil
			}
		case ErrorCheck:
			if r.owner == self {
				r.lock.Add(-1)
				m.slot.release(r)
				return ErrDeadlock
			}
		}

		var err error
		if r, err = m.wait(ctx, r, self); err != nil {
			return err
		}
	}
}

// wait records the caller as a waiter, reverts its optimistic claim,
// parks, and suspends until a release broadcast or cancellation.
// Called with the slot held; returns with the slot held and the
// waiter count decremented again. The slot is always released before
// suspending and the reacquire-and-decrement step always runs, so
// cancellation cannot leave the record inconsistent.
func (m *Mutex) wait(ctx context.Context, r *record, self uint64) (*record, error) {
	r.waiters++
	r.lastWaiter = self
	r.lock.Add(-1)
	ch := r.park()
	m.slot.release(r)

	var done <-chan struct{}
	if ctx != nil {
		done = ctx.Done()
	}

	var err error
	select {
	case <-ch:
	case <-done:
		err = ctx.Err()
	}

	r = m.slot.acquire()
	if r != nil && r != slotDead && r.waiters > 0 {
		// A stale-waiter reset may have zeroed the count already;
		// tolerate that rather than going negative.
		r.waiters--
	}
	if err != nil {
		// A deferring former owner may be parked waiting for us to
		// take the lock. If the lock is free, wake the parked so
		// nobody sleeps on account of a waiter that is gone.
		if r != nil && r != slotDead && r.lock.Load() == -1 && r.parked.Len() > 0 {
			r.broadcast()
		}
		m.slot.release(r)
		return nil, err
	}
	return r, nil
}

// TryLock acquires the mutex without blocking. It returns ErrBusy if
// the mutex is held by any goroutine, including the caller: TryLock
// never grants a nested hold, even on a Recursive mutex. Contention
// on the handle itself also reports ErrBusy.
//
// It returns ErrInvalid on a nil receiver or a destroyed mutex.
func (m *Mutex) TryLock() error {
	if m == nil {
		return ErrInvalid
	}

	r, ok := m.slot.tryAcquire()
	if !ok {
		return ErrBusy
	}
	switch r {
	case nil:
		r = newRecord(nil)
	case slotDead:
		m.slot.release(slotDead)
		return ErrInvalid
	}

	if r.lock.Load() != -1 {
		m.slot.release(r)
		return ErrBusy
	}

	self := gid()
	var err error

	// The raised guard keeps blocking waiters from acting on the
	// transient counter state between the increment and its revert.
	r.tryLock.Add(1)
	if r.lock.Add(1) == 0 {
		r.owner = self
		r.lastOwner = self
		r.lastWaiter = 0
	} else {
		r.lock.Add(-1)
		err = ErrBusy
	}
	r.tryLock.Add(-1)

	m.slot.release(r)
	return err
}

// Unlock releases one hold of the mutex. For a Recursive mutex the
// mutex becomes available to other goroutines only when the last
// outstanding hold is released.
//
// It returns ErrNotOwner if the calling goroutine does not hold the
// mutex, including on a never-locked or not-yet-constructed mutex,
// and ErrInvalid on a nil receiver or a destroyed mutex.
func (m *Mutex) Unlock() error {
	if m == nil {
		return ErrInvalid
	}

	r := m.slot.acquire()
	switch r {
	case nil:
		// Never constructed, so nobody can hold it.
		m.slot.release(nil)
		return ErrNotOwner
	case slotDead:
		m.slot.release(slotDead)
		return ErrInvalid
	}

	if r.owner != gid() {
		m.slot.release(r)
		return ErrNotOwner
	}

	switch r.typ {
	case Normal, ErrorCheck:
		r.owner = 0
	default: // Recursive
		if r.lock.Load() == 0 {
			r.owner = 0
		}
	}

	// Owner is cleared before the decrement: a claimant probing the
	// counter must never see it reach -1 while owner is still set.
	r.lock.Add(-1)

	if r.owner == 0 {
		r.broadcast()
	}

	m.slot.release(r)
	return nil
}

// WaitCount returns the number of goroutines currently recorded as
// waiting to acquire the mutex. It reports 0 for a mutex that is not
// initialized.
func (m *Mutex) WaitCount() int {
	if m == nil {
		return 0
	}

	r := m.slot.acquire()
	n := 0
	if r != nil && r != slotDead {
		n = r.waiters
	}
	m.slot.release(r)
	return n
}

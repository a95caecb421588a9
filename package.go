// Package pmutex implements POSIX-style mutual exclusion primitives
// on top of goroutines. It provides the three classic mutex behavior
// types (normal, error-checking, recursive), statically-declarable
// mutexes that initialize lazily on first use, and cancellation of
// blocked lock attempts via context.
//
// Key components:
//
//   - Mutex: The mutex itself. Its zero value is a valid,
//     not-yet-constructed mutex that initializes itself with default
//     attributes on first Lock or TryLock, so package-level and
//     struct-field declarations need no constructor call.
//
//   - Attr: Configuration captured at initialization time. Holds the
//     behavior type and the process-shared disposition. Mutating an
//     Attr never affects mutexes already initialized from it.
//
//   - Type: Behavior under relocking by the owner. Normal blocks
//     forever, ErrorCheck reports ErrDeadlock, Recursive counts
//     nested holds. Default is an alias that resolves to Recursive.
//
// Every operation returns a sentinel error from a small taxonomy
// (ErrInvalid, ErrBusy, ErrDeadlock, ErrNotOwner, ErrUnsupported)
// matched with errors.Is; nothing panics across the API boundary
// except the sync.Locker adapter, which adopts sync.Mutex's
// convention of panicking on misuse.
//
// Fairness: a goroutine that most recently released a mutex with
// waiters recorded will not reacquire it ahead of those waiters
// unless the recorded waiter is provably stale.
package pmutex

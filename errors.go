package pmutex

import "errors"

var (
	// ErrInvalid reports a nil mutex, a destroyed mutex, or an
	// otherwise unusable argument.
	ErrInvalid = errors.New("pmutex: invalid argument")

	// ErrBusy reports that the mutex could not be taken without
	// blocking, or that Destroy found the mutex held.
	ErrBusy = errors.New("pmutex: mutex busy")

	// ErrDeadlock reports that an ErrorCheck mutex was relocked by
	// the goroutine that already owns it.
	ErrDeadlock = errors.New("pmutex: deadlock would occur")

	// ErrNotOwner reports an Unlock by a goroutine that does not hold
	// the mutex, including Unlock of a never-locked mutex.
	ErrNotOwner = errors.New("pmutex: caller does not hold the mutex")

	// ErrUnsupported reports a request for process-shared mutexes on
	// a platform without shared-mutex support.
	ErrUnsupported = errors.New("pmutex: process-shared mutexes unsupported")
)

package pmutex

import (
	"context"
	"sync"
)

var _ sync.Locker = (*Locker)(nil)

// Locker adapts a Mutex to the sync.Locker interface for APIs such as
// sync.Cond that expect one. Lock and Unlock panic on any error,
// mirroring how sync.Mutex treats misuse.
type Locker struct {
	m   *Mutex
	ctx context.Context
}

// Locker returns a sync.Locker view of m. ctx cancels blocked Lock
// calls, turning cancellation into a panic; a nil ctx never cancels.
func (m *Mutex) Locker(ctx context.Context) *Locker {
	return &Locker{m: m, ctx: ctx}
}

// Lock acquires the underlying mutex, panicking on any error.
func (l *Locker) Lock() {
	if err := l.m.Lock(l.ctx); err != nil {
		panic(err)
	}
}

// Unlock releases the underlying mutex, panicking on any error.
func (l *Locker) Unlock() {
	if err := l.m.Unlock(); err != nil {
		panic(err)
	}
}

package pmutex

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSlotStates(t *testing.T) {
	r := require.New(t)

	// The zero slot stores the unconstructed sentinel.
	var s slot
	got := s.acquire()
	r.Nil(got)

	// While held, non-blocking acquisition fails.
	_, ok := s.tryAcquire()
	r.False(ok)

	rec := newRecord(nil)
	s.release(rec)

	got, ok = s.tryAcquire()
	r.True(ok)
	r.Same(rec, got)
	s.release(got)

	got = s.acquire()
	r.Same(rec, got)
	s.release(got)
}

func TestSlotSerializes(t *testing.T) {
	r := require.New(t)

	var s slot
	s.release(newRecord(nil))

	// The counter is protected only by acquire/release pairs; any
	// lost update means the slot failed to serialize.
	n := 0
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 500; j++ {
				rec := s.acquire()
				n++
				s.release(rec)
			}
			return nil
		})
	}
	r.NoError(g.Wait())
	r.Equal(4000, n)
}

func TestSlotMarkersDistinct(t *testing.T) {
	r := require.New(t)

	r.NotSame(slotHeld, slotDead)
	r.NotNil(slotHeld)
	r.NotNil(slotDead)
}

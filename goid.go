package pmutex

import "runtime"

// gid returns an opaque identity token for the calling goroutine. The
// token is stable for the goroutine's lifetime and comparable for
// equality only; zero is reserved to mean "no goroutine".
//
// The token is the runtime's goroutine ID, recovered by parsing the
// first line of the goroutine's stack trace. This is the slow but
// portable technique; lock operations already pay for an atomic
// handshake, so the extra parse does not change their character.
func gid() uint64 {
	// The first line has the form "goroutine 123 [running]:". A small
	// buffer is enough; runtime.Stack truncates, which is fine since
	// the ID appears within the first few bytes.
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGID(buf[:n])
}

// parseGID extracts the numeric goroutine ID from stack trace bytes
// of the form "goroutine 123 [...". It returns 0 if the bytes do not
// match that shape.
func parseGID(b []byte) uint64 {
	const prefix = "goroutine "
	if len(b) < len(prefix) || string(b[:len(prefix)]) != prefix {
		return 0
	}
	b = b[len(prefix):]

	var id uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}

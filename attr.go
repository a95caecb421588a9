package pmutex

// Type selects a mutex's behavior when its owner attempts to relock
// it without an intervening unlock.
type Type int

const (
	// Default is resolved to Recursive when a mutex is initialized.
	Default Type = iota

	// Normal mutexes perform no deadlock detection. Relocking by the
	// owner blocks forever; unlocking by a non-owner is reported as
	// ErrNotOwner.
	Normal

	// ErrorCheck mutexes detect relocking by the owner and report it
	// as ErrDeadlock instead of blocking.
	ErrorCheck

	// Recursive mutexes count nested holds by the owner. The mutex is
	// released for other goroutines only after a matching number of
	// unlocks.
	Recursive
)

// String returns the name of the type constant.
func (t Type) String() string {
	switch t {
	case Default:
		return "Default"
	case Normal:
		return "Normal"
	case ErrorCheck:
		return "ErrorCheck"
	case Recursive:
		return "Recursive"
	default:
		return "Type(invalid)"
	}
}

// PShared is the process-shared disposition of a mutex.
type PShared int

const (
	// Private mutexes synchronize goroutines within one process.
	Private PShared = iota

	// Shared marks a mutex as shareable across processes through
	// shared memory. Not supported on this platform; requesting it
	// fails with ErrUnsupported.
	Shared
)

// String returns the name of the disposition constant.
func (s PShared) String() string {
	switch s {
	case Private:
		return "Private"
	case Shared:
		return "Shared"
	default:
		return "PShared(invalid)"
	}
}

// sharedSupported reports platform support for process-shared
// mutexes. Goroutines never span processes, so it is always false.
const sharedSupported = false

// Attr configures a mutex at initialization time. Its values are
// copied into the mutex record by Init; mutating an Attr afterwards
// never affects mutexes already initialized from it.
type Attr struct {
	typ    Type
	shared PShared
}

// NewAttr returns an attribute object with the default configuration:
// Private disposition and Default (recursive) type.
func NewAttr() *Attr {
	return &Attr{typ: Default, shared: Private}
}

// Type returns the configured behavior type.
func (a *Attr) Type() Type {
	return a.typ
}

// SetType sets the behavior type. It returns ErrInvalid for values
// that are not one of the defined Type constants.
func (a *Attr) SetType(t Type) error {
	switch t {
	case Default, Normal, ErrorCheck, Recursive:
		a.typ = t
		return nil
	default:
		return ErrInvalid
	}
}

// PShared returns the configured process-shared disposition.
func (a *Attr) PShared() PShared {
	return a.shared
}

// SetPShared sets the process-shared disposition. Requesting Shared
// on a platform without shared-mutex support returns ErrUnsupported
// and leaves the attribute Private. Values other than Private and
// Shared return ErrInvalid.
func (a *Attr) SetPShared(s PShared) error {
	switch s {
	case Private:
		a.shared = Private
		return nil
	case Shared:
		if !sharedSupported {
			a.shared = Private
			return ErrUnsupported
		}
		a.shared = Shared
		return nil
	default:
		return ErrInvalid
	}
}

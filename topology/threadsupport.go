package topology

import "fmt"

// ThreadSupport is the MPI thread-support level spec.md §3 requires
// RankState to carry: how much concurrent access the messaging library
// tolerates from a multi-threaded caller.
type ThreadSupport int

const (
	// Single means only one thread may ever call into the library, and
	// it must not be multi-threaded at all.
	Single ThreadSupport = iota
	// Funneled means multiple threads exist, but only the thread that
	// initialised the library may call into it.
	Funneled
	// Serialized means multiple threads may call into the library, but
	// the caller must ensure only one does so at a time.
	Serialized
	// Multiple means any thread may call into the library at any time
	// with no caller-side serialization required.
	Multiple
)

func (t ThreadSupport) String() string {
	switch t {
	case Single:
		return "Single"
	case Funneled:
		return "Funneled"
	case Serialized:
		return "Serialized"
	case Multiple:
		return "Multiple"
	default:
		return fmt.Sprintf("ThreadSupport(%d)", int(t))
	}
}

// AtLeast reports whether t provides at least the level required.
func (t ThreadSupport) AtLeast(required ThreadSupport) bool {
	return t >= required
}

// ParseThreadSupport maps a --thread-support argument to a
// ThreadSupport, returning an error for anything else (spec.md §7's
// "configuration error" class).
func ParseThreadSupport(name string) (ThreadSupport, error) {
	switch name {
	case "single":
		return Single, nil
	case "funneled":
		return Funneled, nil
	case "serialized":
		return Serialized, nil
	case "multiple":
		return Multiple, nil
	default:
		return 0, fmt.Errorf("unknown thread-support level: %s", name)
	}
}

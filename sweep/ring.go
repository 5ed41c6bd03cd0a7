package sweep

import "sync"

// ring is a token-passing discipline over T per-thread mutexes (spec.md
// §4.4 C6): thread i may enter a critical section only while holding
// locks[i], and on leaving it hands the token to thread (i+1) mod T by
// unlocking locks[i+1]. Go's Mutex is explicitly documented as safe to
// unlock from a goroutine other than the one that locked it, which is
// exactly what passing the token this way relies on.
//
// Every thread must call enter the same number of times for the ring to
// stay live; multilock.go only constructs a ring when Ng is evenly
// divisible by NThreads so that holds.
type ring struct {
	locks []sync.Mutex
}

// newRing builds a ring of n locks. All but lock 0 start held, so
// thread 0 is the only one that can enter immediately; every other
// thread blocks until its predecessor passes the token.
func newRing(n int) *ring {
	r := &ring{locks: make([]sync.Mutex, n)}
	for i := 1; i < n; i++ {
		r.locks[i].Lock()
	}
	return r
}

// enter runs fn as thread i's critical section: blocks until the token
// reaches i, runs fn, then passes the token to (i+1) mod len(locks).
func (r *ring) enter(i int, fn func()) {
	r.locks[i].Lock()
	fn()
	next := (i + 1) % len(r.locks)
	r.locks[next].Unlock()
}

// teardown releases every lock still held, as spec.md §4.4 requires at
// team end.
func (r *ring) teardown() {
	for i := range r.locks {
		// TryLock takes a lock that is free, so the Unlock below is
		// valid whether or not the lock was still held.
		r.locks[i].TryLock()
		r.locks[i].Unlock()
	}
}

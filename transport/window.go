package transport

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Signal is one of the three distinguished values the SAFE/SENT
// handshake (spec.md §4.5) writes into a window's trailing slots. Using
// a small enum instead of raw doubles is the "Per-thread... side-channel"
// rewrite spec.md's design notes call for; SAFE/SENT's underlying
// equality is still on the wire, it's just never exposed as a double to
// callers.
type Signal uint64

const (
	// NullSignal is every slot's initial and resting state.
	NullSignal Signal = iota
	// SafeSignal marks a buffer free to be overwritten by its upwind peer.
	SafeSignal
	// SentSignal marks a payload present and ready to be read.
	SentSignal
)

// FaceWindow is one rank's exposed RMA window for one axis (y or z): a
// payload region plus the two trailing signal slots spec.md §3 and §4.5
// describe. All ranks share one process's address space in this
// emulation (SPEC_FULL.md §0), so Put/Get are literally memory copies
// rather than network RMA — the SAFE/SENT protocol above them is
// unchanged, since that is the thing under test.
type FaceWindow struct {
	dataMu sync.Mutex
	data   []float64

	safe atomic.Uint64
	sent atomic.Uint64

	// selfLock stands in for MPI_Win_lock(MPI_LOCK_SHARED, self-rank, ...):
	// spec.md §4.5 requires a rank to hold a shared lock against its own
	// window while polling a slot a remote put may be writing, to satisfy
	// passive-target memory consistency. Held only for the instant of a
	// successful poll.
	selfLock sync.Mutex
}

// NewFaceWindow allocates a window whose payload region holds n values,
// both signal slots starting at NullSignal.
func NewFaceWindow(n int) *FaceWindow {
	return &FaceWindow{data: make([]float64, n)}
}

// Put writes payload into the window's data region, as a remote peer's
// RMA put would.
func (w *FaceWindow) Put(payload []float64) {
	w.dataMu.Lock()
	copy(w.data, payload)
	w.dataMu.Unlock()
}

// Get copies the window's data region into dst, as this rank reading
// its own window after a completed handshake would.
func (w *FaceWindow) Get(dst []float64) {
	w.dataMu.Lock()
	copy(dst, w.data)
	w.dataMu.Unlock()
}

// PutSafe writes the SAFE slot (receiver role, R0->R1: signalling the
// upwind peer that this buffer is free).
func (w *FaceWindow) PutSafe(s Signal) { w.safe.Store(uint64(s)) }

// PutSent writes the SENT slot (sender role, S3->S4: signalling the
// downwind peer that the payload has arrived).
func (w *FaceWindow) PutSent(s Signal) { w.sent.Store(uint64(s)) }

// SpinUntilSafe busy-waits, with a scheduling yield rather than a fixed
// sleep (spec.md §4.5: "must not sleep for fixed durations"), until the
// SAFE slot reads SafeSignal, then resets it to NullSignal under the
// self-lock (sender role, S0->S1->S2).
func (w *FaceWindow) SpinUntilSafe() {
	for Signal(w.safe.Load()) != SafeSignal {
		runtime.Gosched()
	}
	w.selfLock.Lock()
	w.safe.Store(uint64(NullSignal))
	w.selfLock.Unlock()
}

// SpinUntilSent busy-waits until the SENT slot reads SentSignal, then
// resets it to NullSignal under the self-lock (receiver role,
// R1->R2->R3). The reset is an assignment, not the equality-test bug
// spec.md §4.5 calls out as a defect to avoid reproducing.
func (w *FaceWindow) SpinUntilSent() {
	for Signal(w.sent.Load()) != SentSignal {
		runtime.Gosched()
	}
	w.selfLock.Lock()
	w.sent.Store(uint64(NullSignal))
	w.selfLock.Unlock()
}

// WindowSet is the pair of face windows (y, z) one rank exposes for the
// one-sided sweeper.
type WindowSet struct {
	Y *FaceWindow
	Z *FaceWindow
}

// RMAWorld is the passive-target analogue of World: a registry letting
// any rank reach any other rank's exposed windows directly, the way a
// real MPI_Win_lock/put/flush would reach across ranks but collapsed to
// a map lookup since every rank already shares this process's memory.
type RMAWorld struct {
	mu      sync.Mutex
	windows map[int]*WindowSet
}

// NewRMAWorld creates an empty window registry.
func NewRMAWorld() *RMAWorld {
	return &RMAWorld{windows: make(map[int]*WindowSet)}
}

// Expose allocates and registers rank's window pair, sized for yLen and
// zLen payload values, and returns it. Calling Expose twice for the same
// rank panics: a window is allocated exactly once per sweep invocation.
func (w *RMAWorld) Expose(rank, yLen, zLen int) *WindowSet {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.windows[rank]; ok {
		panic("transport: window already exposed for this rank")
	}

	ws := &WindowSet{Y: NewFaceWindow(yLen), Z: NewFaceWindow(zLen)}
	w.windows[rank] = ws
	return ws
}

// WindowOf returns the previously exposed window pair for rank. It
// blocks briefly (spin) if the target rank hasn't exposed its window yet,
// since every rank's setup phase races the others'.
func (w *RMAWorld) WindowOf(rank int) *WindowSet {
	for {
		w.mu.Lock()
		ws, ok := w.windows[rank]
		w.mu.Unlock()
		if ok {
			return ws
		}
		runtime.Gosched()
	}
}

// Unexpose removes rank's window pair at sweep teardown.
func (w *RMAWorld) Unexpose(rank int) {
	w.mu.Lock()
	delete(w.windows, rank)
	w.mu.Unlock()
}

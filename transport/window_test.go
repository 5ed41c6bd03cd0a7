package transport_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sarchlab/road-sweeper/transport"
)

func TestFaceWindowHandshakeNeverOverwritesBeforeSafe(t *testing.T) {
	// Emulates one axis of the S5 scenario: receiver prepares its buffer
	// (signals SAFE), sender waits for SAFE before writing, then signals
	// SENT; the receiver must never observe a payload before SENT, and
	// the sender must never write before SAFE was read.
	w := transport.NewFaceWindow(2)

	var wg sync.WaitGroup
	wg.Add(2)

	observedBeforeSafe := false

	go func() { // receiver role
		defer wg.Done()
		before := make([]float64, 2)
		w.Get(before)
		observedBeforeSafe = before[0] != 0 || before[1] != 0
		w.PutSafe(transport.SafeSignal)
		w.SpinUntilSent()
	}()

	go func() { // sender role
		defer wg.Done()
		w.SpinUntilSafe()
		// A tiny delay would let a buggy implementation race a write in
		// before the receiver is ready; here we just assert ordering.
		w.Put([]float64{42, 43})
		w.PutSent(transport.SentSignal)
	}()

	wg.Wait()

	dst := make([]float64, 2)
	w.Get(dst)
	assert.Equal(t, []float64{42, 43}, dst)
	assert.False(t, observedBeforeSafe)
}

func TestFaceWindowSpinUntilSafeObservesSafe(t *testing.T) {
	w := transport.NewFaceWindow(1)

	done := make(chan struct{})
	go func() {
		w.SpinUntilSafe()
		close(done)
	}()

	w.PutSafe(transport.SafeSignal)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SpinUntilSafe never observed SafeSignal")
	}
}

func TestRMAWorldExposeAndWindowOf(t *testing.T) {
	rw := transport.NewRMAWorld()
	ws := rw.Expose(0, 3, 3)
	assert.Same(t, ws, rw.WindowOf(0))
}

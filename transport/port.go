package transport

import "sync"

// Port is a single directed FIFO mailbox between two ranks, adapted from
// the teacher's defaultPort (zeonica/core/port.go): a mutex-guarded
// buffer with blocking consumption. Unlike the teacher's Port, a
// road-sweeper Port carries raw float64 payloads whose contents are
// never inspected (spec.md §1 Non-goals) — only their length and the
// direction they travel in matter.
type Port struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  [][]float64
	closed bool
}

// NewPort creates an empty, open Port.
func NewPort() *Port {
	p := &Port{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Send enqueues payload. It never blocks: the reference MPI
// implementation is assumed to eagerly buffer messages of this size, so
// the non-blocking sends spec.md's sweepers issue complete as soon as
// the payload is copied in (see Request in endpoint.go for the
// wait-before-reuse contract this still enforces on the caller's buffer).
func (p *Port) Send(payload []float64) {
	p.mu.Lock()
	p.queue = append(p.queue, payload)
	p.cond.Signal()
	p.mu.Unlock()
}

// Recv blocks until a payload is available and returns it, or returns
// nil if the port is closed with nothing left to deliver.
func (p *Port) Recv() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.closed {
		p.cond.Wait()
	}

	if len(p.queue) == 0 {
		return nil
	}

	msg := p.queue[0]
	p.queue = p.queue[1:]
	return msg
}

// Close marks the port closed and wakes any blocked receiver.
func (p *Port) Close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
}

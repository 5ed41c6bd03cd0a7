package transport

import "github.com/sarchlab/road-sweeper/topology"

// Request is a handle to an outstanding non-blocking send, mirroring
// MPI_Request. A nil Request (as returned for a send to a null
// neighbour) is always already complete.
type Request struct {
	done chan struct{}
}

// Wait blocks until the send this Request refers to has completed.
func (r *Request) Wait() {
	if r == nil {
		return
	}
	<-r.done
}

// Recv blocks for a payload from `from` into dst, copying exactly
// len(dst) values. A null neighbour is a no-op (spec.md §4.2) and
// returns immediately without touching dst.
func (e *Endpoint) Recv(from topology.Neighbour, dst []float64) {
	if from.IsNull() {
		return
	}

	payload := e.world.link(from.Rank(), e.rank).Recv()
	copy(dst, payload)
}

// Isend copies src (so the caller may safely reuse or overwrite it
// before the returned Request completes — mirroring MPI's requirement
// that a buffer not be touched until after Wait) and enqueues it for
// `to` before returning, so sends from one rank to one neighbour arrive
// in call order. Port.Send never blocks, so the returned Request is
// already complete. A null neighbour is a no-op and returns nil.
func (e *Endpoint) Isend(to topology.Neighbour, src []float64) *Request {
	if to.IsNull() {
		return nil
	}

	payload := make([]float64, len(src))
	copy(payload, src)

	req := &Request{done: make(chan struct{})}
	e.world.link(e.rank, to.Rank()).Send(payload)
	close(req.done)

	return req
}

// WaitAll waits for every non-nil request in reqs.
func WaitAll(reqs ...*Request) {
	for _, r := range reqs {
		r.Wait()
	}
}

package sweep

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/road-sweeper/compute"
	"github.com/sarchlab/road-sweeper/config"
	"github.com/sarchlab/road-sweeper/timing"
	"github.com/sarchlab/road-sweeper/topology"
	"github.com/sarchlab/road-sweeper/transport"
)

// MultiLock is the thread-team, per-thread-lock token-passing sweeper
// (C6, spec.md §4.4): a ring of NThreads mutexes passes a messaging
// token 0, 1, ..., T-1, 0, 1, ... around the team, giving deterministic
// per-rank message ordering (spec.md §8 property 5) while letting a
// waiting thread's compute overlap another thread's messaging.
type MultiLock struct {
	Opt   config.Options
	State topology.RankState
	Net   *transport.Endpoint
}

// NewMultiLock constructs a MultiLock sweeper.
func NewMultiLock(opt config.Options, state topology.RankState, net *transport.Endpoint) *MultiLock {
	return &MultiLock{Opt: opt, State: state, Net: net}
}

// Run fans NThreads goroutines out over the ng groups, each group's
// critical sections entering the ring in turn. The ring's liveness
// requires Ng to divide evenly by NThreads, so that every thread issues
// the same number of ring entries per sweep.
func (m *MultiLock) Run() (timing.Timings, error) {
	if !m.State.Support.AtLeast(topology.Serialized) {
		return timing.Timings{}, ErrInsufficientThreadSupport
	}

	t := m.Opt.NThreads
	if t < 1 {
		t = 1
	}
	if m.Opt.Ng%t != 0 {
		return timing.Timings{}, fmt.Errorf("sweep: multilock requires --ng divisible by --nthreads (ng=%d, nthreads=%d)", m.Opt.Ng, t)
	}

	setupStart := time.Now()

	groupLy, groupLz := FaceLengths(m.Opt, 1)
	ybuf := make([]float64, groupLy*m.Opt.Ng)
	zbuf := make([]float64, groupLz*m.Opt.Ng)

	r := newRing(t)
	var comms time.Duration
	var commsMu sync.Mutex

	setup := time.Since(setupStart)
	sweepStart := time.Now()

	var eg errgroup.Group
	for thread := 0; thread < t; thread++ {
		last := thread == t-1
		thread := thread

		eg.Go(func() error {
			var sendY, sendZ *transport.Request

			Drive(m.State, m.Opt.NChunks, func(o Octant, chunk int, upY, downY, upZ, downZ topology.Neighbour) {
				for g := thread; g < m.Opt.Ng; g += t {
					ySlot := ybuf[g*groupLy : (g+1)*groupLy]
					zSlot := zbuf[g*groupLz : (g+1)*groupLz]

					r.enter(thread, func() {
						t0 := time.Now()
						m.Net.Recv(upY, ySlot)
						m.Net.Recv(upZ, zSlot)
						if last {
							commsMu.Lock()
							comms += time.Since(t0)
							commsMu.Unlock()
						}
					})

					compute.Cells(m.Opt.Nang, m.Opt.ChunkLen, m.Opt.Ny, m.Opt.Nz)

					r.enter(thread, func() {
						// Tag each group's payload with its owning
						// thread so the ring's round-robin delivery
						// order (spec.md §8 property 5) is observable
						// at the receiving end, not just asserted here.
						ySlot[0] = float64(thread)
						zSlot[0] = float64(thread)

						t1 := time.Now()
						transport.WaitAll(sendY, sendZ)
						sendY = m.Net.Isend(downY, ySlot)
						sendZ = m.Net.Isend(downZ, zSlot)
						if last {
							commsMu.Lock()
							comms += time.Since(t1)
							commsMu.Unlock()
						}
					})
				}
			})

			transport.WaitAll(sendY, sendZ)
			return nil
		})
	}

	_ = eg.Wait()
	r.teardown()

	sweeping := time.Since(sweepStart)

	return timing.Timings{Setup: setup, Sweeping: sweeping, Comms: comms}, nil
}

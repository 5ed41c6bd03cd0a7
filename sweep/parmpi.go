package sweep

import (
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/road-sweeper/compute"
	"github.com/sarchlab/road-sweeper/config"
	"github.com/sarchlab/road-sweeper/timing"
	"github.com/sarchlab/road-sweeper/topology"
	"github.com/sarchlab/road-sweeper/transport"
)

// ParMPI is the thread-team, single-global-mutex sweeper (C5, spec.md
// §4.4): NThreads goroutines fan out over energy groups, each owning a
// disjoint [g*L, (g+1)*L) slice of the shared face buffers (spec.md §5),
// and every messaging call is serialized behind one process-wide mutex.
type ParMPI struct {
	Opt   config.Options
	State topology.RankState
	Net   *transport.Endpoint
}

// NewParMPI constructs a ParMPI sweeper. state.Support is the
// thread-support level the emulated messaging library reports; Run
// aborts if it is below topology.Serialized.
func NewParMPI(opt config.Options, state topology.RankState, net *transport.Endpoint) *ParMPI {
	return &ParMPI{Opt: opt, State: state, Net: net}
}

// Run fans a team of Opt.NThreads goroutines out over the ng energy
// groups. Only the last-numbered thread's messaging intervals count
// toward comms, so the timer is not inflated by thread count.
func (p *ParMPI) Run() (timing.Timings, error) {
	if !p.State.Support.AtLeast(topology.Serialized) {
		return timing.Timings{}, ErrInsufficientThreadSupport
	}

	setupStart := time.Now()

	groupLy, groupLz := FaceLengths(p.Opt, 1)
	ybuf := make([]float64, groupLy*p.Opt.Ng)
	zbuf := make([]float64, groupLz*p.Opt.Ng)

	var mu sync.Mutex
	var comms time.Duration

	t := p.Opt.NThreads
	if t < 1 {
		t = 1
	}

	setup := time.Since(setupStart)
	sweepStart := time.Now()

	var eg errgroup.Group
	for thread := 0; thread < t; thread++ {
		last := thread == t-1
		thread := thread

		eg.Go(func() error {
			// per-thread non-blocking send handles (spec.md §9): a local
			// pair, never a shared global array.
			var sendY, sendZ *transport.Request

			Drive(p.State, p.Opt.NChunks, func(o Octant, chunk int, upY, downY, upZ, downZ topology.Neighbour) {
				for g := thread; g < p.Opt.Ng; g += t {
					ySlot := ybuf[g*groupLy : (g+1)*groupLy]
					zSlot := zbuf[g*groupLz : (g+1)*groupLz]

					mu.Lock()
					t0 := time.Now()
					p.Net.Recv(upY, ySlot)
					p.Net.Recv(upZ, zSlot)
					if last {
						comms += time.Since(t0)
					}
					mu.Unlock()

					compute.Cells(p.Opt.Nang, p.Opt.ChunkLen, p.Opt.Ny, p.Opt.Nz)

					mu.Lock()
					t1 := time.Now()
					transport.WaitAll(sendY, sendZ)
					sendY = p.Net.Isend(downY, ySlot)
					sendZ = p.Net.Isend(downZ, zSlot)
					if last {
						comms += time.Since(t1)
					}
					mu.Unlock()
				}
			})

			transport.WaitAll(sendY, sendZ)
			return nil
		})
	}

	_ = eg.Wait()
	sweeping := time.Since(sweepStart)

	return timing.Timings{Setup: setup, Sweeping: sweeping, Comms: comms}, nil
}

package sweep

import (
	"time"

	"github.com/sarchlab/road-sweeper/compute"
	"github.com/sarchlab/road-sweeper/config"
	"github.com/sarchlab/road-sweeper/timing"
	"github.com/sarchlab/road-sweeper/topology"
	"github.com/sarchlab/road-sweeper/transport"
)

// Serial is the single-threaded two-sided sweeper (C4, spec.md §4.3):
// one y-buffer and one z-buffer shared across groups, the group loop
// wrapping the recv/compute/send sequence inside each chunk step.
type Serial struct {
	Opt   config.Options
	State topology.RankState
	Net   *transport.Endpoint
}

// NewSerial constructs a Serial sweeper bound to net, the Endpoint this
// rank uses to talk to the emulated world.
func NewSerial(opt config.Options, state topology.RankState, net *transport.Endpoint) *Serial {
	return &Serial{Opt: opt, State: state, Net: net}
}

// Run performs nchunks*8 octant/chunk steps, iterating ng groups inside
// each one. It never fails: a two-sided recv/send pair to a null
// neighbour is a documented no-op, not an error.
func (s *Serial) Run() (timing.Timings, error) {
	setupStart := time.Now()

	ly, lz := FaceLengths(s.Opt, 1)
	ybuf := make([]float64, ly)
	zbuf := make([]float64, lz)

	var sendY, sendZ *transport.Request
	var comms time.Duration

	setup := time.Since(setupStart)
	sweepStart := time.Now()

	Drive(s.State, s.Opt.NChunks, func(o Octant, chunk int, upY, downY, upZ, downZ topology.Neighbour) {
		for g := 0; g < s.Opt.Ng; g++ {
			t0 := time.Now()
			s.Net.Recv(upY, ybuf)
			s.Net.Recv(upZ, zbuf)
			comms += time.Since(t0)

			compute.Cells(s.Opt.Nang, s.Opt.ChunkLen, s.Opt.Ny, s.Opt.Nz)

			t1 := time.Now()
			transport.WaitAll(sendY, sendZ)
			sendY = s.Net.Isend(downY, ybuf)
			sendZ = s.Net.Isend(downZ, zbuf)
			comms += time.Since(t1)
		}
	})

	transport.WaitAll(sendY, sendZ)
	sweeping := time.Since(sweepStart)

	return timing.Timings{Setup: setup, Sweeping: sweeping, Comms: comms}, nil
}

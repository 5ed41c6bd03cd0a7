package sweep

import (
	"time"

	"github.com/sarchlab/road-sweeper/compute"
	"github.com/sarchlab/road-sweeper/config"
	"github.com/sarchlab/road-sweeper/timing"
	"github.com/sarchlab/road-sweeper/topology"
	"github.com/sarchlab/road-sweeper/transport"
)

// OneSided is the passive-target RMA sweeper (C7, spec.md §4.5): each
// rank exposes a y-window and a z-window sized for all ng groups, and
// one SAFE/SENT signal pair per window governs the whole multi-group
// buffer for one (octant, chunk) step -- the same batching ParGroup
// applies to two-sided messaging, here applied to the handshake. Both
// axes are handled symmetrically; the source's y-only early variant is
// not reproduced (spec.md §4.5's known defect (b)).
type OneSided struct {
	Opt   config.Options
	State topology.RankState
	RMA   *transport.RMAWorld
}

// NewOneSided constructs a OneSided sweeper against the shared rma
// registry every rank in the world exposes its windows through.
func NewOneSided(opt config.Options, state topology.RankState, rma *transport.RMAWorld) *OneSided {
	return &OneSided{Opt: opt, State: state, RMA: rma}
}

// Run exposes this rank's windows, runs the handshake-driven sweep, and
// unexposes them on every exit path (spec.md §9's scoped-resource
// discipline).
func (o *OneSided) Run() (timing.Timings, error) {
	setupStart := time.Now()

	ly, lz := FaceLengths(o.Opt, o.Opt.Ng)
	own := o.RMA.Expose(o.State.Rank, ly, lz)
	defer o.RMA.Unexpose(o.State.Rank)

	setup := time.Since(setupStart)
	sweepStart := time.Now()
	var comms time.Duration

	Drive(o.State, o.Opt.NChunks, func(oct Octant, chunk int, upY, downY, upZ, downZ topology.Neighbour) {
		t0 := time.Now()
		o.receive(own.Y, upY)
		o.receive(own.Z, upZ)
		comms += time.Since(t0)

		for g := 0; g < o.Opt.Ng; g++ {
			compute.Cells(o.Opt.Nang, o.Opt.ChunkLen, o.Opt.Ny, o.Opt.Nz)
		}

		t1 := time.Now()
		o.send(own.Y, downY, ly)
		o.send(own.Z, downZ, lz)
		comms += time.Since(t1)
	})

	sweeping := time.Since(sweepStart)
	return timing.Timings{Setup: setup, Sweeping: sweeping, Comms: comms}, nil
}

// receive performs the receiver role against upwind peer u, writing
// into own, this rank's own window for that axis (spec.md §4.5
// R0->R3): signal SAFE so the upwind peer knows it may overwrite this
// buffer, spin for SENT, then reset SENT to NULL. A null neighbour
// skips the role entirely.
func (o *OneSided) receive(own *transport.FaceWindow, u topology.Neighbour) {
	if u.IsNull() {
		return
	}
	own.PutSafe(transport.SafeSignal)
	own.SpinUntilSent()
}

// send performs the sender role toward downwind peer d (spec.md §4.5
// S0->S4): spin on d's own window until d has signalled SAFE on it
// (d's receive role set that slot to say its buffer is free), put the
// payload into d's data region, then signal SENT on d's window. own
// only identifies which axis (y or z) this call is for.
func (o *OneSided) send(own *transport.FaceWindow, d topology.Neighbour, n int) {
	if d.IsNull() {
		return
	}

	peerFace := o.peerFaceFor(own, d.Rank())
	peerFace.SpinUntilSafe()
	peerFace.Put(make([]float64, n))
	peerFace.PutSent(transport.SentSignal)
}

// peerFaceFor resolves which of peer's two windows (Y or Z) matches the
// axis own belongs to on this rank, since the handshake always writes
// the same axis on the remote side.
func (o *OneSided) peerFaceFor(own *transport.FaceWindow, peerRank int) *transport.FaceWindow {
	mine := o.RMA.WindowOf(o.State.Rank)
	peer := o.RMA.WindowOf(peerRank)
	if own == mine.Y {
		return peer.Y
	}
	return peer.Z
}

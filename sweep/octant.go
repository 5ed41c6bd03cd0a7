// Package sweep implements the eight-octant KBA wavefront sweep: the
// shared octant/chunk driver skeleton (C3) and the four alternative
// communication/threading variants built on top of it (C4-C7).
package sweep

import (
	"github.com/sarchlab/road-sweeper/config"
	"github.com/sarchlab/road-sweeper/topology"
)

// Octant is one of the eight fixed traversal directions a sweep visits,
// identified by the same (i, j, k) triple spec.md §4.2 indexes the
// upwind/downwind table with.
type Octant struct {
	I, J, K int
}

// Octants lists all eight octants in the fixed nested-loop order the
// driver must preserve: k outermost, then j, then i.
var Octants = buildOctants()

func buildOctants() []Octant {
	os := make([]Octant, 0, 8)
	for k := 0; k < 2; k++ {
		for j := 0; j < 2; j++ {
			for i := 0; i < 2; i++ {
				os = append(os, Octant{I: i, J: j, K: k})
			}
		}
	}
	return os
}

// YFaces returns the upwind and downwind y-neighbours for octant o
// against state, per spec.md §4.2's table (j=0: upwind=yhi, downwind=ylo;
// j=1: reversed).
func YFaces(state topology.RankState, o Octant) (upwind, downwind topology.Neighbour) {
	if o.J == 0 {
		return state.YHi, state.YLo
	}
	return state.YLo, state.YHi
}

// ZFaces returns the upwind and downwind z-neighbours for octant o,
// symmetric to YFaces on k.
func ZFaces(state topology.RankState, o Octant) (upwind, downwind topology.Neighbour) {
	if o.K == 0 {
		return state.ZHi, state.ZLo
	}
	return state.ZLo, state.ZHi
}

// Step is the per-(octant, chunk) callback Drive invokes. i is carried
// on o itself; spec.md §9 Open Question (a) treats it as a constant
// factor of two on the octant count with no further behavioural effect,
// so it is not threaded through separately here.
type Step func(o Octant, chunk int, upY, downY, upZ, downZ topology.Neighbour)

// Drive runs the canonical eight-octant, nchunks-wide loop (C3): for
// every octant in the fixed order, for every chunk low-to-high along X,
// it resolves both axes' upwind/downwind neighbours and invokes step.
// Every C4-C7 sweeper builds its recv/compute/send discipline on top of
// this shared skeleton.
func Drive(state topology.RankState, nchunks int, step Step) {
	for _, o := range Octants {
		upY, downY := YFaces(state, o)
		upZ, downZ := ZFaces(state, o)

		for c := 0; c < nchunks; c++ {
			step(o, c, upY, downY, upZ, downZ)
		}
	}
}

// FaceLengths returns the y-face and z-face buffer lengths for a
// sweeper carrying k buffer slots: k=1 for the serial sweeper (the
// buffer is reused across groups), k=ng for every group-parallel and
// RMA variant (one slot per group), per spec.md §3.
func FaceLengths(opt config.Options, k int) (ly, lz int) {
	ly = opt.Nang * opt.Nz * opt.ChunkLen * k
	lz = opt.Nang * opt.Ny * opt.ChunkLen * k
	return ly, lz
}

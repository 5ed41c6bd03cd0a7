package topology

// RankState is the immutable per-process record produced once by the
// decomposition planner and read by every sweeper thereafter.
//
// Invariants (spec.md §3): Py*Pz == NProcs; 0 <= Y < Py; 0 <= Z < Pz;
// Y == 0 => YLo is null; Y == Py-1 => YHi is null; same for Z.
type RankState struct {
	Rank   int
	NProcs int
	// Support is the thread-support level the messaging library
	// reports for this rank; only the threaded sweep variants consult
	// it (spec.md §4.4's precondition check).
	Support ThreadSupport

	Py, Pz int
	Y, Z   int

	YLo, YHi Neighbour
	ZLo, ZHi Neighbour
}

// HasNeighbour reports whether n is a real, interior neighbour.
func (r RankState) HasNeighbour(n Neighbour) bool {
	return !n.IsNull()
}

// WithSupport returns a copy of r reporting thread-support level s.
// Decompose and DecomposeMesh always produce Single; a caller emulating
// a stronger messaging library sets this explicitly before handing the
// state to a threaded sweeper.
func (r RankState) WithSupport(s ThreadSupport) RankState {
	r.Support = s
	return r
}

func neighbours(rank, y, z, py, pz int) (ylo, yhi, zlo, zhi Neighbour) {
	ylo = NullNeighbour
	yhi = NullNeighbour
	zlo = NullNeighbour
	zhi = NullNeighbour

	if y > 0 {
		ylo = Rank((y - 1) + z*py)
	}
	if y < py-1 {
		yhi = Rank((y + 1) + z*py)
	}
	if z > 0 {
		zlo = Rank(y + (z-1)*py)
	}
	if z < pz-1 {
		zhi = Rank(y + (z+1)*py)
	}

	return
}

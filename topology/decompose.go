package topology

// Decompose picks a 2-D process grid (Py, Pz) over nprocs ranks for weak
// scaling, where every rank carries the same local subdomain and there is
// no global mesh size to balance against. It returns this rank's full
// topology record; its neighbours are set per spec.md §3's invariants.
//
// The grid is chosen to minimise perimeter/area of the (nprocs/Py,
// nprocs/Pz) per-rank share, ties broken in favour of the smaller Py
// (spec.md §4.1).
func Decompose(rank, nprocs int) RankState {
	py, pz := decomposeGrid(nprocs, nprocs, nprocs)
	return build(rank, nprocs, py, pz)
}

// DecomposeMesh picks a 2-D process grid for strong scaling, where a
// fixed global mesh (gny x gnz) is shared out across nprocs ranks. It
// returns this rank's topology record together with its local (ny, nz)
// subdomain extents, with leftover cells distributed to the
// low-coordinate ranks along each axis (spec.md §4.1).
func DecomposeMesh(rank, nprocs, gny, gnz int) (state RankState, ny, nz int) {
	py, pz := decomposeGrid(nprocs, gny, gnz)
	state = build(rank, nprocs, py, pz)

	ny = gny / py
	nz = gnz / pz

	extraY := gny % py
	extraZ := gnz % pz

	if extraY > 0 && state.Y < extraY {
		ny++
	}
	if extraZ > 0 && state.Z < extraZ {
		nz++
	}

	return state, ny, nz
}

func build(rank, nprocs, py, pz int) RankState {
	y := rank % py
	z := rank / py

	ylo, yhi, zlo, zhi := neighbours(rank, y, z, py, pz)

	return RankState{
		Rank:   rank,
		NProcs: nprocs,
		Py:     py,
		Pz:     pz,
		Y:      y,
		Z:      z,
		YLo:    ylo,
		YHi:    yhi,
		ZLo:    zlo,
		ZHi:    zhi,
	}
}

// decomposeGrid enumerates every Py in [1, nprocs] dividing nprocs,
// computes Pz = nprocs/Py, and keeps the pair minimising
//
//	ratio(Py) = 2*(U/Py + V/Pz) / ((U/Py) * (V/Pz))
//
// using integer division to match the reference implementation exactly,
// with ties kept at the first (smallest Py) encountered.
func decomposeGrid(nprocs, u, v int) (bestPy, bestPz int) {
	best := -1.0

	for py := 1; py <= nprocs; py++ {
		if nprocs%py != 0 {
			continue
		}

		pz := nprocs / py
		if nprocs%pz != 0 {
			continue
		}

		perimeter := float64((u/py)+(v/pz)) * 2.0
		area := float64((u / py) * (v / pz))
		ratio := perimeter / area

		if best < 0 || ratio < best {
			best = ratio
			bestPy = py
			bestPz = pz
		}
	}

	return bestPy, bestPz
}

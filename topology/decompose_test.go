package topology_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/road-sweeper/topology"
)

var _ = Describe("Decompose", func() {
	It("splits two ranks along z, the 1x2/2x1 tie going to the smaller Py", func() {
		r0 := topology.Decompose(0, 2)
		Expect(r0.Py).To(Equal(1))
		Expect(r0.Pz).To(Equal(2))
		Expect(r0.YLo.IsNull()).To(BeTrue())
		Expect(r0.YHi.IsNull()).To(BeTrue())
		Expect(r0.ZLo.IsNull()).To(BeTrue())
		Expect(r0.ZHi).To(Equal(topology.Rank(1)))

		r1 := topology.Decompose(1, 2)
		Expect(r1.YLo.IsNull()).To(BeTrue())
		Expect(r1.YHi.IsNull()).To(BeTrue())
		Expect(r1.ZLo).To(Equal(topology.Rank(0)))
		Expect(r1.ZHi.IsNull()).To(BeTrue())
	})

	It("chooses a square grid for 4 ranks (S2)", func() {
		for rank := 0; rank < 4; rank++ {
			r := topology.Decompose(rank, 4)
			Expect(r.Py).To(Equal(2))
			Expect(r.Pz).To(Equal(2))

			nullCount := 0
			for _, n := range []topology.Neighbour{r.YLo, r.YHi, r.ZLo, r.ZHi} {
				if n.IsNull() {
					nullCount++
				}
			}
			Expect(nullCount).To(Equal(2))
		}
	})

	It("distributes leftover cells to low-coordinate ranks (S3)", func() {
		grid := make([][2]int, 4)
		for rank := 0; rank < 4; rank++ {
			state, ny, nz := topology.DecomposeMesh(rank, 4, 5, 4)
			Expect(state.Py).To(Equal(2))
			Expect(state.Pz).To(Equal(2))
			grid[rank] = [2]int{ny, nz}
		}

		// y=0 column (ranks 0,2) gets the extra cell; y=1 (ranks 1,3) does not.
		Expect(grid[0][0]).To(Equal(3))
		Expect(grid[2][0]).To(Equal(3))
		Expect(grid[1][0]).To(Equal(2))
		Expect(grid[3][0]).To(Equal(2))

		for rank := 0; rank < 4; rank++ {
			Expect(grid[rank][1]).To(Equal(2))
		}
	})

	It("never marks an interior neighbour as null for P<=256", func() {
		for nprocs := 1; nprocs <= 256; nprocs++ {
			for rank := 0; rank < nprocs; rank++ {
				state := topology.Decompose(rank, nprocs)
				Expect(state.Py * state.Pz).To(Equal(nprocs))

				if state.Y > 0 {
					Expect(state.YLo.IsNull()).To(BeFalse())
				} else {
					Expect(state.YLo.IsNull()).To(BeTrue())
				}
				if state.Y < state.Py-1 {
					Expect(state.YHi.IsNull()).To(BeFalse())
				} else {
					Expect(state.YHi.IsNull()).To(BeTrue())
				}
				if state.Z > 0 {
					Expect(state.ZLo.IsNull()).To(BeFalse())
				} else {
					Expect(state.ZLo.IsNull()).To(BeTrue())
				}
				if state.Z < state.Pz-1 {
					Expect(state.ZHi.IsNull()).To(BeFalse())
				} else {
					Expect(state.ZHi.IsNull()).To(BeTrue())
				}
			}
		}
	})

	It("falls back to a 1xP grid for a large prime rank count", func() {
		state := topology.Decompose(0, 97)
		Expect(state.Py * state.Pz).To(Equal(97))
		Expect([]int{state.Py, state.Pz}).To(ContainElement(1))
	})
})

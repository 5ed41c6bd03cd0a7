package sweep_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarchlab/road-sweeper/sweep"
	"github.com/sarchlab/road-sweeper/topology"
	"github.com/sarchlab/road-sweeper/transport"
)

// TestOneSidedS5Scenario exercises spec.md §8's S5 scenario with P=2,
// ng=1, nchunks=1; topology.Decompose gives Py=1, Pz=2 for two ranks. Both ranks must complete every octant's
// handshake without deadlocking and without corrupting the safety
// property (enforced inside transport.FaceWindow itself).
func TestOneSidedS5Scenario(t *testing.T) {
	opt := s1Options()
	rma := transport.NewRMAWorld()

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for rank := 0; rank < 2; rank++ {
		rank := rank
		wg.Add(1)
		go func() {
			defer wg.Done()
			state := topology.Decompose(rank, 2)
			o := sweep.NewOneSided(opt, state, rma)
			tm, err := o.Run()
			errs[rank] = err
			if err == nil {
				assert.True(t, tm.Valid())
			}
		}()
	}

	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestOneSidedSingleRankNullNeighboursAreNoop(t *testing.T) {
	opt := s1Options()
	rma := transport.NewRMAWorld()
	state := topology.Decompose(0, 1)

	o := sweep.NewOneSided(opt, state, rma)
	tm, err := o.Run()

	assert.NoError(t, err)
	assert.True(t, tm.Valid())
}

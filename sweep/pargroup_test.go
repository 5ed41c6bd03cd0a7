package sweep_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarchlab/road-sweeper/sweep"
	"github.com/sarchlab/road-sweeper/topology"
	"github.com/sarchlab/road-sweeper/transport"
)

func TestParGroupTwoRankRunsToCompletion(t *testing.T) {
	opt := s1Options()
	opt.Ng = 3
	world := transport.NewWorld(2)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for rank := 0; rank < 2; rank++ {
		rank := rank
		wg.Add(1)
		go func() {
			defer wg.Done()
			state := topology.Decompose(rank, 2)
			net := transport.NewEndpoint(world, rank)
			defer net.Close()

			p := sweep.NewParGroup(opt, state, net)
			tm, err := p.Run()
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

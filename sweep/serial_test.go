package sweep_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarchlab/road-sweeper/config"
	"github.com/sarchlab/road-sweeper/sweep"
	"github.com/sarchlab/road-sweeper/topology"
	"github.com/sarchlab/road-sweeper/transport"
)

// s1Options builds the S1 scenario's run options from spec.md §8: one
// chunk of length one, a 1x1 subdomain, one angle, one group. The
// two-rank tests take their grid from topology.Decompose(rank, 2),
// which splits the two ranks along z.
func s1Options() config.Options {
	opt, err := config.NewBuilder().
		WithNChunks(1).WithChunkLen(1).
		WithNy(1).WithNz(1).
		WithNang(1).WithNg(1).
		Build()
	if err != nil {
		panic(err)
	}
	return opt
}

func TestSerialTwoRankS1Scenario(t *testing.T) {
	opt := s1Options()
	world := transport.NewWorld(2)

	var wg sync.WaitGroup
	results := make([]struct {
		tm  interface{ Valid() bool }
		err error
	}, 2)

	for rank := 0; rank < 2; rank++ {
		rank := rank
		wg.Add(1)
		go func() {
			defer wg.Done()
			state := topology.Decompose(rank, 2)
			net := transport.NewEndpoint(world, rank)
			defer net.Close()

			s := sweep.NewSerial(opt, state, net)
			tm, err := s.Run()
			results[rank].tm = tm
			results[rank].err = err
		}()
	}

	wg.Wait()

	for _, r := range results {
		assert.NoError(t, r.err)
		assert.True(t, r.tm.Valid())
	}
}

func TestSerialNullNeighbourIsNoop(t *testing.T) {
	opt := s1Options()
	world := transport.NewWorld(1)
	state := topology.Decompose(0, 1)
	net := transport.NewEndpoint(world, 0)
	defer net.Close()

	s := sweep.NewSerial(opt, state, net)
	tm, err := s.Run()

	assert.NoError(t, err)
	assert.True(t, tm.Valid())
}

package sweep

import (
	"fmt"

	"github.com/sarchlab/road-sweeper/config"
	"github.com/sarchlab/road-sweeper/topology"
	"github.com/sarchlab/road-sweeper/transport"
)

// New builds the Sweeper config.Options.Sweep selects, wiring it to net
// (the two-sided endpoint, used by every variant but OneSided) and rma
// (the RMA registry, used only by OneSided). state.Support is the
// thread-support level the emulated world reports, consulted by the
// variants that require at least topology.Serialized.
func New(opt config.Options, state topology.RankState, net *transport.Endpoint, rma *transport.RMAWorld) (Sweeper, error) {
	switch opt.Sweep {
	case config.Serial:
		return NewSerial(opt, state, net), nil
	case config.ParGroup:
		return NewParGroup(opt, state, net), nil
	case config.ParMPI:
		return NewParMPI(opt, state, net), nil
	case config.MultiLock:
		return NewMultiLock(opt, state, net), nil
	case config.OneSided:
		return NewOneSided(opt, state, rma), nil
	default:
		return nil, fmt.Errorf("sweep: unhandled sweeper %v", opt.Sweep)
	}
}

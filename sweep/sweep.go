package sweep

import (
	"errors"

	"github.com/sarchlab/road-sweeper/timing"
)

// Sweeper runs one full sweep invocation -- every octant, every chunk --
// and reports its timing breakdown. Exactly one of C4-C7 is selected at
// startup by config.Options.Sweep.
type Sweeper interface {
	Run() (timing.Timings, error)
}

// ErrInsufficientThreadSupport is returned by a threaded variant's Run
// when its RankState's reported topology.ThreadSupport is below what it
// requires (spec.md §4.4's precondition check / §7's Capability error
// class).
var ErrInsufficientThreadSupport = errors.New("sweep: messaging library's thread support is below what this sweeper requires")

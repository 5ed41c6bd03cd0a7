// Package config holds the run-time options a sweep is parameterised by
// and the command-line surface that produces them.
package config

import (
	"fmt"

	"github.com/sarchlab/road-sweeper/topology"
)

// Sweeper names one of the five communication/threading strategies a run
// can select via --sweep.
type Sweeper int

const (
	// Serial is the single-threaded two-sided sweeper (spec.md C4).
	Serial Sweeper = iota
	// ParGroup batches all energy groups into one message pair per
	// chunk, with no thread team.
	ParGroup
	// ParMPI is the thread-team, single-global-mutex sweeper (C5).
	ParMPI
	// MultiLock is the thread-team, token-passing-lock sweeper (C6).
	MultiLock
	// OneSided is the passive-target RMA sweeper (C7).
	OneSided
)

func (s Sweeper) String() string {
	switch s {
	case Serial:
		return "serial"
	case ParGroup:
		return "pargroup"
	case ParMPI:
		return "parmpi"
	case MultiLock:
		return "multilock"
	case OneSided:
		return "onesided"
	default:
		return fmt.Sprintf("Sweeper(%d)", int(s))
	}
}

// ParseSweeper maps a --sweep argument to a Sweeper, returning an error
// for anything else (spec.md §7's "configuration error" class).
func ParseSweeper(name string) (Sweeper, error) {
	switch name {
	case "serial":
		return Serial, nil
	case "pargroup":
		return ParGroup, nil
	case "parmpi":
		return ParMPI, nil
	case "multilock":
		return MultiLock, nil
	case "onesided":
		return OneSided, nil
	default:
		return 0, fmt.Errorf("unknown sweep type: %s", name)
	}
}

// Options is the run-time configuration shared by every sweeper. It is
// created once at startup by Parse and is read-only thereafter
// (spec.md §3).
type Options struct {
	NChunks  int
	ChunkLen int
	Ny, Nz   int
	GNy, GNz int
	Nang     int
	Ng       int
	NSweeps  int
	Strong   bool
	Sweep    Sweeper

	// NProcs and NThreads are the Go-native stand-ins for `mpirun -np`
	// and OMP_NUM_THREADS; see SPEC_FULL.md §0.
	NProcs   int
	NThreads int

	// ThreadSupport is the level this run's emulated messaging library
	// reports to every rank (spec.md §4.4's precondition check). It
	// defaults to Multiple, the same as a real MPI_Init_thread request
	// of MPI_THREAD_MULTIPLE; --thread-support narrows it to model a
	// library that grants less than a sweeper needs.
	ThreadSupport topology.ThreadSupport
}

// Builder assembles an Options value with the teacher's With.../Build
// chain idiom. Parse is the normal entry point; Builder exists for tests
// and for programmatic callers that don't go through the CLI.
type Builder struct {
	opt Options
}

// NewBuilder returns a Builder seeded with the same defaults road-sweeper
// ships with (spec.md §6 / original_source/road-sweeper.c).
func NewBuilder() Builder {
	return Builder{opt: Options{
		NSweeps:  1,
		NChunks:  1,
		ChunkLen: 1,
		Ny:       1,
		Nz:       1,
		Nang:     10,
		Ng:       16,
		NProcs:   1,
		NThreads: 1,
		Sweep:    Serial,

		ThreadSupport: topology.Multiple,
	}}
}

func (b Builder) WithNChunks(n int) Builder  { b.opt.NChunks = n; return b }
func (b Builder) WithChunkLen(n int) Builder { b.opt.ChunkLen = n; return b }
func (b Builder) WithNy(n int) Builder       { b.opt.Ny = n; return b }
func (b Builder) WithNz(n int) Builder       { b.opt.Nz = n; return b }
func (b Builder) WithMeshNy(n int) Builder   { b.opt.GNy = n; return b }
func (b Builder) WithMeshNz(n int) Builder   { b.opt.GNz = n; return b }
func (b Builder) WithNang(n int) Builder     { b.opt.Nang = n; return b }
func (b Builder) WithNg(n int) Builder       { b.opt.Ng = n; return b }
func (b Builder) WithNSweeps(n int) Builder  { b.opt.NSweeps = n; return b }
func (b Builder) WithStrong(strong bool) Builder {
	b.opt.Strong = strong
	return b
}
func (b Builder) WithSweep(s Sweeper) Builder   { b.opt.Sweep = s; return b }
func (b Builder) WithNProcs(n int) Builder      { b.opt.NProcs = n; return b }
func (b Builder) WithNThreads(n int) Builder    { b.opt.NThreads = n; return b }
func (b Builder) WithThreadSupport(s topology.ThreadSupport) Builder {
	b.opt.ThreadSupport = s
	return b
}

// Build validates and returns the assembled Options.
func (b Builder) Build() (Options, error) {
	if err := validate(b.opt); err != nil {
		return Options{}, err
	}
	return b.opt, nil
}

func validate(opt Options) error {
	if opt.Strong && (opt.GNy < 1 || opt.GNz < 1) {
		return fmt.Errorf("must set --meshny and --meshnz with --strong option")
	}
	if opt.NProcs < 1 {
		return fmt.Errorf("--nprocs must be at least 1")
	}
	return nil
}

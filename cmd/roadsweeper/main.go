// Command roadsweeper runs a KBA wavefront sweep benchmark over an
// emulated MPI world of goroutines. See SPEC_FULL.md for the full
// external interface.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/shirou/gopsutil/cpu"
	"github.com/tebeka/atexit"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/road-sweeper/config"
	"github.com/sarchlab/road-sweeper/sweep"
	"github.com/sarchlab/road-sweeper/timing"
	"github.com/sarchlab/road-sweeper/topology"
	"github.com/sarchlab/road-sweeper/transport"
)

// version is the reference implementation's version string
// (original_source/road-sweeper.c's header block).
const version = "1.0.0-go"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, config.HelpRequested) {
			atexit.Exit(0)
		}
		logger.Error("sweep aborted", "err", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

// run parses args, drives every configured sweep, and writes the report
// to stdout. It contains the whole of main's logic apart from process
// exit, so that the CLI's configuration-error and capability-error
// paths (spec.md §7) can be exercised directly by tests.
func run(args []string, stdout io.Writer, stderr io.Writer) error {
	opt, err := config.Parse(args, stderr)
	if err != nil {
		return err
	}

	if opt.NThreads <= 0 {
		n, cerr := cpu.Counts(true)
		if cerr != nil || n < 1 {
			n = 1
		}
		opt.NThreads = n
	}

	ny, nz := opt.Ny, opt.Nz
	if opt.Strong {
		_, ny, nz = topology.DecomposeMesh(0, opt.NProcs, opt.GNy, opt.GNz)
	}

	printHeader(stdout, opt, ny, nz)

	collector := &timing.Collector{}
	if err := runSweeps(opt, collector); err != nil {
		return err
	}

	timing.WriteRuns(stdout, collector.Runs)
	timing.WriteSummary(stdout, timing.Summarize(collector.Runs))

	return nil
}

// runSweeps drives every rank of the emulated world through opt.NSweeps
// invocations of the selected sweeper, recording rank 0's timing for
// each run. Each run waits for every rank's goroutine to return and then
// reports the first error any rank returned; a failing rank does not
// interrupt the others.
func runSweeps(opt config.Options, collector *timing.Collector) error {
	for run := 0; run < opt.NSweeps; run++ {
		world := transport.NewWorld(opt.NProcs)
		rma := transport.NewRMAWorld()

		var mu sync.Mutex
		var eg errgroup.Group

		for rank := 0; rank < opt.NProcs; rank++ {
			rank := rank

			eg.Go(func() error {
				state := rankState(opt, rank)
				net := transport.NewEndpoint(world, rank)
				defer net.Close()

				s, err := sweep.New(opt, state, net, rma)
				if err != nil {
					return fmt.Errorf("rank %d: %w", rank, err)
				}

				tm, err := s.Run()
				if err != nil {
					return fmt.Errorf("rank %d: %w", rank, err)
				}

				if rank == 0 {
					mu.Lock()
					collector.Record(tm)
					mu.Unlock()
				}

				return nil
			})
		}

		if err := eg.Wait(); err != nil {
			return err
		}
	}

	return nil
}

// rankState builds this rank's topology record, carrying the
// thread-support level --thread-support reports for this run. Only the
// threaded variants (parmpi, multilock) consult Support; serial,
// pargroup and onesided never touch it.
func rankState(opt config.Options, rank int) topology.RankState {
	var state topology.RankState
	if opt.Strong {
		state, _, _ = topology.DecomposeMesh(rank, opt.NProcs, opt.GNy, opt.GNz)
	} else {
		state = topology.Decompose(rank, opt.NProcs)
	}

	return state.WithSupport(opt.ThreadSupport)
}

func printHeader(w io.Writer, opt config.Options, ny, nz int) {
	py, pz := 1, opt.NProcs
	if opt.NProcs > 0 {
		state := topology.Decompose(0, opt.NProcs)
		if opt.Strong {
			state, _, _ = topology.DecomposeMesh(0, opt.NProcs, opt.GNy, opt.GNz)
		}
		py, pz = state.Py, state.Pz
	}

	mesh := fmt.Sprintf("%d x %d", opt.Ny*py, opt.Nz*pz)
	if opt.Strong {
		mesh = fmt.Sprintf("%d x %d", opt.GNy, opt.GNz)
	}

	timing.WriteHeader(w, timing.Header{
		Version:       version,
		ThreadSupport: opt.ThreadSupport.String(),
		NProcs:        opt.NProcs,
		Decomposition: fmt.Sprintf("%d x %d", py, pz),
		GlobalMesh:    mesh,
		Subdomain:     fmt.Sprintf("%d x %d", ny, nz),
		ChunkGeometry: fmt.Sprintf("%d x %d", opt.NChunks, opt.ChunkLen),
		NAngles:       opt.Nang,
		NGroups:       opt.Ng,
		NSweeps:       opt.NSweeps,
		Sweeper:       opt.Sweep.String(),
	})
}

package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/sarchlab/road-sweeper/topology"
)

// HelpRequested is returned by Parse when --help was given; callers
// should print usage (already written to the FlagSet's output) and exit
// 0, per spec.md §6.
var HelpRequested = fmt.Errorf("help requested")

// Parse builds a flag.FlagSet covering every flag spec.md §6 and
// SPEC_FULL.md §6-EXT specify, parses args (normally os.Args[1:]), and
// returns the assembled Options.
//
// No CLI-flags library in the retrieval corpus is ever imported directly
// by hand-written code (see SPEC_FULL.md's AMBIENT STACK note), so this
// uses stdlib flag, wrapped in the teacher's Builder idiom.
func Parse(args []string, usageOut io.Writer) (Options, error) {
	fs := flag.NewFlagSet("road-sweeper", flag.ContinueOnError)
	fs.SetOutput(usageOut)

	b := NewBuilder()

	nchunks := fs.Int("nchunks", b.opt.NChunks, "chunks per octant along X")
	chunklen := fs.Int("chunklen", b.opt.ChunkLen, "cells per chunk along X")
	ny := fs.Int("ny", b.opt.Ny, "local subdomain extent in y (weak mode)")
	nz := fs.Int("nz", b.opt.Nz, "local subdomain extent in z (weak mode)")
	meshny := fs.Int("meshny", 0, "global mesh extent in y (strong mode)")
	meshnz := fs.Int("meshnz", 0, "global mesh extent in z (strong mode)")
	strong := fs.Bool("strong", false, "select strong-scaling decomposition")
	nang := fs.Int("nang", b.opt.Nang, "angles per cell")
	ng := fs.Int("ng", b.opt.Ng, "energy groups")
	nsweeps := fs.Int("nsweeps", b.opt.NSweeps, "repeat count")
	sweepName := fs.String("sweep", b.opt.Sweep.String(), "sweeper: serial, pargroup, parmpi, multilock, onesided")
	nprocs := fs.Int("nprocs", b.opt.NProcs, "size of the emulated MPI world (ranks run as goroutines)")
	nthreads := fs.Int("nthreads", 0, "emulated OpenMP thread-team size (0 = autodetect)")
	threadSupport := fs.String("thread-support", "multiple", "thread-support level the emulated messaging library grants: single, funneled, serialized, multiple")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return Options{}, HelpRequested
		}
		return Options{}, fmt.Errorf("unknown option: %w", err)
	}

	sweeper, err := ParseSweeper(*sweepName)
	if err != nil {
		return Options{}, err
	}

	support, err := topology.ParseThreadSupport(*threadSupport)
	if err != nil {
		return Options{}, err
	}

	b = b.
		WithNChunks(*nchunks).
		WithChunkLen(*chunklen).
		WithNy(*ny).
		WithNz(*nz).
		WithMeshNy(*meshny).
		WithMeshNz(*meshnz).
		WithStrong(*strong).
		WithNang(*nang).
		WithNg(*ng).
		WithNSweeps(*nsweeps).
		WithSweep(sweeper).
		WithNProcs(*nprocs).
		WithNThreads(*nthreads).
		WithThreadSupport(support)

	return b.Build()
}

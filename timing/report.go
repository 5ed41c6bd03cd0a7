package timing

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Header carries the run-configuration facts spec.md §6 prints before any
// timing, and SPEC_FULL.md's SUPPLEMENTED FEATURES section (modelled on
// original_source/road-sweeper.c's preamble) asks to keep alongside them.
type Header struct {
	Version       string
	ThreadSupport string
	NProcs        int
	Decomposition string // "Py x Pz"
	GlobalMesh    string // "gny x gnz"
	Subdomain     string // "ny x nz" for rank 0, representative
	ChunkGeometry string // "nchunks x chunklen"
	NAngles       int
	NGroups       int
	NSweeps       int
	Sweeper       string
}

// WriteHeader renders the configuration block as a two-column table, the
// same layout the teacher's reporting helpers use for device summaries.
func WriteHeader(w io.Writer, h Header) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("road-sweeper")
	t.AppendRow(table.Row{"version", h.Version})
	t.AppendRow(table.Row{"thread support", h.ThreadSupport})
	t.AppendRow(table.Row{"processes", h.NProcs})
	t.AppendRow(table.Row{"decomposition (Py x Pz)", h.Decomposition})
	t.AppendRow(table.Row{"global mesh", h.GlobalMesh})
	t.AppendRow(table.Row{"subdomain (rank 0)", h.Subdomain})
	t.AppendRow(table.Row{"chunks x chunklen", h.ChunkGeometry})
	t.AppendRow(table.Row{"angles", h.NAngles})
	t.AppendRow(table.Row{"groups", h.NGroups})
	t.AppendRow(table.Row{"sweeps", h.NSweeps})
	t.AppendRow(table.Row{"sweeper", h.Sweeper})
	t.Render()
}

// WriteRuns renders one row per sweep invocation: absolute and
// percentage-of-total breakdowns for setup, sweeping, comms, and the
// derived compute figure (spec.md §4.6).
func WriteRuns(w io.Writer, runs []Timings) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"sweep", "setup", "sweeping", "comms", "compute", "total"})

	for i, r := range runs {
		total := r.Total()
		pct := func(d time.Duration) string {
			if total <= 0 {
				return "0.0%"
			}
			return fmt.Sprintf("%.1f%%", 100*float64(d)/float64(total))
		}
		t.AppendRow(table.Row{
			i,
			fmt.Sprintf("%s (%s)", r.Setup, pct(r.Setup)),
			fmt.Sprintf("%s (%s)", r.Sweeping, pct(r.Sweeping)),
			fmt.Sprintf("%s (%s)", r.Comms, pct(r.Comms)),
			fmt.Sprintf("%s (%s)", r.Compute(), pct(r.Compute())),
			total,
		})
	}

	t.Render()
}

// WriteSummary renders the cross-sweep aggregate: total wall time and the
// best/worst sweep by sweeping duration, with their indices (spec.md §4.6
// "Reporting aggregates across nsweeps invocations").
func WriteSummary(w io.Writer, s Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendRow(table.Row{"total (s)", fmt.Sprintf("%.6f", s.Total)})
	t.AppendRow(table.Row{"best sweep", fmt.Sprintf("#%d (%s)", s.BestIdx, s.Best.Sweeping)})
	t.AppendRow(table.Row{"worst sweep", fmt.Sprintf("#%d (%s)", s.WorstIdx, s.Worst.Sweeping)})
	t.Render()
}

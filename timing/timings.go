// Package timing collects and reports the wall-clock breakdown of a
// sweep invocation (spec.md §4.6 / §8 property 7).
package timing

import "time"

// Timings holds the three cumulative, non-negative wall-clock durations
// spec.md §3 defines for a single sweep invocation. They are monotone
// additive during a sweep and never decrease.
type Timings struct {
	// Setup covers allocation, window creation, lock initialisation, and
	// final teardown.
	Setup time.Duration
	// Sweeping is the wall-clock time between entering and leaving the
	// octant loop.
	Sweeping time.Duration
	// Comms is the sum of wall-clock intervals spent inside messaging
	// calls, recorded only by the last-numbered thread in threaded
	// variants (spec.md §4.4) to avoid multi-counting.
	Comms time.Duration
}

// Compute derives the time spent on synthetic work rather than
// messaging: compute = sweeping - comms (spec.md §4.6).
func (t Timings) Compute() time.Duration {
	return t.Sweeping - t.Comms
}

// Total is setup+sweeping, the figure spec.md's reference report sums
// across all sweeps.
func (t Timings) Total() time.Duration {
	return t.Setup + t.Sweeping
}

// Valid reports whether t satisfies spec.md §8 property 7:
// setup, sweeping, comms >= 0 and comms <= sweeping.
func (t Timings) Valid() bool {
	return t.Setup >= 0 && t.Sweeping >= 0 && t.Comms >= 0 && t.Comms <= t.Sweeping
}

// Collector accumulates timing under a mutex-free append; callers own
// synchronization (a sweep invocation is single-threaded from the
// driver's point of view — only the sweeper internals thread).
type Collector struct {
	Runs []Timings
}

// Record appends t to the collected runs.
func (c *Collector) Record(t Timings) {
	c.Runs = append(c.Runs, t)
}

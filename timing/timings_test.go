package timing_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sarchlab/road-sweeper/timing"
)

func TestTimingsComputeAndTotal(t *testing.T) {
	tm := timing.Timings{Setup: time.Second, Sweeping: 3 * time.Second, Comms: time.Second}
	assert.Equal(t, 2*time.Second, tm.Compute())
	assert.Equal(t, 4*time.Second, tm.Total())
}

func TestTimingsValid(t *testing.T) {
	assert.True(t, timing.Timings{Sweeping: time.Second, Comms: time.Second}.Valid())
	assert.False(t, timing.Timings{Sweeping: time.Second, Comms: 2 * time.Second}.Valid())
	assert.False(t, timing.Timings{Setup: -1}.Valid())
}

func TestCollectorRecord(t *testing.T) {
	var c timing.Collector
	c.Record(timing.Timings{Setup: time.Millisecond})
	c.Record(timing.Timings{Setup: 2 * time.Millisecond})
	assert.Len(t, c.Runs, 2)
}

func TestSummarizePicksBestAndWorstBySweeping(t *testing.T) {
	runs := []timing.Timings{
		{Setup: time.Millisecond, Sweeping: 30 * time.Millisecond},
		{Setup: time.Millisecond, Sweeping: 10 * time.Millisecond},
		{Setup: time.Millisecond, Sweeping: 50 * time.Millisecond},
	}

	s := timing.Summarize(runs)

	assert.Equal(t, 1, s.BestIdx)
	assert.Equal(t, 2, s.WorstIdx)
	assert.InDelta(t, 0.093, s.Total, 0.001)
}

func TestSummarizePanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { timing.Summarize(nil) })
}

func TestWriteHeaderAndRunsProduceOutput(t *testing.T) {
	var buf bytes.Buffer
	timing.WriteHeader(&buf, timing.Header{
		Version:       "dev",
		ThreadSupport: "Funneled",
		NProcs:        4,
		Decomposition: "2 x 2",
		GlobalMesh:    "20 x 20",
		Subdomain:     "10 x 10",
		ChunkGeometry: "5 x 2",
		NAngles:       10,
		NGroups:       16,
		NSweeps:       3,
		Sweeper:       "parmpi",
	})
	assert.NotEmpty(t, buf.String())

	buf.Reset()
	runs := []timing.Timings{{Setup: time.Millisecond, Sweeping: 2 * time.Millisecond, Comms: time.Millisecond}}
	timing.WriteRuns(&buf, runs)
	assert.Contains(t, buf.String(), "SWEEP")

	buf.Reset()
	timing.WriteSummary(&buf, timing.Summarize(runs))
	assert.Contains(t, buf.String(), "total")
}

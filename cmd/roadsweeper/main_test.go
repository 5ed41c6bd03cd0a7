package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarchlab/road-sweeper/sweep"
)

// TestRunRejectsInsufficientThreadSupport drives the real CLI entry
// point through scenario S6 (spec.md §8): a threaded sweeper funnelled
// a thread-support level below what it requires aborts the run with a
// non-zero-exit-worthy error, end to end through run() rather than only
// at sweep's white-box level.
func TestRunRejectsInsufficientThreadSupport(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run([]string{
		"--sweep", "parmpi",
		"--thread-support", "funneled",
		"--nprocs", "2",
		"--nthreads", "2",
	}, &stdout, &stderr)

	require.Error(t, err)
	assert.ErrorIs(t, err, sweep.ErrInsufficientThreadSupport)
}

// TestRunSerialHappyPath exercises a full run through the default
// thread-support level, asserting the header and report reach stdout.
func TestRunSerialHappyPath(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run([]string{"--sweep", "serial", "--nprocs", "2"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "road-sweeper")
	assert.Empty(t, stderr.String())
}

func TestRunConfigurationErrorNeverReachesSweep(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run([]string{"--sweep", "bogus"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Empty(t, stdout.String(), "a configuration error must abort before the header is printed")
}

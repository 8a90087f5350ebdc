package simulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestResolveAddress_DemandLoad covers translation of a non-resident page:
// the page is loaded on demand and the physical address combines the frame
// base with the in-page offset.
func TestResolveAddress_DemandLoad(t *testing.T) {
	sim := newDemandSim(t, 2, PolicyFIFO,
		JobSpec{JobID: 1, SizeBytes: 250, Duration: 10})

	res, err := sim.ResolveAddress(1, 120)
	require.NoError(t, err)
	require.True(t, res.Fault)
	require.Equal(t, 1, res.Page)
	require.Equal(t, 20, res.Offset)
	require.Equal(t, 0, res.FrameID)
	require.Equal(t, 20, res.PhysicalAddress)

	// Resident now: same page resolves without a fault
	res, err = sim.ResolveAddress(1, 199)
	require.NoError(t, err)
	require.False(t, res.Fault)
	require.Equal(t, 1, res.Page)
	require.Equal(t, 99, res.Offset)
	require.Equal(t, 99, res.PhysicalAddress)

	metrics := sim.Metrics()
	require.Equal(t, 2, metrics.Accesses)
	require.Equal(t, 1, metrics.PageFaults)
	require.Equal(t, 1, metrics.Hits)
}

// TestResolveAddress_RoundTrip sweeps every address of a job and verifies
// physical = frame * pageSize + (address mod pageSize) against the page table.
func TestResolveAddress_RoundTrip(t *testing.T) {
	sim := newDemandSim(t, 3, PolicyLRU,
		JobSpec{JobID: 1, SizeBytes: 250, Duration: 10})

	for addr := 0; addr < 250; addr++ {
		res, err := sim.ResolveAddress(1, addr)
		require.NoError(t, err, "address %d", addr)

		require.Equal(t, addr/100, res.Page, "address %d", addr)
		require.Equal(t, addr%100, res.Offset, "address %d", addr)

		frameID, ok := sim.jobs[1].PageTable[res.Page]
		require.True(t, ok, "address %d", addr)
		require.Equal(t, frameID, res.FrameID, "address %d", addr)
		require.Equal(t, frameID*100+addr%100, res.PhysicalAddress, "address %d", addr)
	}
}

// TestResolveAddress_OutOfBounds verifies addresses outside [0, size) fail
// before any table is touched, including the fencepost at exactly size.
func TestResolveAddress_OutOfBounds(t *testing.T) {
	sim := newDemandSim(t, 2, PolicyFIFO,
		JobSpec{JobID: 1, SizeBytes: 250, Duration: 10})

	for _, addr := range []int{250, 251, 1000, -1} {
		_, err := sim.ResolveAddress(1, addr)
		require.ErrorIs(t, err, ErrOutOfBounds, "address %d", addr)
	}

	metrics := sim.Metrics()
	require.Zero(t, metrics.Accesses)
	require.Zero(t, metrics.PageFaults)
	require.Zero(t, sim.pool.OccupiedCount())
}

// TestResolveAddress_LastPageValidOffsets checks that addresses in the
// fragmented tail page still resolve while the fragmentation bytes past the
// job's size do not.
func TestResolveAddress_LastPageValidOffsets(t *testing.T) {
	sim := newDemandSim(t, 2, PolicyFIFO,
		JobSpec{JobID: 1, SizeBytes: 250, Duration: 10})

	// 249 is the last valid address, in page 2 at offset 49
	res, err := sim.ResolveAddress(1, 249)
	require.NoError(t, err)
	require.Equal(t, 2, res.Page)
	require.Equal(t, 49, res.Offset)

	_, err = sim.ResolveAddress(1, 250)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestResolveAddress_UnknownJob(t *testing.T) {
	sim := newDemandSim(t, 2, PolicyFIFO)

	_, err := sim.ResolveAddress(5, 0)
	require.ErrorIs(t, err, ErrUnknownJob)
}

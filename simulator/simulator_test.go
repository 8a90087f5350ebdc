package simulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSimulator_ValidatesConfig(t *testing.T) {
	config := DefaultConfig()
	config.TotalFrames = 0
	_, err := NewSimulator(config)
	require.Error(t, err)

	config = DefaultConfig()
	config.PageSizeBytes = -1
	_, err = NewSimulator(config)
	require.Error(t, err)

	config = DefaultConfig()
	config.MaxTime = -1
	_, err = NewSimulator(config)
	require.Error(t, err)
}

// TestSimulator_EndToEnd runs a mixed workload to completion and checks the
// final tables and counters against the expected timeline.
func TestSimulator_EndToEnd(t *testing.T) {
	config := DefaultConfig()
	config.TotalFrames = 4
	config.PageSizeBytes = 100
	config.RandomSeed = 1

	sim, err := NewSimulator(config)
	require.NoError(t, err)
	require.NoError(t, sim.LoadJobs([]JobSpec{
		{JobID: 1, SizeBytes: 250, ArrivalTime: 0, Duration: 6}, // 3 pages
		{JobID: 2, SizeBytes: 190, ArrivalTime: 1, Duration: 4}, // 2 pages, queued until t=6
		{JobID: 3, SizeBytes: 100, ArrivalTime: 2, Duration: 2}, // 1 page, fits alongside job 1
	}))

	sim.Run()

	// Timeline: 1 admits at 0; 2 queues at 1; 3 admits at 2, completes at 4;
	// 1 completes at 6, 2 admits at 6 and completes at 10.
	require.Equal(t, int64(10), sim.VirtualTime())
	require.True(t, sim.IsQueueEmpty())

	metrics := sim.Metrics()
	require.Equal(t, 3, metrics.Admissions)
	require.Equal(t, 3, metrics.Completions)
	require.Equal(t, 1, metrics.QueuedJobs)
	require.Zero(t, metrics.PageFaults) // admission pre-loads are not demand faults
	require.Zero(t, metrics.Accesses)
	require.Zero(t, metrics.OccupiedFrames)
	require.Equal(t, 4, metrics.FreeFrames)
	require.Zero(t, metrics.UtilizationPercent)

	require.Equal(t, int64(6), sim.jobs[2].StartTime)

	rows := sim.JobTable()
	require.Len(t, rows, 3)
	for _, row := range rows {
		require.Equal(t, JobCompleted, row.State)
		require.Zero(t, row.ResidentCount)
	}
	// Ingestion order is stable
	require.Equal(t, 1, rows[0].JobID)
	require.Equal(t, 2, rows[1].JobID)
	require.Equal(t, 3, rows[2].JobID)
}

func TestSimulator_Reset(t *testing.T) {
	config := DefaultConfig()
	config.TotalFrames = 2
	config.PageSizeBytes = 100
	config.RandomSeed = 1

	sim, err := NewSimulator(config)
	require.NoError(t, err)
	specs := []JobSpec{
		{JobID: 1, SizeBytes: 150, ArrivalTime: 0, Duration: 3},
		{JobID: 2, SizeBytes: 100, ArrivalTime: 1, Duration: 2},
	}
	require.NoError(t, sim.LoadJobs(specs))

	var logged int
	sim.LogEvent = func(string) { logged++ }

	sim.Run()
	firstRun := sim.Metrics()
	require.Positive(t, firstRun.Completions)
	require.Positive(t, logged)

	require.NoError(t, sim.Reset())

	require.Zero(t, sim.VirtualTime())
	require.Zero(t, sim.Clock())
	metrics := sim.Metrics()
	require.Zero(t, metrics.Accesses)
	require.Zero(t, metrics.Completions)
	require.Len(t, sim.jobs, 2)
	require.Equal(t, JobWaiting, sim.jobs[1].State)
	require.Zero(t, sim.pool.OccupiedCount())

	// Callback survives the rebuild
	before := logged
	sim.Run()
	require.Greater(t, logged, before)

	// Deterministic config, deterministic rerun
	secondRun := sim.Metrics()
	require.Equal(t, firstRun.Completions, secondRun.Completions)
	require.Equal(t, firstRun.PageFaults, secondRun.PageFaults)
	require.Equal(t, firstRun.QueuedJobs, secondRun.QueuedJobs)
}

func TestSimulator_UpdateConfig(t *testing.T) {
	config := DefaultConfig()
	config.TotalFrames = 1
	config.PageSizeBytes = 100
	config.RandomSeed = 1

	sim, err := NewSimulator(config)
	require.NoError(t, err)
	require.NoError(t, sim.LoadJobs([]JobSpec{
		{JobID: 1, SizeBytes: 100, ArrivalTime: 0, Duration: 2},
		{JobID: 2, SizeBytes: 100, ArrivalTime: 0, Duration: 2},
	}))

	sim.Run()
	require.Equal(t, 1, sim.Metrics().QueuedJobs)

	// Double the pool: both jobs admit on arrival
	config.TotalFrames = 2
	require.NoError(t, sim.UpdateConfig(config))
	require.Equal(t, 2, sim.Config().TotalFrames)

	sim.Run()
	require.Zero(t, sim.Metrics().QueuedJobs)
	require.Equal(t, 2, sim.Metrics().Completions)

	// Shrinking below a job's footprint rejects the re-ingest
	config.TotalFrames = 0
	require.Error(t, sim.UpdateConfig(config))
}

// TestSimulator_RandomPlacementReproducible pins seeded placement: same seed,
// same frame assignment.
func TestSimulator_RandomPlacementReproducible(t *testing.T) {
	build := func(seed int64) *Simulator {
		config := DefaultConfig()
		config.TotalFrames = 8
		config.PageSizeBytes = 100
		config.Placement = PlacementRandom
		config.RandomSeed = seed

		sim, err := NewSimulator(config)
		require.NoError(t, err)
		require.NoError(t, sim.LoadJobs([]JobSpec{
			{JobID: 1, SizeBytes: 350, ArrivalTime: 0, Duration: 100},
			{JobID: 2, SizeBytes: 220, ArrivalTime: 1, Duration: 100},
		}))
		// Admit both, stop before completions
		sim.Step()
		sim.Step()
		return sim
	}

	a := build(42)
	b := build(42)
	require.Equal(t, a.MemoryMapTable(), b.MemoryMapTable())
	require.Equal(t, a.PageMapTable(), b.PageMapTable())
}

func TestSimulator_Tables(t *testing.T) {
	config := DefaultConfig()
	config.TotalFrames = 4
	config.PageSizeBytes = 100
	config.RandomSeed = 1

	sim, err := NewSimulator(config)
	require.NoError(t, err)
	require.NoError(t, sim.LoadJobs([]JobSpec{
		{JobID: 1, SizeBytes: 250, ArrivalTime: 0, Duration: 10},
	}))
	require.True(t, sim.Step())

	t.Run("job table", func(t *testing.T) {
		rows := sim.JobTable()
		require.Len(t, rows, 1)
		require.Equal(t, 250, rows[0].SizeBytes)
		require.Equal(t, 3, rows[0].PageCount)
		require.Equal(t, 3, rows[0].ResidentCount)
		require.Equal(t, 50, rows[0].Fragmentation)
		require.Equal(t, JobActive, rows[0].State)
	})

	t.Run("page map table", func(t *testing.T) {
		rows := sim.PageMapTable()
		require.Len(t, rows, 3)
		for page, row := range rows {
			require.Equal(t, 1, row.JobID)
			require.Equal(t, page, row.Page)
			require.True(t, row.Resident)
			require.Equal(t, page, row.FrameID) // sequential placement
		}
	})

	t.Run("memory map table", func(t *testing.T) {
		rows := sim.MemoryMapTable()
		require.Len(t, rows, 4)
		for i := 0; i < 3; i++ {
			require.True(t, rows[i].Occupied)
			require.Equal(t, 1, rows[i].JobID)
		}
		require.False(t, rows[3].Occupied)
	})

	t.Run("memory stats", func(t *testing.T) {
		stats := sim.MemoryStats()
		require.Equal(t, 4, stats.TotalFrames)
		require.Equal(t, 3, stats.UsedFrames)
		require.Equal(t, 1, stats.FreeFrames)
		require.InDelta(t, 75.0, stats.UtilizationPercent, 0.001)
	})

	t.Run("state bundle", func(t *testing.T) {
		state := sim.State()
		require.Contains(t, state, "jobTable")
		require.Contains(t, state, "pageMap")
		require.Contains(t, state, "memoryMap")
		require.Contains(t, state, "memoryStats")
		require.Contains(t, state, "waitQueue")
		require.Equal(t, int64(0), state["virtualTime"])

		// One completion pending for the admitted job
		pending, ok := state["pendingEvents"].([]string)
		require.True(t, ok)
		require.Len(t, pending, 1)
		require.Contains(t, pending[0], "Completion")
	})
}

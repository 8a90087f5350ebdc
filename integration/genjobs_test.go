package integration

import (
	"testing"

	"github.com/pagedmem/pagesim/simulator"
	"github.com/stretchr/testify/require"
)

func TestGenerateJobs_Shape(t *testing.T) {
	cfg := DefaultWorkloadConfig()
	cfg.NumJobs = 50

	specs, err := GenerateJobs(cfg)
	require.NoError(t, err)
	require.Len(t, specs, 50)

	lastArrival := int64(0)
	for i, spec := range specs {
		require.Equal(t, i+1, spec.JobID)
		require.GreaterOrEqual(t, spec.SizeBytes, cfg.MinSizeBytes)
		require.LessOrEqual(t, spec.SizeBytes, cfg.MaxSizeBytes)
		require.GreaterOrEqual(t, spec.ArrivalTime, lastArrival)
		require.Positive(t, spec.Duration)
		lastArrival = spec.ArrivalTime
	}
}

func TestGenerateJobs_Reproducible(t *testing.T) {
	cfg := DefaultWorkloadConfig()
	cfg.Seed = 42

	a, err := GenerateJobs(cfg)
	require.NoError(t, err)
	b, err := GenerateJobs(cfg)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestGenerateJobs_SizeDerivedDurations(t *testing.T) {
	cfg := DefaultWorkloadConfig()
	cfg.MaxDuration = 0 // derive from size

	specs, err := GenerateJobs(cfg)
	require.NoError(t, err)
	for _, spec := range specs {
		want := int64(spec.SizeBytes / 500)
		if want < 1 {
			want = 1
		}
		require.Equal(t, want, spec.Duration)
	}
}

func TestGenerateJobs_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*WorkloadConfig)
	}{
		{"zero jobs", func(c *WorkloadConfig) { c.NumJobs = 0 }},
		{"zero min size", func(c *WorkloadConfig) { c.MinSizeBytes = 0 }},
		{"inverted size range", func(c *WorkloadConfig) { c.MaxSizeBytes = c.MinSizeBytes - 1 }},
		{"negative arrival gap", func(c *WorkloadConfig) { c.MinArrivalGap = -1 }},
		{"inverted duration range", func(c *WorkloadConfig) { c.MinDuration = 30; c.MaxDuration = 10 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultWorkloadConfig()
			tc.mutate(&cfg)
			_, err := GenerateJobs(cfg)
			require.Error(t, err)
		})
	}
}

// TestGeneratedWorkloadRunsToCompletion feeds a generated stream through a
// full run and checks every admissible job finishes.
func TestGeneratedWorkloadRunsToCompletion(t *testing.T) {
	cfg := DefaultWorkloadConfig()
	cfg.NumJobs = 30
	cfg.Seed = 7

	specs, err := GenerateJobs(cfg)
	require.NoError(t, err)

	simConfig := simulator.DefaultConfig()
	simConfig.TotalFrames = 8
	simConfig.PageSizeBytes = 256
	simConfig.Policy = simulator.PolicyLRU
	simConfig.RandomSeed = 7

	sim, err := simulator.NewSimulator(simConfig)
	require.NoError(t, err)
	require.NoError(t, sim.LoadJobs(specs))

	sim.Run()

	metrics := sim.Metrics()
	require.Equal(t, cfg.NumJobs, metrics.Completions)
	require.Zero(t, metrics.OccupiedFrames)
	require.Zero(t, metrics.WaitQueueLength)
	require.True(t, sim.IsQueueEmpty())

	for _, row := range sim.JobTable() {
		require.Equal(t, "completed", row.State.String())
	}
}

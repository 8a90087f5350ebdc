// Package integration generates synthetic paging workloads for end-to-end
// simulator runs.
package integration

import (
	"fmt"
	"math/rand"

	"github.com/pagedmem/pagesim/simulator"
)

// WorkloadConfig controls synthetic job stream generation. All sampling is
// driven by Seed, so identical configs produce identical workloads.
type WorkloadConfig struct {
	NumJobs int   `json:"numJobs"`
	Seed    int64 `json:"seed"`

	// Job size bounds in bytes.
	MinSizeBytes int                        `json:"minSizeBytes"`
	MaxSizeBytes int                        `json:"maxSizeBytes"`
	SizeDist     simulator.DistributionType `json:"sizeDistribution"`

	// Gap between consecutive arrivals, in ticks.
	MinArrivalGap int                        `json:"minArrivalGap"`
	MaxArrivalGap int                        `json:"maxArrivalGap"`
	ArrivalDist   simulator.DistributionType `json:"arrivalDistribution"`

	// Service duration bounds in ticks. Zero MaxDuration derives durations
	// from job size instead.
	MinDuration  int                        `json:"minDuration"`
	MaxDuration  int                        `json:"maxDuration"`
	DurationDist simulator.DistributionType `json:"durationDistribution"`
}

// DefaultWorkloadConfig returns a moderate workload: geometric sizes so most
// jobs are small, exponential arrival gaps so arrivals cluster.
func DefaultWorkloadConfig() WorkloadConfig {
	return WorkloadConfig{
		NumJobs:       20,
		Seed:          1,
		MinSizeBytes:  64,
		MaxSizeBytes:  2048,
		SizeDist:      simulator.DistGeometric,
		MinArrivalGap: 0,
		MaxArrivalGap: 10,
		ArrivalDist:   simulator.DistExponential,
		MinDuration:   1,
		MaxDuration:   20,
		DurationDist:  simulator.DistUniform,
	}
}

// Validate checks the workload configuration for consistency.
func (c WorkloadConfig) Validate() error {
	if c.NumJobs <= 0 {
		return fmt.Errorf("numJobs must be > 0, got %d", c.NumJobs)
	}
	if c.MinSizeBytes <= 0 {
		return fmt.Errorf("minSizeBytes must be > 0, got %d", c.MinSizeBytes)
	}
	if c.MaxSizeBytes < c.MinSizeBytes {
		return fmt.Errorf("maxSizeBytes %d < minSizeBytes %d", c.MaxSizeBytes, c.MinSizeBytes)
	}
	if c.MinArrivalGap < 0 {
		return fmt.Errorf("minArrivalGap must be >= 0, got %d", c.MinArrivalGap)
	}
	if c.MaxArrivalGap < c.MinArrivalGap {
		return fmt.Errorf("maxArrivalGap %d < minArrivalGap %d", c.MaxArrivalGap, c.MinArrivalGap)
	}
	if c.MaxDuration > 0 && c.MinDuration <= 0 {
		return fmt.Errorf("minDuration must be > 0, got %d", c.MinDuration)
	}
	if c.MaxDuration > 0 && c.MaxDuration < c.MinDuration {
		return fmt.Errorf("maxDuration %d < minDuration %d", c.MaxDuration, c.MinDuration)
	}
	return nil
}

// GenerateJobs produces a job stream with ids 1..NumJobs and non-decreasing
// arrival times.
func GenerateJobs(cfg WorkloadConfig) ([]simulator.JobSpec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload config: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	sizeDist := simulator.NewDistribution(cfg.SizeDist)
	gapDist := simulator.NewDistribution(cfg.ArrivalDist)
	durDist := simulator.NewDistribution(cfg.DurationDist)

	specs := make([]simulator.JobSpec, 0, cfg.NumJobs)
	arrival := int64(0)
	for i := 0; i < cfg.NumJobs; i++ {
		size := sizeDist.Sample(rng, cfg.MinSizeBytes, cfg.MaxSizeBytes)
		arrival += int64(gapDist.Sample(rng, cfg.MinArrivalGap, cfg.MaxArrivalGap))

		var duration int64
		if cfg.MaxDuration > 0 {
			duration = int64(durDist.Sample(rng, cfg.MinDuration, cfg.MaxDuration))
		} else {
			duration = int64(size / 500)
			if duration < 1 {
				duration = 1
			}
		}

		specs = append(specs, simulator.JobSpec{
			JobID:       i + 1,
			SizeBytes:   size,
			ArrivalTime: arrival,
			Duration:    duration,
		})
	}
	return specs, nil
}

package simulator

import (
	"encoding/json"
	"fmt"
)

// ReplacementPolicy selects the page replacement strategy used when the frame
// pool is exhausted and a demand fault needs a victim.
type ReplacementPolicy int

const (
	PolicyFIFO ReplacementPolicy = iota // Evict the frame loaded earliest
	PolicyLRU                           // Evict the frame accessed least recently
)

// String returns the string representation of ReplacementPolicy
func (p ReplacementPolicy) String() string {
	switch p {
	case PolicyFIFO:
		return "fifo"
	case PolicyLRU:
		return "lru"
	default:
		return "unknown"
	}
}

// ParseReplacementPolicy parses a string into ReplacementPolicy
func ParseReplacementPolicy(s string) (ReplacementPolicy, error) {
	switch s {
	case "fifo":
		return PolicyFIFO, nil
	case "lru":
		return PolicyLRU, nil
	default:
		return PolicyFIFO, fmt.Errorf("invalid replacement policy: %s (must be 'fifo' or 'lru')", s)
	}
}

// MarshalJSON implements json.Marshaler for ReplacementPolicy
func (p ReplacementPolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler for ReplacementPolicy
func (p *ReplacementPolicy) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseReplacementPolicy(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// PlacementMode controls the order in which free frames are handed out during
// bulk admission. Sequential placement fills the lowest-numbered free frames
// first; random placement shuffles the free list with the seeded generator,
// reproducing the classic randomized loading variant.
type PlacementMode int

const (
	PlacementSequential PlacementMode = iota
	PlacementRandom
)

// String returns the string representation of PlacementMode
func (m PlacementMode) String() string {
	switch m {
	case PlacementSequential:
		return "sequential"
	case PlacementRandom:
		return "random"
	default:
		return "unknown"
	}
}

// ParsePlacementMode parses a string into PlacementMode
func ParsePlacementMode(s string) (PlacementMode, error) {
	switch s {
	case "sequential":
		return PlacementSequential, nil
	case "random":
		return PlacementRandom, nil
	default:
		return PlacementSequential, fmt.Errorf("invalid placement mode: %s (must be 'sequential' or 'random')", s)
	}
}

// MarshalJSON implements json.Marshaler for PlacementMode
func (m PlacementMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements json.Unmarshaler for PlacementMode
func (m *PlacementMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePlacementMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// SimConfig holds all simulation parameters, fixed for the duration of a run.
type SimConfig struct {
	// Physical memory
	TotalFrames   int `json:"totalFrames"`   // Number of physical frames in the pool
	PageSizeBytes int `json:"pageSizeBytes"` // Page size == frame capacity, shared by all jobs

	// Replacement & placement
	Policy    ReplacementPolicy `json:"policy"`    // Victim selection: "fifo" or "lru"
	Placement PlacementMode     `json:"placement"` // Admission placement: "sequential" or "random"

	// Simulation control
	RandomSeed int64 `json:"randomSeed"` // Seed for random placement (0 = time-based seed)
	MaxTime    int64 `json:"maxTime"`    // Stop processing events past this timestamp (0 = no cap)
}

// DefaultConfig returns the classic classroom setup: ten 512-byte frames with
// FIFO replacement and sequential placement.
func DefaultConfig() SimConfig {
	return SimConfig{
		TotalFrames:   10,
		PageSizeBytes: 512,
		Policy:        PolicyFIFO,
		Placement:     PlacementSequential,
		RandomSeed:    0,
		MaxTime:       0,
	}
}

// Validate checks if configuration values are reasonable
func (c *SimConfig) Validate() error {
	if c.TotalFrames <= 0 {
		return ErrInvalidConfig("totalFrames must be > 0")
	}
	if c.PageSizeBytes <= 0 {
		return ErrInvalidConfig("pageSizeBytes must be > 0")
	}
	if c.MaxTime < 0 {
		return ErrInvalidConfig("maxTime must be >= 0")
	}
	// Policy and Placement are type-safe enums, no additional validation needed
	return nil
}

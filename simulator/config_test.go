package simulator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	require.Equal(t, PolicyFIFO, config.Policy)
	require.Equal(t, PlacementSequential, config.Placement)
}

// TestSimConfig_JSON exercises the config file format used by sim_runner.
func TestSimConfig_JSON(t *testing.T) {
	input := `{
		"totalFrames": 6,
		"pageSizeBytes": 256,
		"policy": "lru",
		"placement": "random",
		"randomSeed": 99,
		"maxTime": 1000
	}`

	var config SimConfig
	require.NoError(t, json.Unmarshal([]byte(input), &config))
	require.Equal(t, 6, config.TotalFrames)
	require.Equal(t, 256, config.PageSizeBytes)
	require.Equal(t, PolicyLRU, config.Policy)
	require.Equal(t, PlacementRandom, config.Placement)
	require.Equal(t, int64(99), config.RandomSeed)
	require.NoError(t, config.Validate())

	var bad SimConfig
	require.Error(t, json.Unmarshal([]byte(`{"policy": "mru"}`), &bad))
}

func TestParseReplacementPolicy(t *testing.T) {
	p, err := ParseReplacementPolicy("fifo")
	require.NoError(t, err)
	require.Equal(t, PolicyFIFO, p)

	p, err = ParseReplacementPolicy("lru")
	require.NoError(t, err)
	require.Equal(t, PolicyLRU, p)

	_, err = ParseReplacementPolicy("optimal")
	require.Error(t, err)
}

func TestParsePlacementMode(t *testing.T) {
	m, err := ParsePlacementMode("random")
	require.NoError(t, err)
	require.Equal(t, PlacementRandom, m)

	_, err = ParsePlacementMode("scattered")
	require.Error(t, err)
}

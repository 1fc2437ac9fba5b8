package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantiateProfile_ReadsRoleConstants(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		role  RoleKind
		rt    ResourceType
		cycle int64
	}{
		{RoleFarmer, Food, 32},
		{RoleLumberjack, Wood, 24},
		{RoleGoldMiner, Gold, 28},
		{RoleStoneMiner, Stone, 30},
	}
	for _, tc := range tests {
		t.Run(tc.role.String(), func(t *testing.T) {
			w, err := InstantiateProfile(cfg, tc.role, 40)
			require.NoError(t, err)
			assert.Equal(t, tc.rt, w.Resource)
			assert.Equal(t, tc.cycle, w.CycleLength)
			assert.Equal(t, 10.0, w.Yield)
			assert.Equal(t, int64(40), w.StartTime)
		})
	}
}

func TestInstantiateProfile_Builder_UsesHouseBuildDuration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HouseBuildDuration = 40
	w, err := InstantiateProfile(cfg, RoleBuilder, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(40), w.CycleLength)
	assert.Zero(t, w.Yield)
	_, produces := w.Role.Produces()
	assert.False(t, produces)
}

func TestParseWorkerSequence(t *testing.T) {
	cfg := DefaultConfig()
	workers, err := ParseWorkerSequence(cfg, "farmer@0, lumberjack@30,gold-miner")
	require.NoError(t, err)
	require.Len(t, workers, 3)
	assert.Equal(t, RoleFarmer, workers[0].Role)
	assert.Equal(t, int64(30), workers[1].StartTime)
	assert.Equal(t, Gold, workers[2].Resource)
	assert.Equal(t, int64(0), workers[2].StartTime)

	_, err = ParseWorkerSequence(cfg, "wizard@0")
	assert.ErrorIs(t, err, ErrInvalidWorker)
	_, err = ParseWorkerSequence(cfg, "farmer@-3")
	assert.ErrorIs(t, err, ErrInvalidWorker)
}

func TestRoleFor_RoundTripsProduces(t *testing.T) {
	for _, rt := range AllResources {
		got, ok := RoleFor(rt).Produces()
		assert.True(t, ok)
		assert.Equal(t, rt, got)
	}
}

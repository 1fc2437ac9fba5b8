package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_Farmer_SkipsRampUpAndLastCycle(t *testing.T) {
	// GIVEN a farmer with cycle 32 starting at 0
	w := WorkerProfile{Role: RoleFarmer, Resource: Food, Yield: 10, CycleLength: 32}

	// WHEN expanded to horizon 500
	events, err := Expand(w, 500)
	require.NoError(t, err)

	// THEN it produces 14 deliveries at 32, 64, ..., 448
	require.Len(t, events, 14)
	for i, ev := range events {
		assert.Equal(t, int64(32*(i+1)), ev.Time)
		assert.Equal(t, EventResourceDelivery, ev.Kind)
		assert.Equal(t, Food, ev.Resource)
		assert.Equal(t, 10.0, ev.Amount)
	}
}

func TestExpand_DeliveryCounts(t *testing.T) {
	tests := []struct {
		name    string
		start   int64
		cycle   int64
		horizon int64
		want    int
	}{
		{"single cycle fits", 0, 32, 40, 0},
		{"two cycles fit", 0, 32, 64, 1},
		{"late start", 100, 24, 500, 15},
		{"start at horizon", 500, 24, 500, 0},
		{"start beyond horizon", 600, 24, 500, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := WorkerProfile{Role: RoleLumberjack, Resource: Wood, Yield: 10, CycleLength: tc.cycle, StartTime: tc.start}
			events, err := Expand(w, tc.horizon)
			require.NoError(t, err)
			assert.Len(t, events, tc.want)
			for _, ev := range events {
				assert.Less(t, ev.Time, tc.horizon, "delivery at or beyond horizon")
				assert.Greater(t, ev.Time, tc.start)
			}
		})
	}
}

func TestExpand_Builder_OneHouseCompletion(t *testing.T) {
	w := WorkerProfile{Role: RoleBuilder, CycleLength: 25, StartTime: 125}

	events, err := Expand(w, 1000)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventHouseCompleted, events[0].Kind)
	assert.Equal(t, int64(150), events[0].Time)

	// A house that would finish at the horizon is never built.
	events, err = Expand(w, 150)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestExpand_NonPositiveCycle_ReturnsErrInvalidWorker(t *testing.T) {
	for _, cycle := range []int64{0, -5} {
		w := WorkerProfile{Role: RoleFarmer, Resource: Food, Yield: 10, CycleLength: cycle}
		_, err := Expand(w, 100)
		if !errors.Is(err, ErrInvalidWorker) {
			t.Errorf("cycle %d: got %v, want ErrInvalidWorker", cycle, err)
		}
	}
}

func TestExpand_UnknownResource_ReturnsErrUnknownResource(t *testing.T) {
	w := WorkerProfile{Role: RoleFarmer, Resource: ResourceType(9), Yield: 10, CycleLength: 10}
	_, err := Expand(w, 100)
	assert.ErrorIs(t, err, ErrUnknownResource)
	assert.ErrorIs(t, err, ErrInvalidWorker)
}

func TestExpandAll_WrapsWorkerIndex(t *testing.T) {
	workers := []WorkerProfile{
		{Role: RoleFarmer, Resource: Food, Yield: 10, CycleLength: 32},
		{Role: RoleGoldMiner, Resource: Gold, Yield: 10, CycleLength: 0},
	}
	_, err := ExpandAll(workers, 500)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWorker)
	assert.Contains(t, err.Error(), "worker 1")
}

package cmd

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcsim/tcsim/sim"
)

func TestMain(m *testing.M) {
	logrus.SetLevel(logrus.WarnLevel)
	os.Exit(m.Run())
}

func TestRunSimulation_GoalMode_PrintsCompletion(t *testing.T) {
	// GIVEN three farmers and a food goal
	var out bytes.Buffer
	opts := runOptions{mode: modeGoal, workers: "farmer@0,farmer@0,farmer@0", goal: []string{"food=500"}}

	// WHEN the run command logic executes
	err := runSimulation(sim.DefaultConfig(), opts, &out)

	// THEN the completion time and the stock table are printed
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Goal food=500 met at t=320")
	assert.Contains(t, out.String(), "RESOURCE", "tablewriter renders headers upper-cased")
	assert.Contains(t, out.String(), "Villagers trained: 0")
}

func TestRunSimulation_ComplexModeWithTrace(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.TraceLevel = "decisions"
	var out bytes.Buffer

	err := runSimulation(cfg, runOptions{mode: modeComplex, targetPopulation: 9, goal: []string{"food=100000"}}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "goal food=100000 not met")
	assert.Contains(t, out.String(), "Houses built: 1")
	assert.Contains(t, out.String(), "Decision Trace Summary")
	assert.Contains(t, out.String(), "housing overrides 1")
}

func TestRunSimulation_GoalFromConfigFile(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Goal = map[string]float64{"food": 500}
	var out bytes.Buffer

	err := runSimulation(cfg, runOptions{mode: modeSimple, targetPopulation: 3}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "met at t=288")
}

func TestRunSimulation_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts runOptions
		want error
	}{
		{"unknown mode", runOptions{mode: "turbo", goal: []string{"food=1"}}, nil},
		{"missing goal", runOptions{mode: modeSimple, targetPopulation: 5}, sim.ErrMissingGoal},
		{"bad worker", runOptions{mode: modeFixed, workers: "wizard@0"}, sim.ErrInvalidWorker},
		{"no workers", runOptions{mode: modeFixed, workers: ""}, sim.ErrInvalidWorker},
		{"bad goal", runOptions{mode: modeSimple, goal: []string{"iron=3"}}, sim.ErrUnknownResource},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := runSimulation(sim.DefaultConfig(), tc.opts, &bytes.Buffer{})
			require.Error(t, err)
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRunSweep_PrintsFastestTarget(t *testing.T) {
	sweepFrom, sweepTo, sweepGoal, sweepComplex, sweepPolicy = 3, 4, []string{"food=500"}, false, ""
	var out bytes.Buffer

	require.NoError(t, runSweep(sim.DefaultConfig(), &out))

	assert.Contains(t, out.String(), "Fastest: target population 3 at t=288")
}

func TestWriteDefaults_IsLoadable(t *testing.T) {
	// GIVEN the printed defaults
	var out bytes.Buffer
	require.NoError(t, writeDefaults(&out))

	// WHEN parsed back as a config file
	cfg, err := sim.ParseConfig(out.Bytes())

	// THEN they match DefaultConfig
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultConfig(), cfg)
}

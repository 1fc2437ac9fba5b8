package trace

import (
	"testing"
)

func TestSimulationTrace_RecordTraining_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a training record is recorded
	st.RecordTraining(TrainingRecord{
		Clock:   10,
		Started: false,
		Reason:  TrainingInsufficientFood,
		Food:    40,
	})

	// THEN the trace contains one training record with correct data
	if len(st.Trainings) != 1 {
		t.Fatalf("expected 1 training record, got %d", len(st.Trainings))
	}
	if st.Trainings[0].Reason != TrainingInsufficientFood {
		t.Errorf("expected reason %q, got %q", TrainingInsufficientFood, st.Trainings[0].Reason)
	}
	if st.Trainings[0].Started {
		t.Error("expected started=false")
	}
}

func TestSimulationTrace_RecordAllocation_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN an allocation record is recorded
	st.RecordAllocation(AllocationRecord{
		Clock:   25,
		Trigger: "VillagerTrained",
		Role:    "farmer",
		Scores:  map[string]float64{"food": 116},
	})

	// THEN the trace contains one allocation record with correct data
	if len(st.Allocations) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(st.Allocations))
	}
	if st.Allocations[0].Role != "farmer" {
		t.Errorf("expected farmer, got %s", st.Allocations[0].Role)
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN multiple records are added
	st.RecordTraining(TrainingRecord{Clock: 0, Started: true, Reason: TrainingStarted})
	st.RecordTraining(TrainingRecord{Clock: 25, Started: false, Reason: TrainingInsufficientFood})
	st.RecordAllocation(AllocationRecord{Clock: 25, Role: "farmer"})
	st.RecordHouse(HouseRecord{Clock: 300, PopulationCap: 15})

	// THEN order is preserved
	if len(st.Trainings) != 2 {
		t.Fatalf("expected 2 trainings, got %d", len(st.Trainings))
	}
	if st.Trainings[0].Clock != 0 || st.Trainings[1].Clock != 25 {
		t.Error("training order not preserved")
	}
	if len(st.Allocations) != 1 || st.Allocations[0].Role != "farmer" {
		t.Error("allocation record mismatch")
	}
	if len(st.Houses) != 1 || st.Houses[0].PopulationCap != 15 {
		t.Error("house record mismatch")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true}, // empty defaults to none
		{"detailed", false},
		{"foobar", false},
		{"NONE", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}

func TestTraceLevel_Enabled(t *testing.T) {
	if TraceLevelNone.Enabled() {
		t.Error("none must not be enabled")
	}
	if TraceLevel("").Enabled() {
		t.Error("empty level must not be enabled")
	}
	if !TraceLevelDecisions.Enabled() {
		t.Error("decisions must be enabled")
	}
}

package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every training attempt and role assignment.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Enabled reports whether the level records anything.
func (l TraceLevel) Enabled() bool {
	return l == TraceLevelDecisions
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during one simulation run.
type SimulationTrace struct {
	Config      TraceConfig
	Trainings   []TrainingRecord
	Allocations []AllocationRecord
	Houses      []HouseRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		Trainings:   make([]TrainingRecord, 0),
		Allocations: make([]AllocationRecord, 0),
		Houses:      make([]HouseRecord, 0),
	}
}

// RecordTraining appends a training attempt record.
func (st *SimulationTrace) RecordTraining(record TrainingRecord) {
	st.Trainings = append(st.Trainings, record)
}

// RecordAllocation appends a role assignment record.
func (st *SimulationTrace) RecordAllocation(record AllocationRecord) {
	st.Allocations = append(st.Allocations, record)
}

// RecordHouse appends a house completion record.
func (st *SimulationTrace) RecordHouse(record HouseRecord) {
	st.Houses = append(st.Houses, record)
}

// Package trace provides decision-trace recording for allocation policy analysis.
// It has no dependency on sim/ and stores plain data types.
package trace

// Training attempt outcomes.
const (
	TrainingStarted          = "started"
	TrainingInsufficientFood = "insufficient-food"
	TrainingPopulationCapped = "population-capped"
)

// TrainingRecord captures a single TryTrainVillager attempt.
type TrainingRecord struct {
	Clock   int64
	Started bool
	Reason  string  // one of the Training* constants
	Food    float64 // food in the ledger when the attempt was made
}

// AllocationRecord captures a single role assignment.
type AllocationRecord struct {
	Clock           int64
	Trigger         string             // event kind that caused the assignment
	Role            string             // chosen role name
	HousingOverride bool               // true if a builder was forced
	Reason          string             // policy explanation
	Scores          map[string]float64 // per-resource need scores (nil when housing was forced)
	Margin          float64            // score(chosen) - best alternative score; 0 on ties or overrides
	Population      int
	PopulationCap   int
}

// HouseRecord captures a completed house.
type HouseRecord struct {
	Clock         int64
	PopulationCap int // cap after the house was added
}

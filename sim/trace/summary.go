package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TrainingAttempts int
	TrainingStarted  int
	RetriesByReason  map[string]int // failed-attempt reason → count
	TotalAllocations int
	HousingOverrides int
	HousesCompleted  int
	MeanMargin       float64
	RoleDistribution map[string]int // role name → number of assignments
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		RetriesByReason:  make(map[string]int),
		RoleDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TrainingAttempts = len(st.Trainings)
	for _, tr := range st.Trainings {
		if tr.Started {
			summary.TrainingStarted++
		} else {
			summary.RetriesByReason[tr.Reason]++
		}
	}

	summary.TotalAllocations = len(st.Allocations)
	if len(st.Allocations) > 0 {
		totalMargin := 0.0
		for _, a := range st.Allocations {
			summary.RoleDistribution[a.Role]++
			if a.HousingOverride {
				summary.HousingOverrides++
			}
			totalMargin += a.Margin
		}
		summary.MeanMargin = totalMargin / float64(len(st.Allocations))
	}

	summary.HousesCompleted = len(st.Houses)
	return summary
}

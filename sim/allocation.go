package sim

import (
	"fmt"
	"math"
)

// AllocationRequest is the state an AllocationPolicy sees when a villager
// becomes available. Ledger and Labor are live: ChooseRole mutates them.
type AllocationRequest struct {
	Ledger          *Ledger
	Labor           *LaborDivision
	Goal            Goal // resource target the base is working toward
	Now             int64
	PopulationCap   int
	Population      int
	ConsiderHousing bool
}

// RoleDecision is the outcome of an allocation.
type RoleDecision struct {
	Role            RoleKind
	HousingOverride bool    // a builder was forced ahead of any resource role
	Scores          Amounts // need score per resource; zero when HousingOverride
	Margin          float64 // chosen score minus best alternative
	Reason          string
}

// AllocationPolicy decides which job a newly available villager takes.
// Implementations apply their decision: a gathering role increments the
// labor division, a forced builder pays the house cost from the ledger.
type AllocationPolicy interface {
	ChooseRole(req *AllocationRequest) RoleDecision
}

// ValidAllocationPolicies is the set of recognized allocation policy names.
var ValidAllocationPolicies = map[string]bool{"": true, "need-score": true, "round-robin": true}

// IsValidAllocationPolicy returns true if name is a recognized policy.
func IsValidAllocationPolicy(name string) bool {
	return ValidAllocationPolicies[name]
}

// NewAllocationPolicy creates an allocation policy by name.
// An empty string defaults to need-score.
// Panics on unrecognized names; Config.Validate rejects them earlier.
func NewAllocationPolicy(name string, cfg *Config) AllocationPolicy {
	if !IsValidAllocationPolicy(name) {
		panic(fmt.Sprintf("unknown allocation policy %q", name))
	}
	switch name {
	case "", "need-score":
		return &NeedScorePolicy{cfg: cfg}
	case "round-robin":
		return &RoundRobinPolicy{cfg: cfg}
	default:
		panic(fmt.Sprintf("unhandled allocation policy %q", name))
	}
}

// NeedScorePolicy sends each villager to the resource with the largest
// outstanding need per assigned worker.
//
// For every resource: a zero need scores 0, an unstaffed resource scores
// need - current, otherwise floor((need - current) / workers). The first
// maximal score in food, wood, gold, stone order wins.
type NeedScorePolicy struct {
	cfg *Config
}

// ChooseRole implements AllocationPolicy.
func (p *NeedScorePolicy) ChooseRole(req *AllocationRequest) RoleDecision {
	if housingDue(p.cfg, req) {
		return buildHouse(p.cfg, req)
	}
	need := EffectiveNeed(p.cfg, req.Goal, *req.Labor, req.ConsiderHousing)
	scores := NeedScores(need, req.Ledger.Snapshot(), *req.Labor)
	rt, margin := MostNeeded(scores)
	req.Labor[rt]++
	return RoleDecision{
		Role:   RoleFor(rt),
		Scores: scores,
		Margin: margin,
		Reason: fmt.Sprintf("most needed %s (score %g)", rt, scores[rt]),
	}
}

// RoundRobinPolicy rotates through the resources that have a non-zero need.
// It ignores stock levels and serves as a baseline for sweeps.
type RoundRobinPolicy struct {
	cfg  *Config
	next int
}

// ChooseRole implements AllocationPolicy.
func (p *RoundRobinPolicy) ChooseRole(req *AllocationRequest) RoleDecision {
	if housingDue(p.cfg, req) {
		return buildHouse(p.cfg, req)
	}
	need := EffectiveNeed(p.cfg, req.Goal, *req.Labor, req.ConsiderHousing)
	rt := Food
	for i := 0; i < NumResources; i++ {
		cand := AllResources[(p.next+i)%NumResources]
		if need[cand] > 0 {
			rt = cand
			p.next = (int(cand) + 1) % NumResources
			break
		}
	}
	scores := NeedScores(need, req.Ledger.Snapshot(), *req.Labor)
	req.Labor[rt]++
	return RoleDecision{
		Role:   RoleFor(rt),
		Scores: scores,
		Reason: fmt.Sprintf("rotation to %s", rt),
	}
}

// housingDue reports whether the next villager must build a house: housing
// is in play, exactly HousingSlack slots remain, and the base has grown
// past HousingMinPopulation.
func housingDue(cfg *Config, req *AllocationRequest) bool {
	if !req.ConsiderHousing {
		return false
	}
	return req.PopulationCap-req.Population == cfg.HousingSlack &&
		req.Population >= cfg.HousingMinPopulation
}

func buildHouse(cfg *Config, req *AllocationRequest) RoleDecision {
	req.Ledger.Add(Wood, -cfg.WoodCostPerHouse)
	return RoleDecision{
		Role:            RoleBuilder,
		HousingOverride: true,
		Reason:          fmt.Sprintf("population %d/%d, house needed", req.Population, req.PopulationCap),
	}
}

// EffectiveNeed returns the per-resource target the policy works toward.
// With housing in play the wood target also covers farm construction for
// every assigned farmer plus a fixed overhead.
func EffectiveNeed(cfg *Config, goal Goal, labor LaborDivision, considerHousing bool) Amounts {
	need := goal.Amounts()
	if considerHousing {
		need[Wood] = goal[Wood] + float64(labor[Food])*cfg.WoodCostPerFarm + cfg.FixedWoodOverhead
	}
	return need
}

// NeedScores computes the need score of every resource.
func NeedScores(need, current Amounts, labor LaborDivision) Amounts {
	var scores Amounts
	for _, rt := range AllResources {
		switch {
		case need[rt] == 0:
			scores[rt] = 0
		case labor[rt] == 0:
			scores[rt] = need[rt] - current[rt]
		default:
			scores[rt] = math.Floor((need[rt] - current[rt]) / float64(labor[rt]))
		}
	}
	return scores
}

// MostNeeded returns the first resource holding the maximal score, in
// enumeration order, and its lead over the best other resource.
func MostNeeded(scores Amounts) (ResourceType, float64) {
	best := Food
	for _, rt := range AllResources[1:] {
		if scores[rt] > scores[best] {
			best = rt
		}
	}
	runnerUp := math.Inf(-1)
	for _, rt := range AllResources {
		if rt != best && scores[rt] > runnerUp {
			runnerUp = scores[rt]
		}
	}
	return best, scores[best] - runnerUp
}

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// SweepSpec describes a parameter sweep over the target population.
type SweepSpec struct {
	From, To int    // inclusive target population range
	Goal     Goal   // resource goal every point works toward
	Complex  bool   // use RunComplexDynamic instead of RunSimpleDynamic
	Policy   string // overrides Config.AllocationPolicy when non-empty
}

// SweepPoint is the outcome of one target population.
type SweepPoint struct {
	TargetPopulation int
	CompletionTime   int64
	Reached          bool
	Status           Status
	Labor            LaborDivision
}

// Sweep runs one independent simulation per target population in
// [opts.From, opts.To] and returns the points in ascending order.
func Sweep(cfg *Config, opts SweepSpec) ([]SweepPoint, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if opts.Goal == nil {
		return nil, ErrMissingGoal
	}
	if opts.From < 0 || opts.To < opts.From {
		return nil, fmt.Errorf("%w: invalid sweep range [%d, %d]", ErrInvalidConfig, opts.From, opts.To)
	}
	runCfg := *cfg
	if opts.Policy != "" {
		runCfg.AllocationPolicy = opts.Policy
	}

	points := make([]SweepPoint, 0, opts.To-opts.From+1)
	for target := opts.From; target <= opts.To; target++ {
		s, err := NewSimulator(&runCfg)
		if err != nil {
			return nil, err
		}
		var res *Result
		if opts.Complex {
			res, err = s.RunComplexDynamic(target, opts.Goal)
		} else {
			res, err = s.RunSimpleDynamic(target, opts.Goal)
		}
		if err != nil {
			return nil, fmt.Errorf("target population %d: %w", target, err)
		}
		logrus.Debugf("sweep: target=%d status=%s completion=%d labor=%s",
			target, res.Status, res.CompletionTime, res.Labor)
		points = append(points, SweepPoint{
			TargetPopulation: target,
			CompletionTime:   res.CompletionTime,
			Reached:          res.GoalReached,
			Status:           res.Status,
			Labor:            res.Labor,
		})
	}
	return points, nil
}

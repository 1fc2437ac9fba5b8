package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tcsim/tcsim/sim"
)

// Run modes accepted by --mode.
const (
	modeFixed   = "fixed"
	modeGoal    = "goal"
	modeSimple  = "simple"
	modeComplex = "complex"
)

// runOptions collects the flags of the run command.
type runOptions struct {
	mode             string
	workers          string
	horizon          int64
	goal             []string
	targetPopulation int
	policy           string
	traceLevel       string
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation and print the final economy",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runSimulation(cfg, runOpts, os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// loadConfig reads --config, if given, and applies the flags that override
// config values. Only flags the user actually set take effect.
func loadConfig(cmd *cobra.Command) (*sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("horizon") {
		cfg.Horizon = runOpts.horizon
	}
	if flags.Changed("policy") {
		cfg.AllocationPolicy = runOpts.policy
	}
	if flags.Changed("trace-level") {
		cfg.TraceLevel = runOpts.traceLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveGoal prefers --goal over the goal block of the config file.
func resolveGoal(cfg *sim.Config, entries []string) (sim.Goal, error) {
	goal, err := sim.ParseGoal(entries)
	if err != nil || goal != nil {
		return goal, err
	}
	return cfg.GoalFromConfig()
}

func runSimulation(cfg *sim.Config, opts runOptions, out io.Writer) error {
	s, err := sim.NewSimulator(cfg)
	if err != nil {
		return err
	}
	goal, err := resolveGoal(cfg, opts.goal)
	if err != nil {
		return err
	}

	var res *sim.Result
	switch opts.mode {
	case modeFixed, modeGoal:
		workers, err := sim.ParseWorkerSequence(cfg, opts.workers)
		if err != nil {
			return err
		}
		if len(workers) == 0 {
			return fmt.Errorf("%w: --workers must name at least one worker", sim.ErrInvalidWorker)
		}
		if opts.mode == modeFixed {
			res, err = s.RunFixedSequence(workers, cfg.Horizon)
		} else {
			s.SetGoal(goal)
			res, err = s.RunToGoal(workers, cfg.Horizon)
		}
		if err != nil {
			return err
		}
	case modeSimple:
		if res, err = s.RunSimpleDynamic(opts.targetPopulation, goal); err != nil {
			return err
		}
	case modeComplex:
		if res, err = s.RunComplexDynamic(opts.targetPopulation, goal); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown mode %q (want %s, %s, %s or %s)", opts.mode, modeFixed, modeGoal, modeSimple, modeComplex)
	}

	printResult(out, opts.mode, goal, res)
	if res.Trace != nil {
		printTraceSummary(out, res.Trace)
	}
	return nil
}

func init() {
	runCmd.Flags().StringVar(&runOpts.mode, "mode", modeComplex, "Run mode: fixed, goal, simple or complex")
	runCmd.Flags().StringVar(&runOpts.workers, "workers", "farmer@0,farmer@0,farmer@0", "Worker sequence for fixed and goal modes (role@start,...)")
	runCmd.Flags().Int64Var(&runOpts.horizon, "horizon", 10000, "Simulation horizon in seconds")
	runCmd.Flags().StringSliceVar(&runOpts.goal, "goal", nil, "Resource goal, e.g. food=500,gold=100")
	runCmd.Flags().IntVar(&runOpts.targetPopulation, "target-population", 10, "Population at which villager training stops (dynamic modes)")
	runCmd.Flags().StringVar(&runOpts.policy, "policy", "need-score", "Allocation policy: need-score or round-robin")
	runCmd.Flags().StringVar(&runOpts.traceLevel, "trace-level", "none", "Decision trace level: none or decisions")
}

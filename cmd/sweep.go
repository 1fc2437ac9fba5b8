package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tcsim/tcsim/sim"
)

var (
	sweepFrom    int      // First target population
	sweepTo      int      // Last target population (inclusive)
	sweepGoal    []string // Resource goal shared by every point
	sweepComplex bool     // Use the housing economy
	sweepPolicy  string   // Allocation policy override
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare completion time across target populations",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := sim.DefaultConfig()
		if configPath != "" {
			loaded, err := sim.LoadConfig(configPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			cfg = loaded
		}
		if err := runSweep(cfg, os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func runSweep(cfg *sim.Config, out io.Writer) error {
	goal, err := resolveGoal(cfg, sweepGoal)
	if err != nil {
		return err
	}
	points, err := sim.Sweep(cfg, sim.SweepSpec{
		From:    sweepFrom,
		To:      sweepTo,
		Goal:    goal,
		Complex: sweepComplex,
		Policy:  sweepPolicy,
	})
	if err != nil {
		return err
	}
	printSweep(out, goal, points)
	return nil
}

func init() {
	sweepCmd.Flags().IntVar(&sweepFrom, "from", 4, "First target population")
	sweepCmd.Flags().IntVar(&sweepTo, "to", 30, "Last target population (inclusive)")
	sweepCmd.Flags().StringSliceVar(&sweepGoal, "goal", []string{"food=2000"}, "Resource goal, e.g. food=2000,wood=500")
	sweepCmd.Flags().BoolVar(&sweepComplex, "complex", false, "Use the housing economy")
	sweepCmd.Flags().StringVar(&sweepPolicy, "policy", "", "Allocation policy override")
}

package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/tcsim/tcsim/sim"
	"github.com/tcsim/tcsim/sim/trace"
)

func statusColor(status sim.Status) *color.Color {
	switch status {
	case sim.StatusGoalMet:
		return color.New(color.FgGreen, color.Bold)
	case sim.StatusHalted:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgYellow)
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// printResult writes the outcome of a single run.
func printResult(w io.Writer, mode string, goal sim.Goal, res *sim.Result) {
	titleColor := color.New(color.FgCyan, color.Bold)
	_, _ = titleColor.Fprintf(w, "=== %s run ===\n", mode)

	if at, ok := res.Completion(); ok {
		_, _ = statusColor(res.Status).Fprintf(w, "Goal %s met at t=%d\n", goal, at)
	} else {
		_, _ = statusColor(res.Status).Fprintf(w, "Run ended %s at t=%d (goal %s not met)\n", res.Status, res.EndTime, goal)
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Resource", "Stock", "Goal", "Workers"}),
	)
	for _, rt := range sim.AllResources {
		goalCell := "-"
		if v, ok := goal[rt]; ok {
			goalCell = formatAmount(v)
		}
		_ = table.Append([]string{
			rt.String(),
			formatAmount(res.Resources[rt]),
			goalCell,
			strconv.Itoa(res.Labor[rt]),
		})
	}
	_ = table.Render()

	_, _ = fmt.Fprintf(w, "Population: %d / %d   Houses built: %d\n", res.Population, res.PopulationCap, res.HousesBuilt)
	_, _ = fmt.Fprintf(w, "Villagers trained: %d   Training retries: %d   Events processed: %d\n",
		res.VillagersTrained, res.TrainingRetries, res.EventsProcessed)
}

// printSweep writes one row per target population.
func printSweep(w io.Writer, goal sim.Goal, points []sim.SweepPoint) {
	titleColor := color.New(color.FgCyan, color.Bold)
	_, _ = titleColor.Fprintf(w, "=== sweep toward %s ===\n", goal)

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Target", "Status", "Completion", "Food", "Wood", "Gold", "Stone"}),
	)
	var best *sim.SweepPoint
	for i := range points {
		p := &points[i]
		completion := "-"
		if p.Reached {
			completion = strconv.FormatInt(p.CompletionTime, 10)
			if best == nil || p.CompletionTime < best.CompletionTime {
				best = p
			}
		}
		_ = table.Append([]string{
			strconv.Itoa(p.TargetPopulation),
			p.Status.String(),
			completion,
			strconv.Itoa(p.Labor[sim.Food]),
			strconv.Itoa(p.Labor[sim.Wood]),
			strconv.Itoa(p.Labor[sim.Gold]),
			strconv.Itoa(p.Labor[sim.Stone]),
		})
	}
	_ = table.Render()

	if best != nil {
		_, _ = color.New(color.FgGreen).Fprintf(w, "Fastest: target population %d at t=%d\n", best.TargetPopulation, best.CompletionTime)
	} else {
		_, _ = color.New(color.FgYellow).Fprintln(w, "No target population reached the goal")
	}
}

// printTraceSummary writes aggregate decision statistics.
func printTraceSummary(w io.Writer, st *trace.SimulationTrace) {
	summary := trace.Summarize(st)
	_, _ = fmt.Fprintln(w, "=== Decision Trace Summary ===")
	_, _ = fmt.Fprintf(w, "Training attempts: %d (started %d)\n", summary.TrainingAttempts, summary.TrainingStarted)
	for _, reason := range sortedKeys(summary.RetriesByReason) {
		_, _ = fmt.Fprintf(w, "  retry %s: %d\n", reason, summary.RetriesByReason[reason])
	}
	_, _ = fmt.Fprintf(w, "Allocations: %d (housing overrides %d, mean margin %.2f)\n",
		summary.TotalAllocations, summary.HousingOverrides, summary.MeanMargin)
	for _, role := range sortedKeys(summary.RoleDistribution) {
		_, _ = fmt.Fprintf(w, "  %s: %d\n", role, summary.RoleDistribution[role])
	}
	_, _ = fmt.Fprintf(w, "Houses completed: %d\n", summary.HousesCompleted)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

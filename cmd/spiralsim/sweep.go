package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"spiralsim/internal/engine"
	"spiralsim/internal/metrics"
)

var sweepSeeds int

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "run the configuration across many seeds and report pass rates",
	RunE:  runSweep,
}

func init() {
	addRunFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepSeeds, "seeds", 8, "number of consecutive seeds")
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepSeeds < 1 {
		return fmt.Errorf("seeds must be at least 1")
	}

	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	seeds := make([]int64, sweepSeeds)
	for i := range seeds {
		seeds[i] = cfg.Seed + int64(i)
	}

	fmt.Printf("sweeping %d seeds from %d (%s scenario)...\n", sweepSeeds, cfg.Seed, cfg.Scenario.Name)
	start := time.Now()

	results, err := engine.RunSeeds(context.Background(), cfg, seeds)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	var order []string
	passes := make(map[string]int)
	applicable := make(map[string]int)

	for i, res := range results {
		scores := metrics.Evaluate(res, cfg, nil)
		for _, s := range scores {
			if i == 0 {
				order = append(order, s.Name)
			}
			if s.Status == metrics.StatusNotApplicable {
				continue
			}
			applicable[s.Name]++
			if s.Pass {
				passes[s.Name]++
			}
		}
	}

	fmt.Printf("completed in %v\n\n", elapsed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CRITERION\tPASS RATE\tAPPLICABLE")
	for _, name := range order {
		if applicable[name] == 0 {
			fmt.Fprintf(w, "%s\t-\t0/%d\n", name, len(results))
			continue
		}
		rate := 100 * float64(passes[name]) / float64(applicable[name])
		fmt.Fprintf(w, "%s\t%.0f%%\t%d/%d\n", name, rate, applicable[name], len(results))
	}
	return w.Flush()
}

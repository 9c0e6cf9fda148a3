package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"spiralsim/internal/config"
	"spiralsim/internal/engine"
	"spiralsim/internal/export"
	"spiralsim/internal/metrics"
	"spiralsim/internal/scenario"
	"spiralsim/internal/store"
)

// Simulation flags shared by run, validate, compare, live and sweep.
var (
	preset       string
	scenarioName string
	numStrates   int
	seed         int64
	duration     float64
	dt           float64
	extended     bool

	outDir string
	quiet  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run a simulation and store its artifacts",
	RunE:  runSimulation,
}

func init() {
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&outDir, "out", "", "also write config, trace and figure to this directory")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "print only the run id")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&scenarioName, "scenario", scenario.Constant, "input scenario (constant, step, ramp)")
	cmd.Flags().IntVar(&numStrates, "n", config.DefaultN, "number of strates")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().Float64Var(&duration, "duration", config.DefaultDuration, "duration in seconds")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().BoolVar(&extended, "extended", false, "extended signal form with latent E/O streams")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("running %s scenario (n=%d, seed=%d, %s mode)...\n",
			cfg.Scenario.Name, cfg.N, cfg.Seed, cfg.Mode)
	}

	res, err := eng.Run(context.Background())
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runID := store.NewRunID(cfg.Scenario.Name)
	if err := st.SaveRun(context.Background(), runID, cfg, res); err != nil {
		return err
	}

	if outDir != "" {
		if err := writeArtifacts(outDir, cfg, res); err != nil {
			return err
		}
	}

	if quiet {
		fmt.Println(runID)
		return nil
	}

	fmt.Printf("completed in %.3fs\n", res.WallSeconds)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(res.Trace))
	fmt.Printf("trace hash: %s\n", res.Trace.Hash())
	fmt.Println("\nmetrics:")
	printScores(metrics.Evaluate(res, cfg, nil))
	return nil
}

// writeArtifacts mirrors the stored artifacts into a user directory.
func writeArtifacts(dir string, cfg *config.Config, res *engine.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := config.Save(filepath.Join(dir, "config.yaml"), cfg); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "trace.csv"), res.Trace.CSVBytes(), 0o644); err != nil {
		return err
	}
	if fig := export.Figure(res.Trace); fig != nil {
		if err := os.WriteFile(filepath.Join(dir, "figure.svg"), fig, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func printScores(scores []metrics.Score) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CRITERION\tVALUE\tSTATUS\tDETAIL")
	for _, s := range scores {
		fmt.Fprintf(w, "%s\t%.6f\t%s\t%s\n", s.Name, s.Value, s.Status, s.Detail)
	}
	w.Flush()
}

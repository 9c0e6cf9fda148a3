package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"spiralsim/internal/kuramoto"
	"spiralsim/internal/store"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "run the engine against a matched Kuramoto control",
	Long: `compare runs the spiral engine and a Kuramoto mean-field model with
matched size, grid and seed, then reports the cpu ratio and the
regulation gain of the engine over the uncontrolled baseline.`,
	RunE: runCompare,
}

func init() {
	addRunFlags(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("comparing against kuramoto control (n=%d, seed=%d)...\n", cfg.N, cfg.Seed)

	cmp, engRes, ctlRes, err := kuramoto.Compare(context.Background(), cfg)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runID := store.NewRunID(cfg.Scenario.Name)
	if err := st.SaveRun(context.Background(), runID, cfg, engRes); err != nil {
		return err
	}
	if err := st.SaveComparison(runID, cmp); err != nil {
		return err
	}

	fmt.Printf("run id: %s\n\n", runID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tENGINE\tCONTROL")
	fmt.Fprintf(w, "samples\t%d\t%d\n", len(engRes.Trace), len(ctlRes.Trace))
	fmt.Fprintf(w, "mean step\t%.3gs\t%.3gs\n", cmp.EngineMeanStep, cmp.ControlMeanStep)
	fmt.Fprintf(w, "mean |Δ| per step\t%.6f\t%.6f\n", cmp.EngineReg, cmp.ControlReg)
	w.Flush()

	fmt.Printf("\ncpu ratio: %.3f (limit 2.0)\n", cmp.CPURatio)
	fmt.Printf("regulation gain: %.3f (target >= 0.25)\n", cmp.RegulationGain)
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"spiralsim/internal/config"
	"spiralsim/internal/export"
	"spiralsim/internal/gate"
	"spiralsim/internal/kuramoto"
	"spiralsim/internal/metrics"
	"spiralsim/internal/store"
)

var evidenceFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "run the full validation pipeline and write report.json",
	Long: `validate runs the simulation, the matched Kuramoto control, the seven
metric criteria and the five-layer gate, then stores report.json with
the run. The exit code follows the overall gate status alone: failing
metrics degrade the metrics layer, but only overall_status=fail makes
the command exit non-zero.`,
	RunE: runValidate,
}

func init() {
	addRunFlags(validateCmd)
	validateCmd.Flags().StringVar(&evidenceFile, "evidence", "", "unit-test evidence file (default <base>/evidence.json)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("validating %s scenario (n=%d, seed=%d)...\n", cfg.Scenario.Name, cfg.N, cfg.Seed)

	cmp, engRes, _, err := kuramoto.Compare(context.Background(), cfg)
	if err != nil {
		return err
	}

	scores := metrics.Evaluate(engRes, cfg, &metrics.Comparison{ControlMeanStep: cmp.ControlMeanStep})

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

	evPath := evidenceFile
	if evPath == "" {
		evPath = filepath.Join(st.Base(), "evidence.json")
	}
	ev, err := gate.LoadEvidence(evPath)
	if err != nil {
		return err
	}

	golden, err := st.LoadGolden()
	if err != nil {
		return err
	}

	goldenHash := ""
	var figureDiff *float64
	if goldenApplies(golden, cfg) {
		goldenHash = golden.TraceHash

		refPNG := filepath.Join(st.Base(), "golden.png")
		if _, statErr := os.Stat(refPNG); statErr == nil {
			runPNG := filepath.Join(st.RunDir(runID), "figure.png")
			if err := export.WritePNG(runPNG, export.RenderPNG(engRes.Trace)); err != nil {
				return err
			}
			diff, err := export.DiffPNG(runPNG, refPNG)
			if err != nil {
				return err
			}
			figureDiff = &diff
		}
	} else if golden != nil {
		logger.Debug("golden fingerprint recorded for a different configuration, skipping determinism layer",
			zap.String("golden_run", golden.RunID))
	}

	rep := gate.Run(gate.Inputs{
		RunID:      runID,
		Evidence:   ev,
		TraceHash:  engRes.Trace.Hash(),
		GoldenHash: goldenHash,
		Scores:     scores,
		Comparison: cmp,
		FigureDiff: figureDiff,
	})

	if err := st.SaveReport(context.Background(), runID, rep); err != nil {
		return err
	}

	fmt.Printf("run id: %s\n\nmetrics:\n", runID)
	printScores(scores)
	fmt.Println("\nvalidation layers:")
	printLayers(rep)

	if rep.OverallStatus == gate.StatusFail {
		return fmt.Errorf("validation failed: overall status fail (score %.2f)", rep.OverallScore)
	}
	return nil
}

// goldenApplies reports whether the golden fingerprint was recorded for
// this run configuration. Hashes from different configurations differ
// trivially and say nothing about determinism.
func goldenApplies(g *store.Golden, cfg *config.Config) bool {
	if g == nil || g.Config == nil {
		return false
	}
	gc := g.Config
	return gc.N == cfg.N &&
		gc.Dt == cfg.Dt &&
		gc.Duration == cfg.Duration &&
		gc.Seed == cfg.Seed &&
		gc.Mode == cfg.Mode &&
		gc.Scenario.Name == cfg.Scenario.Name
}

func printLayers(rep *gate.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LAYER\tNAME\tSTATUS\tSCORE\tDETAILS")
	for _, l := range rep.Layers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%s\n", l.ID, l.Name, l.Status, l.Score, l.Details)
	}
	w.Flush()
	fmt.Printf("\noverall: %s (score %.2f)\n", rep.OverallStatus, rep.OverallScore)
}

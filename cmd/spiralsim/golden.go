package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"spiralsim/internal/config"
	"spiralsim/internal/engine"
	"spiralsim/internal/export"
	"spiralsim/internal/store"
)

var goldenCmd = &cobra.Command{
	Use:   "golden",
	Short: "manage the golden run fingerprint",
}

var goldenRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "run the golden configuration and pin its hashes",
	RunE:  runGoldenRecord,
}

var goldenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "print the pinned fingerprint",
	RunE:  runGoldenShow,
}

var goldenVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "re-run the golden configuration and check the hashes",
	RunE:  runGoldenVerify,
}

func init() {
	goldenCmd.AddCommand(goldenRecordCmd, goldenShowCmd, goldenVerifyCmd)
}

func runGoldenRecord(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset("golden")
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("recording golden run (n=%d, dt=%.2f, duration=%.0fs, seed=%d)...\n",
		cfg.N, cfg.Dt, cfg.Duration, cfg.Seed)

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

	fig := export.Figure(res.Trace)
	g, err := st.RecordGolden(runID, res.Trace.Hash(), export.FigureHash(fig), cfg)
	if err != nil {
		return err
	}

	// Reference raster for the figure-fidelity layer.
	refPNG := filepath.Join(st.Base(), "golden.png")
	if err := export.WritePNG(refPNG, export.RenderPNG(res.Trace)); err != nil {
		return err
	}

	fmt.Printf("golden run pinned: %s\n", g.RunID)
	fmt.Printf("samples: %d\n", len(res.Trace))
	fmt.Printf("trace hash: %s\n", g.TraceHash)
	fmt.Printf("figure hash: %s\n", g.FigureHash)
	return nil
}

func runGoldenShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	g, err := st.LoadGolden()
	if err != nil {
		return err
	}
	if g == nil {
		fmt.Println("no golden run recorded")
		return nil
	}

	fmt.Printf("run id: %s\n", g.RunID)
	fmt.Printf("recorded at: %s\n", g.RecordedAt)
	fmt.Printf("trace hash: %s\n", g.TraceHash)
	fmt.Printf("figure hash: %s\n", g.FigureHash)
	if g.Config != nil {
		fmt.Printf("config: n=%d dt=%.2f duration=%.0fs seed=%d scenario=%s mode=%s\n",
			g.Config.N, g.Config.Dt, g.Config.Duration, g.Config.Seed,
			g.Config.Scenario.Name, g.Config.Mode)
	}
	return nil
}

func runGoldenVerify(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	g, err := st.LoadGolden()
	if err != nil {
		return err
	}
	if g == nil {
		return fmt.Errorf("no golden run recorded (run golden record first)")
	}
	if g.Config == nil {
		return fmt.Errorf("golden fingerprint carries no configuration")
	}

	eng, err := engine.New(g.Config.Clone())
	if err != nil {
		return err
	}

	fmt.Printf("re-running golden configuration (run %s)...\n", g.RunID)

	res, err := eng.Run(context.Background())
	if err != nil {
		return err
	}

	hash := res.Trace.Hash()
	if !g.Matches(hash) {
		return fmt.Errorf("trace hash mismatch: got %s, want %s", hash, g.TraceHash)
	}

	figHash := export.FigureHash(export.Figure(res.Trace))
	if figHash != g.FigureHash {
		return fmt.Errorf("figure hash mismatch: got %s, want %s", figHash, g.FigureHash)
	}

	fmt.Println("golden run verified: trace and figure hashes match")
	return nil
}

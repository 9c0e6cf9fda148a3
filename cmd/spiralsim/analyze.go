package main

import (
	"context"
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"spiralsim/internal/analysis"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [run_id]",
	Short: "frequency analysis of the composite signal",
	Args:  cobra.ExactArgs(1),
	RunE:  analyzeRun,
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.Get(context.Background(), runID)
	if err != nil {
		return err
	}

	tr, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	signal := tr.Signal()
	if len(signal) < 4 {
		return fmt.Errorf("trace too short to analyze")
	}

	freqs, power := analysis.Spectrum(signal, rec.Dt)

	fmt.Printf("frequency analysis: %s\n", runID)
	fmt.Printf("scenario: %s, %d samples at dt=%.3f\n\n", rec.Scenario, len(signal), rec.Dt)

	// The interesting structure sits in the low quarter of the band.
	plotData := power
	if len(power) >= 8 {
		plotData = power[:len(power)/4]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("amplitude spectrum of S(t)"),
	)
	fmt.Println(graph)
	fmt.Println()

	if len(freqs) > 1 {
		fmt.Printf("resolution: %.4f hz/bin\n", freqs[1]-freqs[0])
	}

	dom := analysis.DominantFrequency(signal, rec.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", dom)
	if dom > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/dom)
	}

	return nil
}

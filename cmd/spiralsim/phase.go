package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"spiralsim/internal/analysis"
)

var phaseCmd = &cobra.Command{
	Use:   "phase [run_id]",
	Short: "phase portrait of the composite signal",
	Args:  cobra.ExactArgs(1),
	RunE:  phasePlot,
}

func phasePlot(cmd *cobra.Command, args []string) error {
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

	portrait := analysis.SignalPortrait(tr.Signal(), rec.Dt)
	if portrait == nil {
		return fmt.Errorf("trace too short for a phase portrait")
	}

	fmt.Printf("phase portrait: %s\n", runID)
	fmt.Printf("S on x, dS/dt on y, %d points\n\n", len(portrait.Points))
	fmt.Print(analysis.PortraitToASCII(portrait, 70, 20))
	return nil
}

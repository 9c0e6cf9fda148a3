package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"spiralsim/internal/gate"
)

var showCmd = &cobra.Command{
	Use:   "show [run_id]",
	Short: "print run metadata and report summary",
	Args:  cobra.ExactArgs(1),
	RunE:  showRun,
}

func showRun(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("run: %s\n", rec.ID)
	fmt.Printf("created: %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("scenario: %s (%s mode)\n", rec.Scenario, rec.Mode)
	fmt.Printf("n=%d duration=%.1fs dt=%.3f seed=%d\n", rec.N, rec.Duration, rec.Dt, rec.Seed)
	fmt.Printf("samples: %d\n", rec.Samples)
	fmt.Printf("trace hash: %s\n", rec.TraceHash)
	fmt.Printf("status: %s\n", rec.Status)

	rep, err := loadReport(st.RunDir(runID))
	if err != nil {
		return err
	}
	if rep == nil {
		fmt.Println("\nno validation report recorded")
		return nil
	}

	fmt.Println("\nvalidation layers:")
	printLayers(rep)
	return nil
}

// loadReport reads report.json from a run directory. A run that was
// never validated has no report, which is not an error.
func loadReport(dir string) (*gate.Report, error) {
	data, err := os.ReadFile(filepath.Join(dir, "report.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	var rep gate.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &rep, nil
}

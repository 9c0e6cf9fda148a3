package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list stored runs",
	RunE:  listRuns,
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List(context.Background())
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tSCENARIO\tMODE\tN\tDURATION\tDT\tSEED\tSAMPLES\tSTATUS\tSCORE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.1fs\t%.3f\t%d\t%d\t%s\t%.2f\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Scenario,
			run.Mode,
			run.N,
			run.Duration,
			run.Dt,
			run.Seed,
			run.Samples,
			run.Status,
			run.Score,
		)
	}

	return w.Flush()
}

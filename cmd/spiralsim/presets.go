package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"spiralsim/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "list preset configurations",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PRESET\tN\tDT\tDURATION\tSEED\tSCENARIO\tMODE")
		for _, name := range config.ListPresets() {
			cfg := config.GetPreset(name)
			fmt.Fprintf(w, "%s\t%d\t%.2f\t%.0fs\t%d\t%s\t%s\n",
				name, cfg.N, cfg.Dt, cfg.Duration, cfg.Seed, cfg.Scenario.Name, cfg.Mode)
		}
		return w.Flush()
	},
}

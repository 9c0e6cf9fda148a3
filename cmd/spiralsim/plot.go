package main

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var plotSeries string

var plotCmd = &cobra.Command{
	Use:   "plot [run_id]",
	Short: "plot a stored trace",
	Args:  cobra.ExactArgs(1),
	RunE:  plotRun,
}

func init() {
	plotCmd.Flags().StringVar(&plotSeries, "series", "s", "series to plot, comma separated (s, c, r)")
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tr, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(tr) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("samples: %d\n\n", len(tr))

	for _, name := range strings.Split(plotSeries, ",") {
		var data []float64
		var caption string
		switch strings.TrimSpace(name) {
		case "s":
			data, caption = tr.Signal(), "S(t) composite signal"
		case "c":
			data, caption = tr.Coherence(), "C(t) spiral coherence"
		case "r":
			data, caption = tr.Ratio(), "r(t) spiral ratio"
		default:
			return fmt.Errorf("unknown series: %s (want s, c or r)", name)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

package main

import (
	"github.com/spf13/cobra"

	"spiralsim/internal/engine"
	"spiralsim/internal/viz"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "run a simulation with live visualization",
	RunE:  runLive,
}

func init() {
	addRunFlags(liveCmd)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}

	return viz.Run(eng)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"spiralsim/internal/config"
	"spiralsim/internal/logging"
	"spiralsim/internal/store"
)

// Root flags shared by every command.
var (
	baseDir    string
	logLevel   string
	configFile string

	// Logger
	logger = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "spiralsim",
	Short: "spiral oscillator simulation and validation engine",
	Long: `spiralsim simulates a multi-strate oscillator field whose composite
signal is shaped by sigmoid amplitude gates, coupled frequency
modulation, and a golden-ratio spiral target, then validates each run
against seven reproducibility criteria and a Kuramoto control model.

Runs, reports, and golden fingerprints live under the base directory
(default .spiralsim).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(logLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&baseDir, "base", store.DefaultBase, "base directory for runs and golden artifacts")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "zap level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	rootCmd.AddCommand(runCmd, validateCmd, compareCmd, goldenCmd, listCmd, showCmd,
		plotCmd, phaseCmd, analyzeCmd, lyapunovCmd, bifurcationCmd, exportCmd,
		schemaCmd, liveCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore opens the run store under the base directory.
func openStore() (*store.Store, error) {
	st, err := store.Open(baseDir)
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", baseDir, err)
	}
	return st, nil
}

// loadRunConfig assembles the run configuration in precedence order:
// preset, then config file, then explicit flags. Finalization (seeded
// parameter generation and validation) happens later in engine.New so
// the seed override always governs generated arrays.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("n") {
		cfg.N = numStrates
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("duration") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("scenario") {
		cfg.Scenario.Name = scenarioName
	}
	if extended {
		cfg.Mode = config.ModeExtended
	}

	logger.Debug("run config assembled",
		zap.Int("n", cfg.N),
		zap.Float64("dt", cfg.Dt),
		zap.Float64("duration", cfg.Duration),
		zap.Int64("seed", cfg.Seed),
		zap.String("mode", cfg.Mode),
		zap.String("scenario", cfg.Scenario.Name))

	return cfg, nil
}

package config

import (
	"sort"

	"spiralsim/internal/scenario"
)

// presets are built lazily from Default so every preset carries the
// full threshold and spiral blocks.
var presets = map[string]func() *Config{
	"default": Default,
	"golden": func() *Config {
		cfg := Default()
		cfg.N = 5
		cfg.Dt = 0.1
		cfg.Duration = 20.0
		cfg.Seed = 42
		return cfg
	},
	"shock": func() *Config {
		cfg := Default()
		cfg.Scenario = ScenarioConfig{Name: scenario.Step, Value: DefaultInput, High: 1.0, At: cfg.Duration / 4}
		cfg.Perturbations = []Perturbation{
			{Time: cfg.Duration / 2, Magnitude: 1.5, Strate: -1},
		}
		return cfg
	},
	"ramp": func() *Config {
		cfg := Default()
		cfg.Scenario = ScenarioConfig{Name: scenario.Ramp}
		return cfg
	},
	"extended": func() *Config {
		cfg := Default()
		cfg.Mode = ModeExtended
		return cfg
	},
}

func GetPreset(name string) *Config {
	build, ok := presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

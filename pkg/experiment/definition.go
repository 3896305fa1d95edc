// Package experiment defines the manifest describing one forecasting
// experiment: where the series comes from, how it is windowed and split,
// and which models to score.
package experiment

import (
	"fmt"

	"github.com/spf13/viper"
)

// Definition is a complete experiment manifest.
type Definition struct {
	Name       string     `mapstructure:"name" json:"name"`
	Source     Source     `mapstructure:"source" json:"source"`
	Window     Window     `mapstructure:"window" json:"window"`
	Split      Split      `mapstructure:"split" json:"split"`
	Evaluation Evaluation `mapstructure:"evaluation" json:"evaluation"`
	Models     []Model    `mapstructure:"models" json:"models"`
}

// Source selects where the series comes from. Kind is "pendulum" or "csv".
// Target names the value column to forecast; empty means the sole column.
type Source struct {
	Kind     string    `mapstructure:"kind" json:"kind"`
	Target   string    `mapstructure:"target" json:"target,omitempty"`
	Pendulum Generator `mapstructure:"pendulum" json:"pendulum"`
	CSVPath  string    `mapstructure:"csv_path" json:"csvPath,omitempty"`
}

// Generator holds the damped pendulum generator parameters.
type Generator struct {
	Length           float64 `mapstructure:"length" json:"length"`
	NumPeriods       int     `mapstructure:"num_periods" json:"numPeriods"`
	SamplesPerPeriod int     `mapstructure:"samples_per_period" json:"samplesPerPeriod"`
	InitialAngle     float64 `mapstructure:"initial_angle" json:"initialAngle"`
	Beta             float64 `mapstructure:"beta" json:"beta"`
}

// Window sets the history/horizon windowing.
type Window struct {
	HistoryLength int `mapstructure:"history_length" json:"historyLength"`
	Horizon       int `mapstructure:"horizon" json:"horizon"`
}

// Split sets the train/validation/test partition.
type Split struct {
	TestFraction float64 `mapstructure:"test_fraction" json:"testFraction"`
	ValFraction  float64 `mapstructure:"val_fraction" json:"valFraction"`
	Seed         int64   `mapstructure:"seed" json:"seed"`
}

// Evaluation sets which horizon step reports score.
type Evaluation struct {
	Step int `mapstructure:"step" json:"step"`
}

// Model names one forecaster to benchmark. Span only applies to "ema";
// zero selects the model default.
type Model struct {
	Name string `mapstructure:"name" json:"name"`
	Span int    `mapstructure:"span" json:"span,omitempty"`
}

// Load reads a manifest from a YAML file, applying built-in defaults and
// environment variable overrides (prefix OSCILLAB).
func Load(path string) (*Definition, error) {
	v := viper.New()

	v.SetConfigFile(path)

	setDefaults(v)

	v.SetEnvPrefix("OSCILLAB")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var def Definition
	if err := v.Unmarshal(&def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &def, nil
}

// setDefaults mirrors the reference pendulum experiment: a 100 m pendulum
// sampled over 10 periods at 400 samples each, one-step-ahead windows, and
// a 30/10 test/validation split.
func setDefaults(v *viper.Viper) {
	v.SetDefault("source.kind", "pendulum")
	v.SetDefault("source.pendulum.length", 100.0)
	v.SetDefault("source.pendulum.num_periods", 10)
	v.SetDefault("source.pendulum.samples_per_period", 400)
	v.SetDefault("source.pendulum.initial_angle", 1.0)
	v.SetDefault("source.pendulum.beta", 0.001)

	v.SetDefault("window.history_length", 100)
	v.SetDefault("window.horizon", 1)

	v.SetDefault("split.test_fraction", 0.3)
	v.SetDefault("split.val_fraction", 0.1)
	v.SetDefault("split.seed", 42)

	v.SetDefault("evaluation.step", 0)
}

// Validate checks that the manifest is internally consistent.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}

	switch d.Source.Kind {
	case "pendulum":
		p := d.Source.Pendulum
		if p.Length <= 0 {
			return fmt.Errorf("source.pendulum.length must be positive")
		}
		if p.NumPeriods <= 0 {
			return fmt.Errorf("source.pendulum.num_periods must be positive")
		}
		if p.SamplesPerPeriod <= 0 {
			return fmt.Errorf("source.pendulum.samples_per_period must be positive")
		}
		if p.InitialAngle <= 0 {
			return fmt.Errorf("source.pendulum.initial_angle must be positive")
		}
		if p.Beta < 0 {
			return fmt.Errorf("source.pendulum.beta must be non-negative")
		}
	case "csv":
		if d.Source.CSVPath == "" {
			return fmt.Errorf("source.csv_path is required for csv sources")
		}
	default:
		return fmt.Errorf("source.kind must be pendulum or csv, got %q", d.Source.Kind)
	}

	if d.Window.HistoryLength < 1 {
		return fmt.Errorf("window.history_length must be at least 1")
	}
	if d.Window.Horizon < 1 {
		return fmt.Errorf("window.horizon must be at least 1")
	}

	if d.Split.TestFraction < 0 || d.Split.TestFraction >= 1 {
		return fmt.Errorf("split.test_fraction must be in [0, 1)")
	}
	if d.Split.ValFraction < 0 || d.Split.ValFraction >= 1 {
		return fmt.Errorf("split.val_fraction must be in [0, 1)")
	}

	if d.Evaluation.Step < 0 || d.Evaluation.Step >= d.Window.Horizon {
		return fmt.Errorf("evaluation.step must be in [0, %d)", d.Window.Horizon)
	}

	if len(d.Models) == 0 {
		return fmt.Errorf("at least one model is required")
	}
	for i, m := range d.Models {
		if m.Name == "" {
			return fmt.Errorf("models[%d].name is required", i)
		}
		if m.Span < 0 {
			return fmt.Errorf("models[%d].span must be non-negative", i)
		}
	}

	return nil
}

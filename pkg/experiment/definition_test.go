package experiment

import (
	"os"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp(t.TempDir(), "manifest-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

func TestLoadAndValidate(t *testing.T) {
	content := `
name: "pendulum-baselines"

source:
  kind: pendulum
  pendulum:
    length: 200
    num_periods: 5
    samples_per_period: 100
    initial_angle: 1.0
    beta: 0.01

window:
  history_length: 100
  horizon: 5

split:
  test_fraction: 0.3
  val_fraction: 0.1
  seed: 42

evaluation:
  step: 0

models:
  - name: last_observation
  - name: ema
    span: 10
  - name: drift
`
	def, err := Load(writeManifest(t, content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if def.Name != "pendulum-baselines" {
		t.Errorf("Name = %q, want %q", def.Name, "pendulum-baselines")
	}
	if def.Source.Kind != "pendulum" {
		t.Errorf("Source.Kind = %q, want pendulum", def.Source.Kind)
	}
	if def.Source.Pendulum.Length != 200 {
		t.Errorf("Pendulum.Length = %v, want 200", def.Source.Pendulum.Length)
	}
	if def.Window.HistoryLength != 100 || def.Window.Horizon != 5 {
		t.Errorf("Window = %+v, want history 100, horizon 5", def.Window)
	}
	if len(def.Models) != 3 {
		t.Fatalf("len(Models) = %d, want 3", len(def.Models))
	}
	if def.Models[1].Name != "ema" || def.Models[1].Span != 10 {
		t.Errorf("Models[1] = %+v, want ema with span 10", def.Models[1])
	}

	if err := def.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	content := `
name: "defaults-only"
models:
  - name: last_observation
`
	def, err := Load(writeManifest(t, content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if def.Source.Kind != "pendulum" {
		t.Errorf("default Source.Kind = %q, want pendulum", def.Source.Kind)
	}
	if def.Source.Pendulum.Length != 100 {
		t.Errorf("default Pendulum.Length = %v, want 100", def.Source.Pendulum.Length)
	}
	if def.Source.Pendulum.SamplesPerPeriod != 400 {
		t.Errorf("default SamplesPerPeriod = %d, want 400", def.Source.Pendulum.SamplesPerPeriod)
	}
	if def.Window.HistoryLength != 100 {
		t.Errorf("default HistoryLength = %d, want 100", def.Window.HistoryLength)
	}
	if def.Window.Horizon != 1 {
		t.Errorf("default Horizon = %d, want 1", def.Window.Horizon)
	}
	if def.Split.TestFraction != 0.3 {
		t.Errorf("default TestFraction = %v, want 0.3", def.Split.TestFraction)
	}
	if def.Split.Seed != 42 {
		t.Errorf("default Seed = %v, want 42", def.Split.Seed)
	}

	if err := def.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/manifest.yaml"); err == nil {
		t.Error("Load of a missing file expected error, got nil")
	}
}

func validDefinition() *Definition {
	return &Definition{
		Name: "valid",
		Source: Source{
			Kind: "pendulum",
			Pendulum: Generator{
				Length:           100,
				NumPeriods:       10,
				SamplesPerPeriod: 400,
				InitialAngle:     1,
				Beta:             0.001,
			},
		},
		Window:     Window{HistoryLength: 100, Horizon: 1},
		Split:      Split{TestFraction: 0.3, ValFraction: 0.1, Seed: 42},
		Evaluation: Evaluation{Step: 0},
		Models:     []Model{{Name: "last_observation"}},
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Definition)
		wantErr bool
	}{
		{
			name:   "valid definition",
			mutate: func(d *Definition) {},
		},
		{
			name:    "missing name",
			mutate:  func(d *Definition) { d.Name = "" },
			wantErr: true,
		},
		{
			name:    "unknown source kind",
			mutate:  func(d *Definition) { d.Source.Kind = "sql" },
			wantErr: true,
		},
		{
			name:    "csv without path",
			mutate:  func(d *Definition) { d.Source.Kind = "csv"; d.Source.CSVPath = "" },
			wantErr: true,
		},
		{
			name:   "csv with path",
			mutate: func(d *Definition) { d.Source.Kind = "csv"; d.Source.CSVPath = "series.csv" },
		},
		{
			name:    "zero pendulum length",
			mutate:  func(d *Definition) { d.Source.Pendulum.Length = 0 },
			wantErr: true,
		},
		{
			name:    "negative beta",
			mutate:  func(d *Definition) { d.Source.Pendulum.Beta = -0.1 },
			wantErr: true,
		},
		{
			name:   "zero beta is undamped",
			mutate: func(d *Definition) { d.Source.Pendulum.Beta = 0 },
		},
		{
			name:    "zero history length",
			mutate:  func(d *Definition) { d.Window.HistoryLength = 0 },
			wantErr: true,
		},
		{
			name:    "zero horizon",
			mutate:  func(d *Definition) { d.Window.Horizon = 0 },
			wantErr: true,
		},
		{
			name:    "test fraction of one",
			mutate:  func(d *Definition) { d.Split.TestFraction = 1 },
			wantErr: true,
		},
		{
			name:    "negative val fraction",
			mutate:  func(d *Definition) { d.Split.ValFraction = -0.2 },
			wantErr: true,
		},
		{
			name:    "step outside horizon",
			mutate:  func(d *Definition) { d.Evaluation.Step = 1 },
			wantErr: true,
		},
		{
			name:    "no models",
			mutate:  func(d *Definition) { d.Models = nil },
			wantErr: true,
		},
		{
			name:    "model without name",
			mutate:  func(d *Definition) { d.Models = []Model{{Span: 5}} },
			wantErr: true,
		},
		{
			name:    "negative span",
			mutate:  func(d *Definition) { d.Models = []Model{{Name: "ema", Span: -1}} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDefinition()
			tt.mutate(def)

			err := def.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

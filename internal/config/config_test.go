package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Sirikiddo/RandClusterModel/internal/config"
)

func TestDefaultConfigValidates(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	if cfg.Deployment.Rho != 1 {
		t.Errorf("Deployment.Rho = %v, want 1", cfg.Deployment.Rho)
	}
	if cfg.Channel.ProbabilityFuncType != 2 {
		t.Errorf("Channel.ProbabilityFuncType = %d, want 2", cfg.Channel.ProbabilityFuncType)
	}
	if cfg.Run.Protocol != 1 {
		t.Errorf("Run.Protocol = %d, want 1", cfg.Run.Protocol)
	}

	if err := config.Validate(cfg); err != nil {
		t.Errorf("DefaultConfig() failed validation: %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	t.Parallel()

	yamlContent := `
deployment:
  seed: 7
  rho: 2.5
channel:
  f_val: 80
run:
  protocol: 0
  max_time: 60
log:
  level: "debug"
  format: "text"
`
	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Deployment.Seed != 7 {
		t.Errorf("Deployment.Seed = %d, want 7", cfg.Deployment.Seed)
	}
	if cfg.Deployment.Rho != 2.5 {
		t.Errorf("Deployment.Rho = %v, want 2.5", cfg.Deployment.Rho)
	}
	if cfg.Channel.FVal != 80 {
		t.Errorf("Channel.FVal = %v, want 80", cfg.Channel.FVal)
	}
	if cfg.Run.Protocol != 0 {
		t.Errorf("Run.Protocol = %d, want 0", cfg.Run.Protocol)
	}
	if cfg.Run.MaxTime != 60 {
		t.Errorf("Run.MaxTime = %v, want 60", cfg.Run.MaxTime)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "text")
	}

	// Untouched fields should still inherit the defaults.
	if cfg.Deployment.PointGenType != 3 {
		t.Errorf("Deployment.PointGenType = %d, want default 3", cfg.Deployment.PointGenType)
	}
	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("Metrics.Addr = %q, want default %q", cfg.Metrics.Addr, ":9100")
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	t.Parallel()

	yamlContent := `
deployment:
  seed: 99
log:
  level: "warn"
`
	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Deployment.Seed != 99 {
		t.Errorf("Deployment.Seed = %d, want 99", cfg.Deployment.Seed)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}

	if cfg.Channel.FVal != 40 {
		t.Errorf("Channel.FVal = %v, want default 40", cfg.Channel.FVal)
	}
	if cfg.Run.MaxTime != 30 {
		t.Errorf("Run.MaxTime = %v, want default 30", cfg.Run.MaxTime)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want default %q", cfg.Log.Format, "json")
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	want := config.DefaultConfig()
	if cfg.Deployment != want.Deployment {
		t.Errorf("Deployment = %+v, want %+v", cfg.Deployment, want.Deployment)
	}
	if cfg.Run != want.Run {
		t.Errorf("Run = %+v, want %+v", cfg.Run, want.Run)
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/path/cascadesim.yml")
	if err == nil {
		t.Fatal("Load() returned nil error for nonexistent file")
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr error
	}{
		{
			name:    "non-positive rho",
			modify:  func(cfg *config.Config) { cfg.Deployment.Rho = 0 },
			wantErr: config.ErrInvalidRho,
		},
		{
			name:    "zero width",
			modify:  func(cfg *config.Config) { cfg.Deployment.Size[0] = 0 },
			wantErr: config.ErrInvalidSize,
		},
		{
			name:    "margin out of range",
			modify:  func(cfg *config.Config) { cfg.Deployment.Margin = 0.9 },
			wantErr: config.ErrInvalidMargin,
		},
		{
			name:    "unknown point gen type",
			modify:  func(cfg *config.Config) { cfg.Deployment.PointGenType = 7 },
			wantErr: config.ErrUnknownPointGenType,
		},
		{
			name:    "reliability out of range",
			modify:  func(cfg *config.Config) { cfg.Channel.Reliability = 1.5 },
			wantErr: config.ErrInvalidReliability,
		},
		{
			name:    "unknown probability func type",
			modify:  func(cfg *config.Config) { cfg.Channel.ProbabilityFuncType = 9 },
			wantErr: config.ErrUnknownProbabilityFuncType,
		},
		{
			name:    "unknown protocol",
			modify:  func(cfg *config.Config) { cfg.Run.Protocol = 5 },
			wantErr: config.ErrUnknownProtocol,
		},
		{
			name:    "non-positive max time",
			modify:  func(cfg *config.Config) { cfg.Run.MaxTime = -1 },
			wantErr: config.ErrInvalidMaxTime,
		},
		{
			name:    "empty metrics addr",
			modify:  func(cfg *config.Config) { cfg.Metrics.Addr = "" },
			wantErr: config.ErrEmptyMetricsAddr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.modify(cfg)

			err := config.Validate(cfg)
			if err == nil {
				t.Fatal("Validate() returned nil, want error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	// Environment variable tests cannot be parallel because they modify
	// process-wide state (os.Setenv).

	yamlContent := `
deployment:
  seed: 1
log:
  level: "info"
`
	path := writeTemp(t, yamlContent)

	t.Setenv("CASCADESIM_DEPLOYMENT_SEED", "123")
	t.Setenv("CASCADESIM_LOG_LEVEL", "debug")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Deployment.Seed != 123 {
		t.Errorf("Deployment.Seed = %d, want 123 (from env)", cfg.Deployment.Seed)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q (from env)", cfg.Log.Level, "debug")
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "DEBUG", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "unknown", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := config.ParseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// writeTemp creates a temporary YAML file and returns its path.
func writeTemp(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "cascadesim.yml")

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	return path
}

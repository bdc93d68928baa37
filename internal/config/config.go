// Package config manages cascadesim configuration using koanf/v2.
//
// Supports YAML files, environment variables, and CLI flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// -------------------------------------------------------------------------
// Configuration Structures
// -------------------------------------------------------------------------

// Config holds the complete cascadesim run configuration.
type Config struct {
	Deployment DeploymentConfig `koanf:"deployment"`
	Channel    ChannelConfig    `koanf:"channel"`
	Run        RunConfig        `koanf:"run"`
	Log        LogConfig        `koanf:"log"`
	Metrics    MetricsConfig    `koanf:"metrics"`
}

// DeploymentConfig describes the node placement (spec.md §6
// "Deployment settings").
type DeploymentConfig struct {
	// Seed is the deterministic PRNG seed for node placement and
	// protocol randomness.
	Seed uint64 `koanf:"seed"`

	// Size is [width, height] of the deployment rectangle.
	Size [2]float64 `koanf:"size"`

	// Center is the rectangle's center point.
	Center [2]float64 `koanf:"center"`

	// Rho is the node density, nodes per unit area.
	Rho float64 `koanf:"rho"`

	// PointGenType selects the placement strategy: 0=uniform,
	// 1=grid, 2=sobol, 3=halton.
	PointGenType int `koanf:"point_gen_type"`

	// Margin is the fraction of the rectangle's width, on each side,
	// used to seed the initial message holders and the delivery
	// targets.
	Margin float64 `koanf:"margin"`
}

// ChannelConfig describes the radio propagation model (spec.md §6
// "Physical / channel settings").
type ChannelConfig struct {
	// FVal is the frequency scalar f used by the reception
	// probability model.
	FVal float64 `koanf:"f_val"`

	// Reliability is the minimum reception probability for an edge to
	// be considered part of the communication graph.
	Reliability float64 `koanf:"reliability"`

	// ProbabilityFuncType selects the reception probability model:
	// 1=erf-based, 2=symbol-error-based.
	ProbabilityFuncType int `koanf:"probability_func_type"`
}

// RunConfig describes the simulation run itself (spec.md §6 "Run
// settings").
type RunConfig struct {
	// Protocol selects the MAC layer: 0=TDMA, 1=listen-before-transmit.
	Protocol int `koanf:"protocol"`

	// MaxTime bounds the simulation clock; the run ends once it is
	// exceeded even if delivery has not completed.
	MaxTime float64 `koanf:"max_time"`

	// LoadTest disables early termination on delivery, so the run
	// continues to MaxTime purely to gather channel statistics.
	LoadTest bool `koanf:"load_test"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	// Format is the log output format: "json" or "text".
	Format string `koanf:"format"`
}

// MetricsConfig holds the Prometheus metrics endpoint configuration.
type MetricsConfig struct {
	// Addr is the HTTP listen address for the metrics endpoint (e.g., ":9100").
	Addr string `koanf:"addr"`
	// Path is the URL path for the metrics endpoint (e.g., "/metrics").
	Path string `koanf:"path"`
}

// -------------------------------------------------------------------------
// Defaults
// -------------------------------------------------------------------------

// DefaultConfig returns a Config populated with the same parameters
// the reference deployment settings use.
func DefaultConfig() *Config {
	return &Config{
		Deployment: DeploymentConfig{
			Seed:         20,
			Size:         [2]float64{20, 20},
			Center:       [2]float64{0, 0},
			Rho:          1,
			PointGenType: 3,
			Margin:       0.1,
		},
		Channel: ChannelConfig{
			FVal:                40,
			Reliability:         0.05,
			ProbabilityFuncType: 2,
		},
		Run: RunConfig{
			Protocol: 1,
			MaxTime:  30,
			LoadTest: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Addr: ":9100",
			Path: "/metrics",
		},
	}
}

// -------------------------------------------------------------------------
// Loader
// -------------------------------------------------------------------------

// envPrefix is the environment variable prefix for cascadesim
// configuration. Variables are named CASCADESIM_<section>_<key>, e.g.,
// CASCADESIM_DEPLOYMENT_SEED.
const envPrefix = "CASCADESIM_"

// Load reads configuration from a YAML file at path, overlays
// environment variable overrides (CASCADESIM_ prefix), and merges on
// top of DefaultConfig(). Missing fields inherit defaults.
//
// Environment variable mapping:
//
//	CASCADESIM_DEPLOYMENT_SEED -> deployment.seed
//	CASCADESIM_CHANNEL_F_VAL   -> channel.f_val
//	CASCADESIM_RUN_PROTOCOL    -> run.protocol
//	CASCADESIM_LOG_LEVEL       -> log.level
//	CASCADESIM_METRICS_ADDR    -> metrics.addr
//
// Uses koanf/v2 with file + env providers and YAML parser.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config from %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config from %s: %w", path, err)
	}

	return cfg, nil
}

// envKeyMapper transforms CASCADESIM_DEPLOYMENT_SEED -> deployment.seed.
// Strips the CASCADESIM_ prefix, lowercases, and replaces the first _
// (the section separator) with ., so CASCADESIM_CHANNEL_F_VAL maps to
// channel.f_val.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.Replace(s, "_", ".", 1)
}

// loadDefaults marshals the default config into koanf as the base layer.
func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"deployment.seed":           defaults.Deployment.Seed,
		"deployment.size":           defaults.Deployment.Size,
		"deployment.center":         defaults.Deployment.Center,
		"deployment.rho":            defaults.Deployment.Rho,
		"deployment.point_gen_type": defaults.Deployment.PointGenType,
		"deployment.margin":         defaults.Deployment.Margin,

		"channel.f_val":                 defaults.Channel.FVal,
		"channel.reliability":           defaults.Channel.Reliability,
		"channel.probability_func_type": defaults.Channel.ProbabilityFuncType,

		"run.protocol":  defaults.Run.Protocol,
		"run.max_time":  defaults.Run.MaxTime,
		"run.load_test": defaults.Run.LoadTest,

		"log.level":  defaults.Log.Level,
		"log.format": defaults.Log.Format,

		"metrics.addr": defaults.Metrics.Addr,
		"metrics.path": defaults.Metrics.Path,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Validation
// -------------------------------------------------------------------------

// Validation errors.
var (
	// ErrInvalidRho indicates the node density is not positive.
	ErrInvalidRho = errors.New("deployment.rho must be > 0")

	// ErrInvalidSize indicates a deployment dimension is not positive.
	ErrInvalidSize = errors.New("deployment.size dimensions must be > 0")

	// ErrInvalidMargin indicates the message/target margin is out of
	// range.
	ErrInvalidMargin = errors.New("deployment.margin must be in [0, 0.5]")

	// ErrUnknownPointGenType indicates an unrecognized point
	// generator code.
	ErrUnknownPointGenType = errors.New("deployment.point_gen_type must be 0, 1, 2, or 3")

	// ErrInvalidReliability indicates the reliability threshold is
	// out of range.
	ErrInvalidReliability = errors.New("channel.reliability must be in (0, 1)")

	// ErrUnknownProbabilityFuncType indicates an unrecognized
	// reception probability model code.
	ErrUnknownProbabilityFuncType = errors.New("channel.probability_func_type must be 1 or 2")

	// ErrUnknownProtocol indicates an unrecognized MAC protocol code.
	ErrUnknownProtocol = errors.New("run.protocol must be 0 or 1")

	// ErrInvalidMaxTime indicates the run's time budget is not
	// positive.
	ErrInvalidMaxTime = errors.New("run.max_time must be > 0")

	// ErrEmptyMetricsAddr indicates the metrics listen address is
	// empty.
	ErrEmptyMetricsAddr = errors.New("metrics.addr must not be empty")
)

// Validate checks the configuration for logical errors. Returns the
// first validation error encountered, so an unknown probabilityFuncType
// or protocol code fails fast at construction rather than surfacing as
// a confusing zero-value downstream.
func Validate(cfg *Config) error {
	if cfg.Deployment.Rho <= 0 {
		return ErrInvalidRho
	}
	if cfg.Deployment.Size[0] <= 0 || cfg.Deployment.Size[1] <= 0 {
		return ErrInvalidSize
	}
	if cfg.Deployment.Margin < 0 || cfg.Deployment.Margin > 0.5 {
		return ErrInvalidMargin
	}
	if cfg.Deployment.PointGenType < 0 || cfg.Deployment.PointGenType > 3 {
		return ErrUnknownPointGenType
	}

	if cfg.Channel.Reliability <= 0 || cfg.Channel.Reliability >= 1 {
		return ErrInvalidReliability
	}
	if cfg.Channel.ProbabilityFuncType != 1 && cfg.Channel.ProbabilityFuncType != 2 {
		return ErrUnknownProbabilityFuncType
	}

	if cfg.Run.Protocol != 0 && cfg.Run.Protocol != 1 {
		return ErrUnknownProtocol
	}
	if cfg.Run.MaxTime <= 0 {
		return ErrInvalidMaxTime
	}

	if cfg.Metrics.Addr == "" {
		return ErrEmptyMetricsAddr
	}

	return nil
}

// -------------------------------------------------------------------------
// Log Level Parsing
// -------------------------------------------------------------------------

// ParseLogLevel maps a configuration log level string to the corresponding
// slog.Level. Unknown values default to slog.LevelInfo.
//
// Recognized values: "debug", "info", "warn", "error" (case-insensitive).
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

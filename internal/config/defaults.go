package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/twinpass.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded
// defaults/twinpass.yaml.
func Default() Config {
	return Config{
		Sim: SimConfig{
			TickRate:      60,
			StepsPerFrame: 4,
			Autopilot:     true,
		},
		Scan: ScanConfig{
			RefreshHz:  60,
			ScrollStep: 1,
			Porch:      3,
			TickPeriod: time.Millisecond,
		},
		Bench: BenchConfig{
			Duration:    10 * time.Second,
			ReportEvery: time.Second,
			Record:      true,
		},
		Serve: ServeConfig{
			SSHAddr:     ":23235",
			HTTPAddr:    ":8089",
			IdleTimeout: 30 * time.Minute,
		},
		Storage: StorageConfig{
			DBPath: "~/.twinpass/bench.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

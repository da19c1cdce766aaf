// Package config provides YAML-based configuration loading for twinpass.
package config

import "time"

// Config is the full configuration file.
type Config struct {
	Sim     SimConfig     `yaml:"sim"`
	Scan    ScanConfig    `yaml:"scan"`
	Bench   BenchConfig   `yaml:"bench"`
	Serve   ServeConfig   `yaml:"serve"`
	Storage StorageConfig `yaml:"storage"`
}

// SimConfig controls the simulation loop.
type SimConfig struct {
	TickRate      int   `yaml:"tick_rate"`       // frontend frames per second
	StepsPerFrame int   `yaml:"steps_per_frame"` // simulation ticks per frame
	Autopilot     bool  `yaml:"autopilot"`
	Seed          int64 `yaml:"seed"` // 0 = time-based
}

// ScanConfig controls the emulated panel and SysTick.
type ScanConfig struct {
	RefreshHz  int           `yaml:"refresh_hz"`
	ScrollStep int           `yaml:"scroll_step"`
	Porch      int           `yaml:"porch"`
	TickPeriod time.Duration `yaml:"tick_period"`
}

// BenchConfig controls headless benchmark runs.
type BenchConfig struct {
	Duration    time.Duration `yaml:"duration"`
	ReportEvery time.Duration `yaml:"report_every"`
	Record      bool          `yaml:"record"` // save the run to storage
}

// ServeConfig controls the SSH spectator server and diagnostics endpoint.
type ServeConfig struct {
	SSHAddr     string        `yaml:"ssh_addr"`
	HTTPAddr    string        `yaml:"http_addr"` // empty disables diagnostics
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// StorageConfig locates the benchmark history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

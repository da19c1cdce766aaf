package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search directories.
const FileName = "twinpass.yaml"

// Load reads the configuration.
// Search order: customPath -> ~/.twinpass/configs/twinpass.yaml -> ./configs/twinpass.yaml -> embedded default
//
// Files are decoded over Default, so a file only needs the keys it changes.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := Default()
		if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".twinpass", "configs", filename)
}

// Validate reports every out-of-range setting.
func (c Config) Validate() error {
	var errs []error
	if c.Sim.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("sim.tick_rate must be positive, got %d", c.Sim.TickRate))
	}
	if c.Sim.StepsPerFrame <= 0 {
		errs = append(errs, fmt.Errorf("sim.steps_per_frame must be positive, got %d", c.Sim.StepsPerFrame))
	}
	if c.Scan.RefreshHz < 0 {
		errs = append(errs, fmt.Errorf("scan.refresh_hz must not be negative, got %d", c.Scan.RefreshHz))
	}
	if c.Scan.Porch < 0 {
		errs = append(errs, fmt.Errorf("scan.porch must not be negative, got %d", c.Scan.Porch))
	}
	if c.Scan.TickPeriod <= 0 {
		errs = append(errs, fmt.Errorf("scan.tick_period must be positive, got %s", c.Scan.TickPeriod))
	}
	if c.Bench.Duration < 0 {
		errs = append(errs, fmt.Errorf("bench.duration must not be negative, got %s", c.Bench.Duration))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w", errors.Join(errs...))
}

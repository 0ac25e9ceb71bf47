package cli

import (
	"fmt"
	"os"

	"github.com/sdejongh/hashdiff/internal/platform"
	"github.com/sdejongh/hashdiff/pkg/config"
)

// validateComparePaths validates the two comparison roots
func validateComparePaths(pathA, pathB string) error {
	for _, path := range []string{pathA, pathB} {
		if err := platform.ValidatePath(path); err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		} else if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
	}

	return nil
}

// loadConfig loads configuration from file or returns the default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	if compareFlags.Algorithm != "" {
		cfg.Compare.Algorithm = compareFlags.Algorithm
	}

	if compareFlags.Workers > 0 {
		cfg.Performance.MaxWorkers = compareFlags.Workers
	} else if cfg.Performance.MaxWorkers == 0 {
		cfg.Performance.MaxWorkers = 5
	}

	if len(compareFlags.Exclude) > 0 {
		cfg.Exclude = compareFlags.Exclude
	}

	if compareFlags.Output != "" {
		cfg.Output.Format = compareFlags.Output
	}

	if compareFlags.NoProgress {
		cfg.Output.Progress = false
	}

	// Quiet suppresses the progress bar; verbose forces it back on
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}
	if globalFlags.Verbose {
		cfg.Output.Progress = true
	}
}

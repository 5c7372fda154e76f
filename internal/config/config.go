// Package config provides configuration loading for arbor.
//
// Configuration is optional: everything has a working default, a YAML
// file at ~/.config/arbor/config.yaml can override it, and ARBOR_*
// environment variables override the file. Only ambient behavior is
// configurable (diagnostics, colors, the dependency resolver); the
// worktree layout itself is fixed.
package config

import (
	"fmt"

	"github.com/arbolabs/arbor/internal/logging"
)

// Config holds the complete arbor configuration.
type Config struct {
	Logging  logging.Config `koanf:"logging"`
	Output   OutputConfig   `koanf:"output"`
	Resolver ResolverConfig `koanf:"resolver"`
}

// OutputConfig controls presentation of user-facing diagnostics.
type OutputConfig struct {
	Color bool `koanf:"color"`
}

// ResolverConfig selects the dependency resolver run inside new
// worktrees. The default matches the uv-managed backend template the
// worktrees serve.
type ResolverConfig struct {
	Bin  string   `koanf:"bin"`
	Args []string `koanf:"args"`
	// Timeout bounds one resolver run. Zero, the default, means no
	// limit: installs run as long as they need unless the user opts in.
	Timeout Duration `koanf:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: *logging.NewDefaultConfig(),
		Output: OutputConfig{
			Color: true,
		},
		Resolver: ResolverConfig{
			Bin:  "uv",
			Args: []string{"sync"},
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if c.Resolver.Bin == "" {
		return fmt.Errorf("resolver bin cannot be empty")
	}
	if c.Resolver.Timeout.Duration() < 0 {
		return fmt.Errorf("resolver timeout cannot be negative")
	}
	return nil
}

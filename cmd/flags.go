package cmd

import (
	"fmt"

	"github.com/rm-hull/frame-interpolator/internal/config"
	"github.com/spf13/cobra"
)

// ApplyFlags copies any flags set on the command line over cfg and verifies
// the result. Zero values given explicitly are rejected rather than replaced
// by defaults.
func ApplyFlags(c *cobra.Command, cfg *config.Config) error {
	flags := c.Flags()

	if flags.Changed("subdivisions") {
		cfg.Subdivisions, _ = flags.GetInt("subdivisions")
		if cfg.Subdivisions < 0 {
			return fmt.Errorf("--subdivisions must not be negative, got %d", cfg.Subdivisions)
		}
	}
	if flags.Changed("mode") {
		cfg.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("space") {
		cfg.Space, _ = flags.GetString("space")
	}
	if flags.Changed("easing") {
		cfg.Easing, _ = flags.GetString("easing")
	}
	if flags.Changed("fps") {
		cfg.FPS, _ = flags.GetInt("fps")
		if cfg.FPS < 1 {
			return fmt.Errorf("--fps must be at least 1, got %d", cfg.FPS)
		}
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-dir") {
		cfg.LogDir, _ = flags.GetString("log-dir")
	}
	if flags.Changed("port") {
		cfg.Server.Port, _ = flags.GetInt("port")
		if cfg.Server.Port < 1 {
			return fmt.Errorf("--port must be at least 1, got %d", cfg.Server.Port)
		}
	}

	return config.Verify(cfg)
}

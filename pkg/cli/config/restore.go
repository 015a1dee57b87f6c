package config

import "github.com/urfave/cli/v3"

// DefaultTarget is the conventional site output directory.
const DefaultTarget = "./public"

// Restore holds restore pipeline configuration
type Restore struct {
	Target     string
	ConfigPath string
}

// Flags returns CLI flags for restore configuration. The target
// default is applied after the optional config file so that a file
// value is not shadowed by it.
func (c *Restore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "target",
			Usage:       "Target directory to restore into (default: " + DefaultTarget + ")",
			Destination: &c.Target,
			Sources:     cli.EnvVars("PAGES_RESTORE_TARGET"),
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Optional TOML config file",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("PAGES_RESTORE_CONFIG"),
		},
	}
}

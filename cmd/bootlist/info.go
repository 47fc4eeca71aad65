package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Guliveer/bootlist/internal/config"
	"github.com/Guliveer/bootlist/internal/platform"
	"github.com/Guliveer/bootlist/internal/privilege"
)

// diagnostics is the payload of the info command.
type diagnostics struct {
	Version    string        `json:"version" yaml:"version"`
	Host       platform.Info `json:"host" yaml:"host"`
	Backend    string        `json:"backend" yaml:"backend"`
	Sources    []string      `json:"sources" yaml:"sources"`
	Elevated   bool          `json:"elevated" yaml:"elevated"`
	ConfigFile string        `json:"config_file" yaml:"config_file"`
}

func (c *cli) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show host, backend and privilege details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := c.platform.Info(cmd.Context())
			if err != nil {
				c.logger.Warn("Host details incomplete", zap.Error(err))
			}
			backend := c.app.Backend()
			d := diagnostics{
				Version:    version,
				Host:       host,
				Backend:    backend.Name(),
				Sources:    backend.Sources(),
				Elevated:   privilege.IsElevated(),
				ConfigFile: c.configFile(),
			}
			if f := c.format(); f != formatTable {
				return writeStructured(cmd.OutOrStdout(), f, d)
			}
			fmt.Fprintln(cmd.OutOrStdout(), kvTable([][2]string{
				{"version", d.Version},
				{"os", d.Host.OS},
				{"platform", strings.TrimSpace(d.Host.Platform + " " + d.Host.PlatformVersion)},
				{"kernel", d.Host.KernelVersion},
				{"hostname", d.Host.Hostname},
				{"sandboxed", boolString(d.Host.Sandboxed)},
				{"backend", d.Backend},
				{"sources", strings.Join(d.Sources, "\n")},
				{"elevated", boolString(d.Elevated)},
				{"config file", d.ConfigFile},
			}))
			return nil
		},
	}
}

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeStructured(cmd.OutOrStdout(), formatYAML, c.cfg)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to a file",
		Long: `Write the default configuration to [path], or to the per-user
configuration location when no path is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.UserConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			if !force && fileExists(path) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteConfig(config.DefaultConfig(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

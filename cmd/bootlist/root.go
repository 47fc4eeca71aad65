package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Guliveer/bootlist/internal/app"
	"github.com/Guliveer/bootlist/internal/autostart"
	"github.com/Guliveer/bootlist/internal/config"
	"github.com/Guliveer/bootlist/internal/platform"
	"github.com/Guliveer/bootlist/internal/services"
)

// cli carries flag values and the state built once flags are parsed.
type cli struct {
	configPath string
	logLevel   string
	output     string

	cfg      *config.Config
	logger   *zap.Logger
	platform platform.Platform
	app      *app.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "bootlist",
		Short: "Manage programs that start automatically at login",
		Long: `bootlist lists, enables, disables, creates and deletes startup entries:
desktop entries in the XDG autostart directory on Linux, and the Startup
folder plus the Run registry keys on Windows. It can also enable or disable
systemd unit files through systemctl.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "Path to configuration file (default: auto-discover)")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVarP(&c.output, "output", "o", string(formatTable), "Output format: table, json, yaml")

	root.AddCommand(
		c.listCmd(),
		c.toggleCmd("enable", true),
		c.toggleCmd("disable", false),
		c.createCmd(),
		c.deleteCmd(),
		c.servicesCmd(),
		c.infoCmd(),
		c.configCmd(),
		versionCmd(),
	)
	return root
}

// setup loads configuration and wires the backend, service bridge and
// platform into the command surface.
func (c *cli) setup(cmd *cobra.Command) error {
	if _, err := parseFormat(c.output); err != nil {
		return err
	}

	overrides := config.CLIOverrides{LogLevel: c.logLevel}
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadLayered(overrides, c.configPath)
	} else {
		cfg, err = config.LoadLayered(overrides)
	}
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	c.cfg = cfg

	c.logger = initLogger(cfg, cmd.ErrOrStderr())
	c.logger.Debug("Command started",
		zap.String("command", cmd.Name()),
		zap.String("version", version))

	c.platform = platform.New()
	backend := autostart.New(autostart.Options{
		AutostartDir: cfg.Autostart.Dir,
		StartupDir:   cfg.Autostart.StartupDir,
		ShowDisabled: cfg.Autostart.ShowDisabled,
	}, c.logger)
	svc := services.New(cfg.Services, c.logger, services.WithSandbox(c.platform.Sandboxed()))

	c.app = app.New(backend, svc, c.platform, app.Options{
		DetectRunning: cfg.Processes.Detect,
		ScanTimeout:   cfg.Processes.ScanTimeout.Duration,
	}, c.logger)
	return nil
}

func (c *cli) format() outputFormat {
	f, _ := parseFormat(c.output)
	return f
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bootlist %s\n", version)
		},
	}
}

// configFile reports the file the configuration was read from, if any.
func (c *cli) configFile() string {
	if c.configPath != "" {
		return c.configPath
	}
	return config.Locate()
}

func stdinIsTerminal() bool {
	return isTerminal(os.Stdin.Fd())
}

package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/stakpak/paks-og/internal/config"
	"github.com/stakpak/paks-og/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The persistent pre-run loads configuration (flags > PAKSOG_ env >
// config file > defaults) and rebuilds the logger from it; --verbose forces
// debug level.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "paks-og renders social preview images for Paks registry packages",
		Long:         `paks-og serves 1200x630 PNG preview cards for packages on the Paks registry, showing the package name, owner, description, visibility and download count.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.cfgFile, "config", "", "config file (default: paks-og.yaml, paks-og.yml or paks-og.toml in the working directory)")
	flags.String("log-format", "", "log output format: text, json or logfmt")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if c.verbose {
		level = log.DebugLevel
	}

	c.Config = cfg
	c.Logger = newLogger(c.logOut, level, cfg.Log.Format)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))

	if cfg.File != "" {
		c.Logger.Debug("loaded config", "file", cfg.File)
	}
	return nil
}

// addSourceFlags registers the flags shared by commands that render cards.
func addSourceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("registry-url", "", "Paks registry API base URL")
	f.String("cache", "", "response cache backend: none, file or redis")
	f.String("cache-dir", "", "directory for the file cache")
	f.String("redis-url", "", "Redis URL for the redis cache")
	f.String("fonts-dir", "", "directory holding <Family>-Regular.ttf and <Family>-Bold.ttf")
	f.Bool("embedded-font", false, "fall back to the built-in Go fonts when no other source works")
	f.String("backend", "", "raster backend: native or rsvg")
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/stakpak/paks-og/internal/server"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the preview image HTTP server",
		Long: `Run the HTTP server that answers GET /api/og/{owner}/{name}/png with a
1200x630 PNG preview card. GET /healthz reports liveness.

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			cfg := c.Config
			srv := server.NewServer(server.Config{
				Renderer:          runner,
				Addr:              cfg.Server.Addr,
				ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
				ShutdownTimeout:   cfg.Server.ShutdownTimeout,
				Logger:            c.Logger,
				Width:             cfg.Render.Width,
			})
			c.Logger.Info("configured",
				"registry", cfg.Registry.BaseURL,
				"cache", cfg.Cache.Backend,
				"fonts", cfg.Fonts.Family,
				"backend", cfg.Render.Backend)
			printInfo("Serving %s", StyleLink.Render("http://"+displayAddr(cfg.Server.Addr)+"/api/og/{owner}/{name}/png"))
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	addSourceFlags(cmd)
	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

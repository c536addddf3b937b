package cli

import (
	"github.com/spf13/cobra"

	"github.com/ramparte/amplifier-stories/internal/server"
)

// serveCommand runs the HTTP conversion service until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		theme   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP",
		Long: `Serve conversions over HTTP.

Endpoints:
  GET  /healthz      liveness and build info
  POST /v1/convert   HTML body in, artifact out (?format=pptx&title=...),
                     or a JSON request for several formats at once`,
		Example: `  html2pptx serve --addr :9000
  curl --data-binary @deck.html -o deck.pptx localhost:9000/v1/convert`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.Config()
			if err != nil {
				return err
			}
			defaults, err := c.baseOptions(cfg, theme)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srvCfg := server.Config{
				Addr:    cfg.Serve.Addr,
				MaxBody: cfg.Serve.MaxBody,
				Timeout: cfg.Serve.Timeout,
			}
			if addr != "" {
				srvCfg.Addr = addr
			}
			printInfo("Listening on %s", srvCfg.Addr)
			return server.New(runner, srvCfg, defaults, c.Logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&theme, "theme", "", "theme name or .toml path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dockpane/internal/api"
	"github.com/matzehuels/dockpane/pkg/buildinfo"
)

// serveCommand creates the HTTP layout server.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored layouts over HTTP",
		Long: `Serve stored layouts over HTTP.

Routes:
  GET    /health
  GET    /api/layouts/{name}        stored snapshot as JSON
  PUT    /api/layouts/{name}        verify and store a snapshot
  DELETE /api/layouts/{name}
  GET    /api/layouts/{name}/dot    dock tree in DOT
  GET    /api/layouts/{name}/svg    ?view=tree|wireframe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.API.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: api.addr from config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	layouts, st, err := c.openLayouts(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := api.NewServer(layouts,
		api.WithLogger(c.Logger),
		api.WithFrame(c.cfg.SplitterWidth, c.cfg.CaptionHeight),
	)
	c.Logger.Info("starting", "version", buildinfo.Short(), "store", c.backend())
	printInfo("Serving layouts from the %s store on %s", c.backend(), addr)
	return api.Serve(ctx, addr, srv, c.cfg.API.ShutdownTimeout, c.Logger)
}

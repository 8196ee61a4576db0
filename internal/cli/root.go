package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dockpane/internal/telemetry"
	"github.com/matzehuels/dockpane/pkg/config"
)

// setup runs before every command. It loads the configuration, attaches the
// logger to the command context and starts trace export when an OTLP
// endpoint is configured.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))

	p, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		c.Logger.Warn("tracing disabled", "err", err)
		return nil
	}
	if p != nil {
		p.Install()
		c.telemetry = p
		c.Logger.Debug("tracing enabled", "endpoint", cfg.Telemetry.OTLPEndpoint)
	}
	return nil
}

// teardown flushes pending spans.
func (c *CLI) teardown(ctx context.Context) error {
	if c.telemetry == nil {
		return nil
	}
	p := c.telemetry
	c.telemetry = nil
	if ctx == nil {
		ctx = context.Background()
	}
	return p.Shutdown(context.WithoutCancel(ctx))
}

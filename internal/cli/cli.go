// Package cli implements the dockpane command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dockpane/internal/telemetry"
	"github.com/matzehuels/dockpane/pkg/buildinfo"
	"github.com/matzehuels/dockpane/pkg/config"
	"github.com/matzehuels/dockpane/pkg/persist"
	"github.com/matzehuels/dockpane/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "dockpane"

	// defaultWidth and defaultHeight size layouts that carry no bounds.
	defaultWidth  = 1280
	defaultHeight = 800
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
	telemetry  *telemetry.Provider
}

// New creates a new CLI instance with a default logger and the built-in
// configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the configuration loaded for the running command.
func (c *CLI) Config() config.Config { return c.cfg }

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Dockpane arranges panels in a dockable window layout",
		Long: `Dockpane is a docking layout engine. Panels dock to the sides of each
other, stack as tabs, or float above the layout; layouts can be saved to a
file, Redis or MongoDB and served over HTTP.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.teardown(cmd.Context())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/dockpane/config.toml)")

	root.AddCommand(c.demoCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Layout Store
// =============================================================================

// openLayouts opens the configured store and returns an adapter over it.
// The caller closes the returned store.
func (c *CLI) openLayouts(ctx context.Context) (*persist.Adapter, store.Store, error) {
	st, err := store.Open(ctx, c.cfg.StoreOptions())
	if err != nil {
		return nil, nil, err
	}
	a := persist.NewAdapter(st,
		persist.WithTTL(c.cfg.Store.TTL),
		persist.WithAdapterLogger(c.Logger),
	)
	return a, st, nil
}

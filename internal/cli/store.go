package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dockpane/pkg/store"
)

// storeCommand creates the store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the layout store",
	}

	cmd.AddCommand(c.storeClearCommand())
	cmd.AddCommand(c.storePathCommand())

	return cmd
}

// storeClearCommand creates the "store clear" subcommand.
func (c *CLI) storeClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := store.Open(ctx, c.cfg.StoreOptions())
			if err != nil {
				return err
			}
			defer st.Close()

			cl, ok := st.(store.Clearer)
			if !ok {
				return store.ErrNotClearable
			}
			spinner := newSpinnerWithContext(ctx, "Clearing store...")
			spinner.Start()
			if err := cl.Clear(ctx); err != nil {
				spinner.StopWithError("Clear failed")
				return err
			}
			spinner.Stop()

			printSuccess("Cleared the %s store", c.backend())
			printDetail("Location: %s", c.storeLocation())
			return nil
		},
	}
}

// storePathCommand creates the "store path" subcommand.
func (c *CLI) storePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where layouts are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(c.storeLocation())
			return nil
		},
	}
}

func (c *CLI) backend() string {
	if c.cfg.Store.Backend == "" {
		return store.BackendFile
	}
	return c.cfg.Store.Backend
}

// storeLocation describes where the configured backend keeps its data.
func (c *CLI) storeLocation() string {
	s := c.cfg.Store
	switch c.backend() {
	case store.BackendRedis:
		return fmt.Sprintf("redis://%s/%d", s.RedisAddr, s.RedisDB)
	case store.BackendMongo:
		return fmt.Sprintf("%s (%s.%s)", s.MongoURI, s.MongoDatabase, s.MongoCollection)
	case store.BackendNull:
		return "nowhere (null store)"
	}
	if s.Dir != "" {
		return s.Dir
	}
	dir, err := store.DefaultDir()
	if err != nil {
		return "unknown: " + err.Error()
	}
	return dir
}

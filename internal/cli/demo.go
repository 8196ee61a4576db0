package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dockpane/internal/tui"
)

// demoCommand creates the interactive terminal demo.
func (c *CLI) demoCommand() *cobra.Command {
	var layout, logFile string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive docking demo in the terminal",
		Long: `Run the interactive docking demo in the terminal.

Drag a caption to undock a panel and drop it on a zone to dock it again;
drag a splitter to resize. With --layout the demo opens a stored layout and
's' saves it back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDemo(cmd.Context(), layout, logFile)
		},
	}

	cmd.Flags().StringVar(&layout, "layout", "", "stored layout to open and save to")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append debug logs to this file")

	return cmd
}

func (c *CLI) runDemo(ctx context.Context, layout, logFile string) error {
	logger, closeLog, err := fileLogger(logFile, c.Logger.GetLevel())
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []tui.Option{
		tui.WithLogger(logger),
		tui.WithAutoResize(c.cfg.DragAutoResize),
		tui.WithContext(ctx),
	}
	if layout != "" {
		layouts, st, err := c.openLayouts(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		opts = append(opts, tui.WithLayout(layouts, layout))
	}

	m, err := tui.New(opts...)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

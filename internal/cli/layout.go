package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/drag"
	perrors "github.com/matzehuels/dockpane/pkg/errors"
	"github.com/matzehuels/dockpane/pkg/geom"
	"github.com/matzehuels/dockpane/pkg/persist"
)

// layoutCommand creates the layout command group.
func (c *CLI) layoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect, verify and move saved layouts",
		Long: `Inspect, verify and move saved layouts.

Layout files are JSON, or TOML when the name ends in .toml. Named layouts
live in the configured store (see 'dockpane store path').`,
	}

	cmd.AddCommand(c.layoutShowCommand())
	cmd.AddCommand(c.layoutVerifyCommand())
	cmd.AddCommand(c.layoutExportCommand())
	cmd.AddCommand(c.layoutImportCommand())
	cmd.AddCommand(c.layoutDeleteCommand())
	cmd.AddCommand(c.layoutZoneCommand())

	return cmd
}

// layoutShowCommand creates the "layout show" subcommand.
func (c *CLI) layoutShowCommand() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "show [layout.json]",
		Short: "Print the panels of a layout file and where they land",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := c.loadLayoutFile(args[0], width, height)
			if err != nil {
				return err
			}
			printLayout(f)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "lay out at this width (default: saved bounds)")
	cmd.Flags().IntVar(&height, "height", 0, "lay out at this height (default: saved bounds)")

	return cmd
}

// layoutVerifyCommand creates the "layout verify" subcommand.
func (c *CLI) layoutVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [layout.json]",
		Short: "Check that a layout file restores to a consistent tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := c.loadLayoutFile(args[0], 0, 0)
			if err != nil {
				printError("%s is not a valid layout", args[0])
				return err
			}
			printSuccess("%s is consistent", args[0])
			printStats(statsOf(f))
			return nil
		},
	}
}

// layoutExportCommand creates the "layout export" subcommand.
func (c *CLI) layoutExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Write a stored layout to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if output == "" {
				output = name + ".json"
			}
			return c.runExport(cmd.Context(), name, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.json)")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, name, output string) error {
	layouts, st, err := c.openLayouts(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Loading %s...", name))
	spinner.Start()
	snap, err := layouts.Load(ctx, name)
	if err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.Stop()

	if err := persist.WriteFile(output, snap); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Exported %s", name)
	printFile(output)
	return nil
}

// layoutImportCommand creates the "layout import" subcommand.
func (c *CLI) layoutImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [layout.json] [name]",
		Short: "Verify a layout file and save it to the store",
		Long: `Verify a layout file and save it to the store.

The file is restored and saved again before it is stored, so the stored
layout is in canonical order and carries a fresh revision. A name defaults
to the file's base name.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			if len(args) == 2 {
				name = args[1]
			}
			return c.runImport(cmd.Context(), args[0], name)
		},
	}
}

func (c *CLI) runImport(ctx context.Context, input, name string) error {
	if err := perrors.ValidateLayoutName(name); err != nil {
		return err
	}
	f, err := c.loadLayoutFile(input, 0, 0)
	if err != nil {
		return err
	}

	layouts, st, err := c.openLayouts(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Saving %s...", name))
	spinner.Start()
	if err := layouts.Save(ctx, name, persist.Save(f)); err != nil {
		spinner.StopWithError("Import failed")
		return err
	}
	spinner.Stop()
	prog.done("Saved layout")

	printSuccess("Imported %s as %q", input, name)
	printStats(statsOf(f))
	printNewline()
	printNextStep("Open it", fmt.Sprintf("%s demo --layout %s", appName, name))
	return nil
}

// layoutDeleteCommand creates the "layout delete" subcommand.
func (c *CLI) layoutDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Remove a layout from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			layouts, st, err := c.openLayouts(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			ok, err := layouts.Exists(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				printWarning("No layout named %q", args[0])
				return nil
			}
			if err := layouts.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}

// layoutZoneCommand creates the "layout zone" subcommand.
func (c *CLI) layoutZoneCommand() *cobra.Command {
	var (
		panel int
		at    string
	)

	cmd := &cobra.Command{
		Use:   "zone [layout.json]",
		Short: "Report the drop zone a dragged panel would hit at a point",
		Long: `Report the drop zone a dragged panel would hit at a point.

Indicator sizes come from the [zones] section of the config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pt, err := parsePoint(at)
			if err != nil {
				return err
			}
			f, err := c.loadLayoutFile(args[0], 0, 0)
			if err != nil {
				return err
			}
			z, err := c.dropZone(f, dock.ID(panel), pt)
			if err != nil {
				return err
			}
			printKeyValue("Zone", z.String())
			if z.Claimed() {
				printKeyValue("Target", strconv.Itoa(int(z.Target)))
				printKeyValue("Lands at", z.Hint.String())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&panel, "panel", 0, "ID of the panel being dragged")
	cmd.Flags().StringVar(&at, "at", "", "pointer position as x,y")
	_ = cmd.MarkFlagRequired("panel")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

// dropZone hit-tests the drop zones for dragging panel to pt.
func (c *CLI) dropZone(f *dock.Family, panel dock.ID, pt geom.Point) (drag.Zone, error) {
	if panel == dock.RootID || f.GetDockFromID(panel) == nil {
		return drag.Zone{}, perrors.New(perrors.ErrCodeNotFound, "no panel %d", panel)
	}
	return drag.Detect(f, c.cfg.Geometry(), panel, pt), nil
}

func parsePoint(s string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if ok {
		x, errX := strconv.Atoi(strings.TrimSpace(xs))
		y, errY := strconv.Atoi(strings.TrimSpace(ys))
		if errX == nil && errY == nil {
			return geom.Pt(x, y), nil
		}
	}
	return geom.Point{}, perrors.New(perrors.ErrCodeInvalidInput, "point %q is not x,y", s)
}

// =============================================================================
// Restoring
// =============================================================================

// loadLayoutFile restores the layout in path into a family with no host.
// A positive width and height relayout it at that size afterwards.
func (c *CLI) loadLayoutFile(path string, width, height int) (*dock.Family, error) {
	snap, err := persist.ReadFile(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read %s", path)
	}
	f, err := c.restore(snap)
	if err != nil {
		return nil, err
	}
	if width > 0 || height > 0 {
		if err := perrors.ValidateBounds(width, height); err != nil {
			return nil, err
		}
		f.Resize(geom.XYWH(f.Root().Rect().Left, f.Root().Rect().Top, width, height))
	}
	return f, nil
}

// restore rebuilds snap and checks the result. Snapshots without bounds
// are laid out at the default size.
func (c *CLI) restore(snap *persist.Snapshot) (*dock.Family, error) {
	bounds := snap.Bounds
	if bounds == (geom.Rect{}) {
		bounds = geom.XYWH(0, 0, defaultWidth, defaultHeight)
	}
	if err := perrors.ValidateBounds(bounds.Width(), bounds.Height()); err != nil {
		return nil, err
	}
	f := dock.New(bounds,
		dock.WithLogger(c.Logger),
		dock.WithSplitterWidth(c.cfg.SplitterWidth),
		dock.WithCaptionHeight(c.cfg.CaptionHeight),
	)
	if err := persist.Load(f, snap, nil); err != nil {
		if perrors.GetCode(err) == "" {
			err = perrors.Wrap(perrors.ErrCodeInvalidLayout, err, "load layout")
		}
		return nil, err
	}
	if err := f.VerifyDockers(); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidLayout, err, "inconsistent layout")
	}
	return f, nil
}

// =============================================================================
// Display
// =============================================================================

func statsOf(f *dock.Family) layoutStats {
	var s layoutStats
	for _, n := range f.Nodes() {
		if n.ID() == dock.RootID {
			continue
		}
		s.Panels++
		if n.IsFloating() {
			s.Floating++
		}
		if n.Group() != nil {
			s.Groups++
		}
		if n.Hidden() {
			s.Hidden++
		}
	}
	return s
}

// placement describes where a node sits in its family.
func placement(f *dock.Family, n *dock.Node) string {
	switch {
	case n.ID() == dock.RootID:
		return "root"
	case n.GroupHost() != dock.None:
		host := f.GetDockFromID(n.GroupHost())
		return fmt.Sprintf("tab %d of %d in %d", host.Group().Index(n.ID())+1, host.Group().Len(), host.ID())
	case n.IsFloating():
		return "floating"
	case n.IsOuter():
		return fmt.Sprintf("outer %s of %d", n.Side(), n.Parent())
	case n.Parent() != dock.None:
		return fmt.Sprintf("%s of %d", n.Side(), n.Parent())
	}
	return "detached"
}

func printLayout(f *dock.Family) {
	root := f.Root().Rect()
	fmt.Println(StyleTitle.Render("Layout") + " " + StyleDim.Render(fmt.Sprintf("%dx%d", root.Width(), root.Height())))

	rows := make([][]string, 0, f.Len())
	for _, n := range f.Nodes() {
		size := "-"
		if n.IsDocked() && n.GroupHost() == dock.None {
			size = strconv.Itoa(f.DockSize(n.ID()))
		}
		caption := n.Caption()
		if n.Hidden() {
			caption += " (hidden)"
		}
		rows = append(rows, []string{
			strconv.Itoa(int(n.ID())),
			caption,
			placement(f, n),
			size,
			n.Rect().String(),
		})
	}
	fmt.Println(renderTable([]string{"ID", "Caption", "Placement", "Size", "Rect"}, rows))
	printStats(statsOf(f))
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dockpane/pkg/dock"
	perrors "github.com/matzehuels/dockpane/pkg/errors"
	"github.com/matzehuels/dockpane/pkg/render"
	"github.com/matzehuels/dockpane/pkg/render/nodelink"
	"github.com/matzehuels/dockpane/pkg/render/wireframe"
)

// Views and formats accepted by visualize.
const (
	viewTree      = "tree"
	viewWireframe = "wireframe"

	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
	formatDOT = "dot"
)

type visualizeOptions struct {
	view     string
	formats  string
	output   string
	detailed bool
	tabs     bool
	width    int
	height   int
}

// visualizeCommand creates the visualize command for drawing a layout file.
func (c *CLI) visualizeCommand() *cobra.Command {
	opts := visualizeOptions{view: viewWireframe}

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Draw a layout file",
		Long: `Draw a layout file.

The wireframe view draws every panel where it lands, with captions and
splitters. The tree view draws the dock tree as a node-link diagram, with
tab groups as dashed edges. PNG and PDF output need rsvg-convert on PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVisualize(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.view, "view", opts.view, "view: wireframe (default), tree")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label tree nodes with their rectangles (tree)")
	cmd.Flags().BoolVar(&opts.tabs, "tabs", true, "count hidden tabs in captions (wireframe)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "lay out at this width before drawing")
	cmd.Flags().IntVar(&opts.height, "height", 0, "lay out at this height before drawing")

	return cmd
}

func (c *CLI) runVisualize(ctx context.Context, input string, opts visualizeOptions) error {
	formats, err := parseFormats(opts.formats, opts.view)
	if err != nil {
		return err
	}
	f, err := c.loadLayoutFile(input, opts.width, opts.height)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	var written []string
	for _, format := range formats {
		data, err := draw(ctx, f, format, opts)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		path := outputPath(input, opts.output, format, len(formats) > 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	prog.done("Rendered " + opts.view)

	printSuccess("Rendered %s view", opts.view)
	printStats(statsOf(f))
	for _, p := range written {
		printFile(p)
	}
	return nil
}

// draw renders f in one output format.
func draw(ctx context.Context, f *dock.Family, format string, opts visualizeOptions) ([]byte, error) {
	if format == formatDOT {
		return []byte(nodelink.ToDOT(f, nodelink.Options{Detailed: opts.detailed})), nil
	}

	var svg []byte
	switch opts.view {
	case viewTree:
		var err error
		svg, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(f, nodelink.Options{Detailed: opts.detailed}))
		if err != nil {
			return nil, err
		}
	default:
		var wopts []wireframe.Option
		if opts.tabs {
			wopts = append(wopts, wireframe.WithTabs())
		}
		svg = wireframe.RenderSVG(f, wopts...)
	}

	switch format {
	case formatPNG:
		return render.ToPNG(ctx, svg, 2)
	case formatPDF:
		return render.ToPDF(ctx, svg)
	}
	return svg, nil
}

// parseFormats splits and checks a comma-separated format list.
func parseFormats(s, view string) ([]string, error) {
	switch view {
	case viewTree, viewWireframe:
	default:
		return nil, perrors.New(perrors.ErrCodeUnsupported, "unknown view %q (want tree or wireframe)", view)
	}
	if s == "" {
		return []string{formatSVG}, nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		switch f {
		case formatSVG, formatPNG, formatPDF:
		case formatDOT:
			if view != viewTree {
				return nil, perrors.New(perrors.ErrCodeUnsupported, "dot output needs --view tree")
			}
		default:
			return nil, perrors.New(perrors.ErrCodeUnsupported, "unknown format %q", f)
		}
		out = append(out, f)
	}
	return out, nil
}

// outputPath picks where one format is written. Without -o the output sits
// next to the input; with several formats -o is a base path.
func outputPath(input, output, format string, multi bool) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return base + "." + format
	}
	if multi {
		return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
	}
	return output
}

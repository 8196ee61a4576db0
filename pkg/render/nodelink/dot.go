package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dockpane/pkg/dock"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds each node's rectangle and dock size to its label.
	Detailed bool
}

// ToDOT converts f's tree to Graphviz DOT format.
func ToDOT(f *dock.Family, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	nodes := f.Nodes()
	for _, n := range nodes {
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID(), strings.Join(fmtAttrs(f, n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, n := range nodes {
		for _, c := range n.Children() {
			side := f.GetDockFromID(c).Side().String()
			if f.GetDockFromID(c).IsOuter() {
				side = "outer " + side
			}
			fmt.Fprintf(&buf, "  n%d -> n%d [label=%q];\n", n.ID(), c, side)
		}
		if g := n.Group(); g != nil {
			for i, m := range g.Members()[1:] {
				attrs := "style=dashed, label=\"tab\""
				if i+1 == g.Active() {
					attrs += ", penwidth=2"
				}
				fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", n.ID(), m, attrs)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(f *dock.Family, n *dock.Node, detailed bool) string {
	name := strconv.Itoa(int(n.ID()))
	switch {
	case n.ID() == dock.RootID:
		name = "root"
	case n.Caption() != "":
		name += " " + n.Caption()
	}
	if !detailed {
		return name
	}
	parts := []string{name, n.Rect().String()}
	if n.ID() != dock.RootID {
		parts = append(parts, fmt.Sprintf("size: %d", f.DockSize(n.ID())))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(f *dock.Family, n *dock.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(f, n, detailed))}
	switch {
	case n.Hidden():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=grey40")
	case n.ID() == dock.RootID:
		attrs = append(attrs, "fillcolor=lightblue")
	case n.IsFloating():
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	if n.Group() != nil && n.Group().Active() == 0 {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

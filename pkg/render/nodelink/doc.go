// Package nodelink renders a dock family's tree as a node-link diagram.
//
// # Overview
//
// Every live node becomes a box. Solid arrows run from a dock parent to
// its children in docking order, labelled with the side they claim; dashed
// arrows run from a tab group host to its members, with the active member
// drawn bold. Floating panels start their own trees next to the root.
// Hidden nodes are drawn greyed out with no edges.
//
// # Usage
//
//	dot := nodelink.ToDOT(family, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink

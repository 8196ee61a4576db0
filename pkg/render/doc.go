// Package render turns dock layouts into pictures.
//
// # Overview
//
//   - Wireframes of the computed panel geometry (in [wireframe] subpackage)
//   - Node-link diagrams of the dock tree (in [nodelink] subpackage)
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both renderers feed them.
//
//	svg := wireframe.RenderSVG(family)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2)
//
// [wireframe]: github.com/matzehuels/dockpane/pkg/render/wireframe
// [nodelink]: github.com/matzehuels/dockpane/pkg/render/nodelink
package render

// Package wireframe draws the computed geometry of a dock family as SVG.
//
// Each visible panel becomes a box with its caption strip; splitters are
// drawn as thin bars between a docked panel and the rest of its parent.
// Floating panels are painted above the root in z-order, so the picture
// matches what a host would show after the last layout pass.
//
//	svg := wireframe.RenderSVG(family, wireframe.WithTabs())
//
// Rendering is pure: it reads node rectangles and never triggers a layout.
package wireframe

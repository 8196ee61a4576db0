package wireframe

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/geom"
)

const interactionCSS = `
    .panel { transition: stroke-width 0.2s ease; }
    .panel:hover { stroke-width: 3; }
    .splitter:hover { fill: #d9480f; }`

// Option configures wireframe rendering.
type Option func(*renderer)

type renderer struct {
	style     Style
	tabs      bool
	highlight dock.ID
}

// WithStyle replaces the default Simple style.
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithTabs appends the number of hidden tabs to group captions.
func WithTabs() Option { return func(r *renderer) { r.tabs = true } }

// WithHighlight outlines one panel.
func WithHighlight(id dock.ID) Option { return func(r *renderer) { r.highlight = id } }

// RenderSVG draws every visible panel of f. The canvas covers the root's
// rectangle and grows to include floating panels outside it.
func RenderSVG(f *dock.Family, opts ...Option) []byte {
	r := renderer{style: Simple{}, highlight: dock.None}
	for _, opt := range opts {
		opt(&r)
	}

	panels, bars := r.collect(f)
	frame := f.Root().Rect()
	for _, p := range panels {
		frame.Left = min(frame.Left, int(p.X))
		frame.Top = min(frame.Top, int(p.Y))
		frame.Right = max(frame.Right, int(p.X+p.W))
		frame.Bottom = max(frame.Bottom, int(p.Y+p.H))
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%d %d %d %d" width="%d" height="%d">`+"\n",
		frame.Left, frame.Top, frame.Width(), frame.Height(), frame.Width(), frame.Height())
	r.style.RenderDefs(&buf)
	for _, p := range panels {
		r.style.RenderPanel(&buf, p)
	}
	for _, b := range bars {
		r.style.RenderSplitter(&buf, b)
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", interactionCSS)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// collect walks the top-level trees bottommost first. Within a tree a
// parent is painted before its children.
func (r *renderer) collect(f *dock.Family) ([]Panel, []Bar) {
	var panels []Panel
	var bars []Bar

	var walk func(n *dock.Node)
	walk = func(n *dock.Node) {
		panels = append(panels, r.panel(f, n))
		for _, id := range n.Children() {
			c := f.GetDockFromID(id)
			if c == nil {
				continue
			}
			if s := c.SplitterRect(); !s.Empty() {
				bars = append(bars, bar(id, s, c.Side()))
			}
			walk(c)
		}
	}

	tops := f.TopLevels()
	slices.Reverse(tops)
	for _, id := range tops {
		if n := f.GetDockFromID(id); n != nil && !n.Hidden() {
			walk(n)
		}
	}
	return panels, bars
}

func (r *renderer) panel(f *dock.Family, n *dock.Node) Panel {
	c := n.ContentRect()
	p := Panel{
		ID:        int(n.ID()),
		Label:     n.Caption(),
		X:         float64(c.Left),
		Y:         float64(c.Top),
		W:         float64(c.Width()),
		H:         float64(c.Height()),
		CaptionH:  float64(n.ViewRect().Top - c.Top),
		Root:      n.ID() == dock.RootID,
		Floating:  n.IsFloating(),
		Highlight: n.ID() == r.highlight,
	}
	if g := n.Group(); g != nil {
		if a := f.GetDockFromID(g.ActiveMember()); a != nil {
			p.Label = a.Caption()
			p.Highlight = p.Highlight || a.ID() == r.highlight
		}
		if r.tabs {
			for _, id := range g.Members() {
				if m := f.GetDockFromID(id); m != nil {
					p.Tabs = append(p.Tabs, m.Caption())
				}
			}
		}
	}
	return p
}

func bar(owner dock.ID, s geom.Rect, side dock.Side) Bar {
	return Bar{
		Owner:    int(owner),
		X:        float64(s.Left),
		Y:        float64(s.Top),
		W:        float64(s.Width()),
		H:        float64(s.Height()),
		Vertical: side.Horizontal(),
	}
}

package tui

import (
	"fmt"
	"slices"

	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/drag"
)

// paint draws the root tree, then the floating panels bottommost first,
// then any drag overlays on top.
func (m *Model) paint() *canvas {
	f := m.family
	b := m.bounds()
	c := newCanvas(b.Width(), b.Height())

	tops := f.TopLevels()
	slices.Reverse(tops)
	for _, id := range tops {
		if n := f.GetDockFromID(id); n != nil && !n.Hidden() {
			m.paintTree(c, n)
		}
	}

	for _, o := range m.screen.overlays {
		switch o.kind {
		case drag.OverlayHint:
			c.fill(o.rect, '░', paintHint)
		case drag.OverlayIndicator:
			c.fill(o.rect, '▒', paintIndicator)
		case drag.OverlayHashBar:
			c.fill(o.rect, '▓', paintHashBar)
		}
	}
	return c
}

func (m *Model) paintTree(c *canvas, n *dock.Node) {
	f := m.family
	m.paintNode(c, n)
	for _, id := range n.Children() {
		ch := f.GetDockFromID(id)
		if ch == nil {
			continue
		}
		bar := '─'
		if ch.Side().Horizontal() {
			bar = '│'
		}
		c.fill(ch.SplitterRect(), bar, paintSplitter)
		m.paintTree(c, ch)
	}
}

func (m *Model) paintNode(c *canvas, n *dock.Node) {
	content := n.ContentRect()
	if n.ID() == dock.RootID {
		c.fill(content, '·', paintBackground)
		return
	}
	body := paintPanel
	if n.IsFloating() {
		body = paintFloating
	}
	c.fill(content, ' ', body)

	shown := n
	caption := n.Caption()
	if g := n.Group(); g != nil {
		if a := m.family.GetDockFromID(g.ActiveMember()); a != nil {
			shown = a
			caption = fmt.Sprintf("%s [%d/%d]", a.Caption(), g.Active()+1, g.Len())
		}
	}

	view := n.ViewRect()
	if view.Top > content.Top {
		strip := content
		strip.Bottom = view.Top
		p := paintCaption
		if shown.ID() == m.focus {
			p = paintCaptionFocused
		}
		c.fill(strip, ' ', p)
		c.text(strip.Left+1, strip.Top, caption, strip.Width()-2, p)
	}

	if pv, ok := shown.View().(*panel); ok {
		for i, line := range pv.lines() {
			if view.Top+i >= view.Bottom {
				break
			}
			c.text(view.Left+1, view.Top+i, line, view.Width()-2, body)
		}
	}
}

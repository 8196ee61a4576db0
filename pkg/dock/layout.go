package dock

import (
	"math"
	"time"

	"github.com/matzehuels/dockpane/pkg/geom"
	"github.com/matzehuels/dockpane/pkg/observability"
)

// Placement is the computed position of one node for a layout pass.
type Placement struct {
	ID       ID
	Rect     geom.Rect // region of the node and its docked subtree
	Content  geom.Rect // node's own area, caption strip included
	View     geom.Rect // area handed to the view; empty when not visible
	Splitter geom.Rect // empty for nodes that are not docked in a tree
	Caption  string    // caption to draw; a group host shows the active tab
	Visible  bool
}

// Layout recomputes and applies the layout of every top-level tree.
func (f *Family) Layout() {
	f.relayout(f.TopLevels()...)
}

// RecalcDockLayout recomputes and applies the layout of the tree that
// contains id.
func (f *Family) RecalcDockLayout(id ID) {
	if n := f.nodes[id]; n != nil {
		f.relayout(n.ancestor)
	}
}

// Resize moves the family root to bounds and relayouts its tree. Docked
// descendants keep their ratios.
func (f *Family) Resize(bounds geom.Rect) {
	f.root.rect = bounds
	f.relayout(RootID)
}

// MoveFloating repositions a floating panel and raises it.
func (f *Family) MoveFloating(id ID, rect geom.Rect) error {
	n, err := f.lookup(id)
	if err != nil {
		return f.reject("move", id, err)
	}
	if !n.IsFloating() {
		return f.reject("move", id, ErrAlreadyDocked)
	}
	n.rect = rect
	f.Raise(id)
	f.relayout(id)
	return nil
}

// Batch runs fn with layout application deferred. Geometry is still kept
// current while fn runs, but the host sees one pass at the end.
func (f *Family) Batch(fn func()) {
	f.batch++
	defer func() {
		f.batch--
		if f.batch == 0 && f.pending {
			f.pending = false
			f.Layout()
		}
	}()
	fn()
}

// Passes returns the number of layout passes applied to the host so far.
func (f *Family) Passes() int { return f.passes }

// relayout lays out the trees rooted at tops. Duplicate and stale IDs are
// skipped.
func (f *Family) relayout(tops ...ID) {
	start := time.Now()
	var out []Placement
	seen := make(map[ID]bool, len(tops))
	for _, id := range tops {
		n := f.nodes[id]
		if n == nil {
			continue
		}
		top := f.nodes[n.ancestor]
		if top == nil || seen[top.id] {
			continue
		}
		seen[top.id] = true
		out = f.layoutNode(top, top.rect, !top.hidden, out)
	}
	if f.batch > 0 {
		f.pending = true
		return
	}
	f.apply(out)
	f.passes++
	elapsed := time.Since(start)
	f.logger.Debug("layout", "trees", len(seen), "nodes", len(out), "duration", elapsed)
	observability.Dock().OnLayout(len(out), elapsed)
}

// layoutNode assigns rc to n and slices it among n's children in order.
// Placements are appended to out; nothing is applied here.
func (f *Family) layoutNode(n *Node, rc geom.Rect, visible bool, out []Placement) []Placement {
	rc = rc.Clamp()
	n.rect = rc
	whole := rc
	bar := f.splitterWidth

	type claim struct {
		node *Node
		rect geom.Rect
	}
	claims := make([]claim, 0, len(n.children))
	for _, id := range n.children {
		c := f.nodes[id]
		if c == nil {
			continue
		}
		side := c.Side()
		size := c.desired
		if n.style&FixedResize == 0 {
			parentExtent := extent(whole, side)
			if c.ratio <= 0 && parentExtent > 0 {
				c.ratio = ratioOf(c.desired, parentExtent)
			}
			if c.ratio > 0 {
				size = int(math.Round(c.ratio * float64(parentExtent)))
			}
		}
		size = max(min(size, extent(rc, side)), 0)

		var part geom.Rect
		part, rc = slice(rc, side, size)
		c.splitter, rc = slice(rc, side, min(bar, extent(rc, side)))
		claims = append(claims, claim{c, part})
	}

	n.content = rc
	n.viewRect = rc
	if n.HasCaption() && f.captionHeight > 0 {
		n.viewRect.Top = min(rc.Top+f.captionHeight, rc.Bottom)
	}
	if n.parent == None {
		n.splitter = geom.Rect{}
	}
	out = append(out, f.placements(n, visible)...)

	for _, cl := range claims {
		out = f.layoutNode(cl.node, cl.rect, visible, out)
	}
	return out
}

// placements returns the entries for n and, if n hosts a group, for each
// member tab. Only the active tab gets the view rectangle.
func (f *Family) placements(n *Node, visible bool) []Placement {
	p := Placement{
		ID:       n.id,
		Rect:     n.rect,
		Content:  n.content,
		View:     n.viewRect,
		Splitter: n.splitter,
		Caption:  n.caption,
		Visible:  visible,
	}
	if n.group == nil {
		if !visible {
			p.View = geom.Rect{}
		}
		return []Placement{p}
	}

	active := n.group.ActiveMember()
	if a := f.nodes[active]; a != nil {
		p.Caption = a.caption
	}
	out := make([]Placement, 0, len(n.group.members))
	for _, id := range n.group.members {
		m := f.nodes[id]
		if m == nil {
			continue
		}
		shown := visible && id == active
		q := p
		q.ID = id
		q.Visible = shown
		if !shown {
			q.View = geom.Rect{}
		}
		if id != n.id {
			m.rect, m.content, m.viewRect = n.rect, n.content, n.viewRect
			q.Splitter = geom.Rect{}
		}
		out = append(out, q)
	}
	return out
}

func (f *Family) apply(out []Placement) {
	if len(out) == 0 {
		return
	}
	f.host.ApplyLayout(out)
	for _, p := range out {
		if n := f.nodes[p.ID]; n != nil && n.view != nil {
			n.view.Resize(p.View)
		}
	}
}

// extent returns the size of r along the axis a side splits.
func extent(r geom.Rect, side Side) int {
	if side.Horizontal() {
		return r.Width()
	}
	return r.Height()
}

// slice cuts a strip of size pixels off the given side of rc and returns
// the strip and the remainder.
func slice(rc geom.Rect, side Side, size int) (part, rest geom.Rect) {
	part, rest = rc, rc
	switch side {
	case SideLeft:
		part.Right = rc.Left + size
		rest.Left = part.Right
	case SideRight:
		part.Left = rc.Right - size
		rest.Right = part.Left
	case SideTop:
		part.Bottom = rc.Top + size
		rest.Top = part.Bottom
	case SideBottom:
		part.Top = rc.Bottom - size
		rest.Bottom = part.Top
	default:
		part = geom.Rect{Left: rc.Left, Top: rc.Top, Right: rc.Left, Bottom: rc.Top}
	}
	return part.Clamp(), rest.Clamp()
}

// ratioOf returns size/whole limited to (0, 1].
func ratioOf(size, whole int) float64 {
	if whole <= 0 || size <= 0 {
		return 0
	}
	return math.Min(float64(size)/float64(whole), 1)
}

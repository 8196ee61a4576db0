package dock

import "github.com/matzehuels/dockpane/pkg/geom"

// TopmostAt returns the top-level node whose region contains pt, checking
// floating panels topmost first and the root last. The exclude node (the
// panel being dragged) is skipped. It returns nil when nothing is hit.
func (f *Family) TopmostAt(pt geom.Point, exclude ID) *Node {
	for _, id := range f.TopLevels() {
		if id == exclude {
			continue
		}
		n := f.nodes[id]
		if n == nil || n.hidden {
			continue
		}
		if n.rect.Contains(pt) {
			return n
		}
	}
	return nil
}

// GetDockFromPoint returns the deepest node whose content area contains pt,
// searching only the topmost tree under the point. Points on a splitter or
// outside every tree yield nil. Group members are never returned; the hit
// lands on the group host.
func (f *Family) GetDockFromPoint(pt geom.Point, exclude ID) *Node {
	top := f.TopmostAt(pt, exclude)
	if top == nil {
		return nil
	}
	cur := top
descend:
	for {
		for _, id := range cur.children {
			c := f.nodes[id]
			if c != nil && c.rect.Contains(pt) {
				cur = c
				continue descend
			}
		}
		break
	}
	if cur.content.Contains(pt) {
		return cur
	}
	return nil
}

// CaptionAt returns the node whose caption strip contains pt, or nil.
func (f *Family) CaptionAt(pt geom.Point) *Node {
	n := f.GetDockFromPoint(pt, None)
	if n == nil || n.id == RootID || !n.HasCaption() {
		return nil
	}
	if pt.Y < n.viewRect.Top {
		return n
	}
	return nil
}

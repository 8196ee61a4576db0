package dock

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/dockpane/pkg/geom"
	"github.com/matzehuels/dockpane/pkg/observability"
)

// AddDockedChild registers n and docks it under parent. The side comes
// from style; a Container style merges n into parent's tab group and an
// outer side bit docks it against the root's edge instead. On failure n is
// unregistered again and the tree is unchanged.
func (f *Family) AddDockedChild(parent ID, n *Node, style Style, size int) error {
	const op = "add-docked"
	if n == nil {
		return f.reject(op, None, ErrNilNode)
	}
	if _, err := f.lookup(parent); err != nil {
		return f.reject(op, n.id, err)
	}
	if err := f.register(n); err != nil {
		return f.reject(op, n.id, err)
	}
	n.style = style
	n.desired = size

	var err error
	switch {
	case style&Container != 0:
		err = f.DockInContainer(parent, n.id)
	case style.OuterSide() != SideNone:
		err = f.DockOuter(n.id, style.OuterSide())
	default:
		err = f.Dock(parent, n.id, style.Side())
	}
	if err != nil {
		f.unregister(n)
		return err
	}
	return nil
}

// AddUndockedChild registers n as a floating panel at rect. Side and
// container bits are dropped from style.
func (f *Family) AddUndockedChild(n *Node, style Style, size int, rect geom.Rect) error {
	if n == nil {
		return f.reject("add-undocked", None, ErrNilNode)
	}
	if err := f.register(n); err != nil {
		return f.reject("add-undocked", n.id, err)
	}
	n.style = style &^ (sideMask | outerMask | Container)
	n.desired = size
	n.ratio = 1
	f.float(n, rect)
	f.relayout(n.id)
	return nil
}

// Dock attaches the floating node id as the last child of target on side.
// The size is the node's desired size, reduced when it would not leave the
// parent any room, and never below the splitter width. Focus moves to the
// node's view.
func (f *Family) Dock(target, id ID, side Side) error {
	const op = "dock"
	t, n, err := f.checkAttach(target, id)
	if err != nil {
		return f.reject(op, id, err)
	}
	if t.style.Forbids(side) {
		return f.reject(op, id, fmt.Errorf("%w: %s under %d", ErrSideForbidden, side, target))
	}
	f.attach(t, n, side, false)
	f.focus(n)
	f.logger.Debug("docked", "node", int(id), "target", int(target), "side", side.String(), "size", n.desired)
	observability.Dock().OnDock(int(id), int(target), side.String())
	f.relayout(t.ancestor)
	return nil
}

// DockOuter attaches the floating node id against the root's outer edge on
// side. It is inserted first among the root's children so it claims the
// outermost strip.
func (f *Family) DockOuter(id ID, side Side) error {
	const op = "dock-outer"
	t, n, err := f.checkAttach(RootID, id)
	if err != nil {
		return f.reject(op, id, err)
	}
	if t.style.Forbids(side) {
		return f.reject(op, id, fmt.Errorf("%w: outer %s", ErrSideForbidden, side))
	}
	f.attach(t, n, side, true)
	f.focus(n)
	f.logger.Debug("docked outer", "node", int(id), "side", side.String(), "size", n.desired)
	observability.Dock().OnDock(int(id), int(RootID), "outer-"+side.String())
	f.relayout(RootID)
	return nil
}

func (f *Family) checkAttach(target, id ID) (t, n *Node, err error) {
	if t, err = f.lookup(target); err != nil {
		return nil, nil, err
	}
	if n, err = f.lookup(id); err != nil {
		return nil, nil, err
	}
	switch {
	case n.id == RootID:
		return nil, nil, ErrRootNode
	case n.IsDocked():
		return nil, nil, ErrAlreadyDocked
	case t.host != None:
		return nil, nil, ErrGrouped
	case t.ancestor == n.id:
		return nil, nil, ErrWouldCycle
	}
	return t, n, nil
}

// attach links n under p and applies the dock-time size clamp.
func (f *Family) attach(p, n *Node, side Side, outer bool) {
	f.dropFloating(n.id)
	n.hidden = false
	n.parent = p.id
	n.outer = outer
	n.style = n.style&^(sideMask|outerMask|Container) | side.Bit()
	if outer {
		p.children = slices.Insert(p.children, 0, n.id)
	} else {
		p.children = append(p.children, n.id)
	}
	f.setAncestor(n, p.ancestor)
	n.desired, n.ratio = f.clampToParent(p, n.desired, side)
}

// clampToParent limits a dock-time size so the child leaves the parent
// usable room, and derives the ratio against the parent's full extent.
func (f *Family) clampToParent(p *Node, size int, side Side) (int, float64) {
	bar := f.splitterWidth
	room := extent(p.content, side)
	if size >= room-bar {
		size = max(room/2-bar, bar)
	}
	size = max(size, bar, 1)
	return size, ratioOf(size, extent(p.rect, side))
}

// Undock detaches id from its parent and floats it near pt, or hides it
// when show is false. The node's first child takes over its slot; the
// remaining children move under that first child. Undocking a tab
// delegates to UndockContainer.
func (f *Family) Undock(id ID, pt geom.Point, show bool) error {
	const op = "undock"
	n, err := f.lookup(id)
	if err != nil {
		return f.reject(op, id, err)
	}
	switch {
	case n.id == RootID:
		return f.reject(op, id, ErrRootNode)
	case n.style&NoUndock != 0:
		return f.reject(op, id, ErrNotUndockable)
	case n.host != None:
		return f.UndockContainer(n.host, id, pt, show)
	case !n.IsDocked():
		return f.reject(op, id, ErrNotDocked)
	}

	area := n.content
	from := f.separate(n)
	if show {
		f.float(n, undockRect(area, pt, f.captionHeight))
	} else {
		n.hidden = true
	}
	f.logger.Debug("undocked", "node", int(id), "from", int(from), "floating", show)
	observability.Dock().OnUndock(int(id), show)
	f.relayout(from, n.id)
	return nil
}

// separate unlinks n from its parent, promoting its first child into the
// vacated slot. n must have a tree parent. It returns that parent.
func (f *Family) separate(n *Node) ID {
	from := n.parent
	f.promoteFirstChild(n)
	n.parent = None
	n.outer = false
	n.style &^= sideMask | Container
	f.setAncestor(n, n.id)
	return from
}

// promoteFirstChild replaces n with its first child in n's parent, or
// removes n from the parent when it has no children. The first child
// inherits n's side, size and ratio and adopts n's other children.
func (f *Family) promoteFirstChild(n *Node) {
	var first *Node
	if len(n.children) > 0 {
		first = f.nodes[n.children[0]]
	}

	p := f.nodes[n.parent]
	if i := slices.Index(p.children, n.id); i >= 0 {
		if first != nil {
			p.children[i] = first.id
		} else {
			p.children = slices.Delete(p.children, i, i+1)
		}
	}
	if first == nil {
		return
	}

	first.style = first.style&^sideMask | n.style&sideMask
	first.desired, first.ratio, first.outer = n.desired, n.ratio, n.outer
	first.parent = n.parent

	rest := n.children[1:]
	n.children = nil
	for _, id := range rest {
		f.nodes[id].parent = first.id
	}
	first.children = append(first.children, rest...)
	f.setAncestor(first, p.ancestor)
}

// undockRect positions a panel of area's size so the pointer sits on its
// caption strip. If pt already lies on the strip the panel stays put.
func undockRect(area geom.Rect, pt geom.Point, caption int) geom.Rect {
	strip := area
	strip.Bottom = min(strip.Bottom, strip.Top+caption)
	if strip.Contains(pt) {
		return area
	}
	w, h := area.Width(), area.Height()
	left := pt.X - w/2
	top := pt.Y - caption/2
	return geom.XYWH(left, top, w, h)
}

// Hide takes id out of the layout without destroying it. Docked nodes are
// separated the way Undock does; tabs leave their group. Dock a hidden
// node to show it again.
func (f *Family) Hide(id ID) error {
	const op = "hide"
	n, err := f.lookup(id)
	if err != nil {
		return f.reject(op, id, err)
	}
	if n.id == RootID {
		return f.reject(op, id, ErrRootNode)
	}
	switch {
	case n.host != None:
		return f.undockContainer(n.host, id, geom.Point{}, false, true)
	case n.group != nil && n.IsDocked():
		return f.undockContainer(id, id, geom.Point{}, false, true)
	case n.IsDocked():
		from := f.separate(n)
		n.hidden = true
		observability.Dock().OnUndock(int(id), false)
		f.relayout(from, id)
	default:
		f.dropFloating(id)
		n.hidden = true
		f.relayout(id)
	}
	return nil
}

// Close hides id and destroys it. Whatever subtree is still attached to it
// afterwards (the children and tabs of a floating panel) is destroyed with
// it.
func (f *Family) Close(id ID) error {
	const op = "close"
	n, err := f.lookup(id)
	if err != nil {
		return f.reject(op, id, err)
	}
	switch {
	case n.id == RootID:
		return f.reject(op, id, ErrRootNode)
	case n.style&NoClose != 0:
		return f.reject(op, id, ErrNotClosable)
	}
	if n.IsDocked() {
		if err := f.Hide(id); err != nil {
			return err
		}
	}
	for _, m := range f.subtree(n) {
		f.unregister(m)
		observability.Dock().OnClose(int(m.id))
	}
	f.logger.Debug("closed", "node", int(id))
	return nil
}

// CloseAll destroys every node except the root.
func (f *Family) CloseAll() {
	for _, n := range f.Nodes() {
		if n.id != RootID {
			f.unregister(n)
		}
	}
	f.root.children = nil
	f.root.group = nil
	f.floating = nil
	f.relayout(RootID)
}

// SetDockSize requests a new size for id. Docked nodes are limited to the
// parent's extent and get a fresh ratio; floating nodes just remember the
// size for their next dock.
func (f *Family) SetDockSize(id ID, size int) error {
	n, err := f.lookup(id)
	if err != nil {
		return f.reject("set-size", id, err)
	}
	if n.parent == None {
		n.desired = size
		n.ratio = 1
		return nil
	}
	p := f.nodes[n.parent]
	whole := extent(p.rect, n.Side())
	n.desired = max(min(size, whole), f.minDockSize())
	if r := ratioOf(n.desired, whole); r > 0 {
		n.ratio = r
	}
	f.relayout(n.ancestor)
	return nil
}

// DockSize returns the size id would claim if redocked: its ratio of the
// parent's current extent, no smaller than the floor SetDockSize applies.
// Tabs report 0 and floating panels their last requested size.
func (f *Family) DockSize(id ID) int {
	n := f.nodes[id]
	switch {
	case n == nil, n.host != None:
		return 0
	case n.parent == None:
		return n.desired
	}
	p := f.nodes[n.parent]
	return max(int(math.Round(n.ratio*float64(extent(p.rect, n.Side())))), f.minDockSize())
}

// minDockSize is the smallest size a docked node is given.
func (f *Family) minDockSize() int { return max(f.splitterWidth, 1) }

func (f *Family) focus(n *Node) {
	target := n
	if n.group != nil {
		target = f.nodes[n.group.ActiveMember()]
	}
	if target != nil && target.view != nil {
		target.view.Focus()
	}
}

package dock

import (
	"slices"

	"github.com/matzehuels/dockpane/pkg/geom"
	"github.com/matzehuels/dockpane/pkg/observability"
)

// Group is a tab group hosted by one node. members[0] is always the host,
// the only member that is linked into the dock tree; the other members are
// attached to the group alone. Insertion order is tab order.
type Group struct {
	members []ID
	active  int
}

func newGroup(host ID) *Group {
	return &Group{members: []ID{host}}
}

// Members returns a copy of the member IDs in tab order.
func (g *Group) Members() []ID { return slices.Clone(g.members) }

// Len returns the number of members, host included.
func (g *Group) Len() int { return len(g.members) }

// Host returns the tree-linked member.
func (g *Group) Host() ID { return g.members[0] }

// Active returns the index of the selected member.
func (g *Group) Active() int { return g.active }

// ActiveMember returns the ID of the selected member.
func (g *Group) ActiveMember() ID { return g.members[g.active] }

// Index returns the tab index of id, or -1.
func (g *Group) Index(id ID) int { return slices.Index(g.members, id) }

func (g *Group) addMember(id ID) {
	if g.Index(id) < 0 {
		g.members = append(g.members, id)
	}
}

// removeMember drops id. Removing the active member selects index 0;
// removing an absent member does nothing.
func (g *Group) removeMember(id ID) bool {
	i := g.Index(id)
	if i < 0 {
		return false
	}
	g.members = slices.Delete(g.members, i, i+1)
	switch {
	case i == g.active:
		g.active = 0
	case i < g.active:
		g.active--
	}
	return true
}

// selectMember changes the active tab. Out-of-range indexes are ignored.
func (g *Group) selectMember(i int) bool {
	if i < 0 || i >= len(g.members) {
		return false
	}
	g.active = i
	return true
}

// DockInContainer merges id into target's tab group, creating the group if
// target is still plain. If id hosts a group itself, its other members move
// over first in their existing order, then id joins. Docked children of id
// are reparented onto target. A target that is itself a tab redirects to
// its group host.
func (f *Family) DockInContainer(target, id ID) error {
	const op = "dock-in-container"
	t, err := f.lookup(target)
	if err != nil {
		return f.reject(op, id, err)
	}
	n, err := f.lookup(id)
	if err != nil {
		return f.reject(op, id, err)
	}
	if t.host != None {
		t = f.nodes[t.host]
	}
	switch {
	case t.id == RootID || n.id == RootID:
		return f.reject(op, id, ErrRootNode)
	case n.IsDocked():
		return f.reject(op, id, ErrAlreadyDocked)
	case f.contains(n, t.id):
		return f.reject(op, id, ErrWouldCycle)
	}

	for _, cid := range n.children {
		c := f.nodes[cid]
		c.parent = t.id
		t.children = append(t.children, cid)
	}
	n.children = nil

	if t.group == nil {
		t.group = newGroup(t.id)
	}
	switch n.Kind() {
	case Grouped:
		for _, mid := range n.group.members[1:] {
			t.group.addMember(mid)
			f.nodes[mid].host = t.id
		}
		n.group = nil
	case Plain:
	}
	t.group.addMember(n.id)

	f.dropFloating(n.id)
	n.hidden = false
	n.outer = false
	n.parent = None
	n.host = t.id
	n.style = n.style&^(sideMask|outerMask) | Container
	f.setAncestor(t, t.ancestor)

	f.logger.Debug("merged", "host", int(t.id), "node", int(n.id), "members", t.group.Len())
	observability.Dock().OnMerge(int(t.id), int(n.id))
	f.relayout(t.ancestor)
	return nil
}

// UndockContainer detaches member from the group hosted by host and floats
// it near pt, or hides it when show is false. When member is the host
// itself, the first other member takes over the host's slot in the tree:
// its side, size, ratio, docked children and remaining tabs.
func (f *Family) UndockContainer(host, member ID, pt geom.Point, show bool) error {
	return f.undockContainer(host, member, pt, show, false)
}

func (f *Family) undockContainer(host, member ID, pt geom.Point, show, force bool) error {
	const op = "undock-container"
	h, err := f.lookup(host)
	if err != nil {
		return f.reject(op, member, err)
	}
	m, err := f.lookup(member)
	if err != nil {
		return f.reject(op, member, err)
	}
	if h.group == nil || h.group.Index(member) < 0 {
		return f.reject(op, member, ErrNotMember)
	}
	if !force && m.style&NoUndock != 0 {
		return f.reject(op, member, ErrNotUndockable)
	}

	area := h.content
	from := h
	if member == host {
		from = f.promoteGroupHost(h)
	} else {
		h.group.removeMember(member)
		if h.group.Len() == 1 {
			h.group = nil
		}
		m.host = None
	}
	m.style &^= sideMask | Container
	f.setAncestor(m, m.id)

	if show {
		f.float(m, undockRect(area, pt, f.captionHeight))
	} else {
		m.hidden = true
	}

	f.logger.Debug("undocked tab", "host", int(host), "node", int(member), "floating", show)
	observability.Dock().OnUndock(int(member), show)
	f.relayout(from.id, m.id)
	return nil
}

// promoteGroupHost hands h's tree slot and group to the first other member
// and returns it. h is left plain and unlinked.
func (f *Family) promoteGroupHost(h *Node) *Node {
	members := h.group.members[1:]
	nw := f.nodes[members[0]]
	active := h.group.ActiveMember()

	if len(members) > 1 {
		nw.group = &Group{members: slices.Clone(members)}
		if i := nw.group.Index(active); i >= 0 {
			nw.group.active = i
		}
		for _, id := range members[1:] {
			f.nodes[id].host = nw.id
		}
	}
	h.group = nil
	nw.host = None

	nw.style = nw.style&^(sideMask|Container) | h.style&sideMask
	nw.desired, nw.ratio, nw.outer = h.desired, h.ratio, h.outer
	nw.rect = h.rect

	if h.parent != None {
		p := f.nodes[h.parent]
		p.children[slices.Index(p.children, h.id)] = nw.id
		nw.parent = h.parent
	} else {
		nw.parent = None
		if i := slices.Index(f.floating, h.id); i >= 0 {
			f.floating[i] = nw.id
		}
		nw.hidden = h.hidden
	}
	for _, cid := range h.children {
		f.nodes[cid].parent = nw.id
	}
	nw.children, h.children = h.children, nil

	h.parent = None
	h.outer = false
	top := nw.id
	if nw.parent != None {
		top = f.nodes[nw.parent].ancestor
	}
	f.setAncestor(nw, top)
	return nw
}

// SelectGroupMember activates the tab at index in the group hosted by host.
// Out-of-range indexes are ignored. The host's displayed caption follows
// the selection.
func (f *Family) SelectGroupMember(host ID, index int) error {
	h, err := f.lookup(host)
	if err != nil {
		return f.reject("select", host, err)
	}
	if h.group == nil {
		return nil
	}
	if !h.group.selectMember(index) {
		return nil
	}
	if a := f.nodes[h.group.ActiveMember()]; a != nil && a.view != nil {
		a.view.Focus()
	}
	f.relayout(h.id)
	return nil
}

// SelectNode activates the tab showing id, wherever its group lives.
func (f *Family) SelectNode(id ID) error {
	n, err := f.lookup(id)
	if err != nil {
		return f.reject("select", id, err)
	}
	host := n
	if n.host != None {
		host = f.nodes[n.host]
	}
	if host.group == nil {
		return nil
	}
	return f.SelectGroupMember(host.id, host.group.Index(id))
}

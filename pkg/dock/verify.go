package dock

import (
	"errors"
	"fmt"
)

// VerifyDockers checks the structural invariants of the family and returns
// every violation joined into one error, or nil.
//
// It checks that parent and child links agree in both directions, that
// each cached ancestor matches the top reached by following parent links,
// that floating panels have no parent, that docked nodes carry a side and a
// ratio in (0, 1], and that every group is well formed.
func (f *Family) VerifyDockers() error {
	var errs []error
	fail := func(id ID, format string, args ...any) {
		errs = append(errs, fmt.Errorf("node %d: %s", id, fmt.Sprintf(format, args...)))
	}

	for _, n := range f.Nodes() {
		id := n.id

		for _, cid := range n.children {
			c := f.nodes[cid]
			switch {
			case c == nil:
				fail(id, "child %d is not registered", cid)
			case c.parent != id:
				fail(id, "child %d names parent %d", cid, c.parent)
			}
		}

		if n.parent != None {
			p := f.nodes[n.parent]
			switch {
			case p == nil:
				fail(id, "parent %d is not registered", n.parent)
			case count(p.children, id) != 1:
				fail(id, "listed %d times by parent %d", count(p.children, id), n.parent)
			}
			if n.host != None {
				fail(id, "has both parent %d and group host %d", n.parent, n.host)
			}
			if n.Side() == SideNone {
				fail(id, "docked without a side")
			}
			if p != nil && p.style&FixedResize == 0 && !p.rect.Empty() && (n.ratio <= 0 || n.ratio > 1) {
				fail(id, "ratio %g outside (0, 1]", n.ratio)
			}
		} else if n.host == None && n.style&(sideMask|Container) != 0 {
			fail(id, "undocked but styled %#x", uint32(n.style&(sideMask|Container)))
		}

		if top, ok := f.walkTop(n); !ok {
			fail(id, "parent chain does not terminate")
		} else if n.ancestor != top {
			fail(id, "ancestor %d, want %d", n.ancestor, top)
		}

		if n.host != None {
			h := f.nodes[n.host]
			switch {
			case h == nil:
				fail(id, "group host %d is not registered", n.host)
			case h.group == nil || h.group.Index(id) <= 0:
				fail(id, "not a tab of host %d", n.host)
			}
			if len(n.children) > 0 || n.group != nil {
				fail(id, "tab owns children or a group")
			}
			if n.style&Container == 0 {
				fail(id, "tab without the container style")
			}
		}

		if g := n.group; g != nil {
			switch {
			case len(g.members) < 2:
				fail(id, "group with %d members", len(g.members))
			case g.members[0] != id:
				fail(id, "group lists %d as host", g.members[0])
			case g.active < 0 || g.active >= len(g.members):
				fail(id, "active tab %d out of range", g.active)
			}
			for _, mid := range g.members[1:] {
				if m := f.nodes[mid]; m == nil || m.host != id {
					fail(id, "member %d does not point back", mid)
				}
			}
		}
	}

	for _, id := range f.floating {
		n := f.nodes[id]
		switch {
		case n == nil:
			fail(id, "floating but not registered")
		case n.IsDocked():
			fail(id, "floating but docked")
		case n.hidden:
			fail(id, "floating but hidden")
		}
	}
	return errors.Join(errs...)
}

// walkTop follows parent links (and the group host link) to the top.
func (f *Family) walkTop(n *Node) (ID, bool) {
	cur := n
	for range len(f.nodes) + 1 {
		next := cur.parent
		if next == None {
			next = cur.host
		}
		if next == None {
			return cur.id, true
		}
		p := f.nodes[next]
		if p == nil {
			return cur.id, true
		}
		cur = p
	}
	return None, false
}

func count(ids []ID, id ID) int {
	n := 0
	for _, x := range ids {
		if x == id {
			n++
		}
	}
	return n
}

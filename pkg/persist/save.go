package persist

import (
	"github.com/google/uuid"

	"github.com/matzehuels/dockpane/pkg/dock"
)

// Save flattens f into a snapshot. Records come parents first: the root's
// subtree, then each floating panel bottommost first, each followed by
// its subtree. Tab group members follow their host. Hidden nodes are not
// saved.
func Save(f *dock.Family) *Snapshot {
	snap := &Snapshot{
		Revision: uuid.NewString(),
		Bounds:   f.Root().Rect(),
	}
	floating := f.Floating()
	tops := []dock.ID{dock.RootID}
	for i := len(floating) - 1; i >= 0; i-- {
		tops = append(tops, floating[i])
	}
	for _, id := range SortDockers(f, tops...) {
		n := f.GetDockFromID(id)
		if id != dock.RootID {
			snap.Records = append(snap.Records, record(f, n))
		}
		if g := n.Group(); g != nil && g.Active() != 0 {
			snap.Active = append(snap.Active, Active{Host: id, Index: g.Active()})
		}
	}
	return snap
}

// SortDockers returns the nodes reachable from tops, breadth first, with
// each tab group's members right after their host.
func SortDockers(f *dock.Family, tops ...dock.ID) []dock.ID {
	var out []dock.ID
	queue := append([]dock.ID(nil), tops...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n := f.GetDockFromID(id)
		if n == nil || n.Hidden() {
			continue
		}
		out = append(out, id)
		if g := n.Group(); g != nil {
			out = append(out, g.Members()[1:]...)
		}
		queue = append(queue, n.Children()...)
	}
	return out
}

func record(f *dock.Family, n *dock.Node) Record {
	r := Record{
		ID:      n.ID(),
		Style:   n.Style(),
		Size:    f.DockSize(n.ID()),
		Caption: n.Caption(),
	}
	switch {
	case n.GroupHost() != dock.None:
		r.ParentID = n.GroupHost()
	case n.Parent() != dock.None:
		r.ParentID = n.Parent()
		if n.IsOuter() {
			r.Style = r.Style.WithSide(dock.SideNone) | n.Side().OuterBit()
		}
	default:
		r.Rect = n.Rect()
	}
	return r
}

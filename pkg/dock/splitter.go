package dock

import (
	"fmt"

	"github.com/matzehuels/dockpane/pkg/geom"
)

// Splitter is the draggable strip between a docked node and the rest of
// its parent.
type Splitter struct {
	Owner     ID
	Side      Side
	Thickness int
	Rect      geom.Rect
}

// Splitter returns the splitter owned by id. Only docked, resizable tree
// nodes have one.
func (f *Family) Splitter(id ID) (Splitter, bool) {
	n := f.nodes[id]
	if n == nil || n.parent == None || n.style&NoResize != 0 {
		return Splitter{}, false
	}
	return Splitter{Owner: id, Side: n.Side(), Thickness: f.splitterWidth, Rect: n.splitter}, true
}

// SplitterAt returns the resizable splitter under pt, searching the
// topmost tree under the point.
func (f *Family) SplitterAt(pt geom.Point) (Splitter, bool) {
	top := f.TopmostAt(pt, None)
	if top == nil {
		return Splitter{}, false
	}
	var found Splitter
	var ok bool
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, id := range n.children {
			c := f.nodes[id]
			if c == nil || ok {
				continue
			}
			if c.splitter.Contains(pt) {
				found, ok = f.Splitter(c.id)
				return
			}
			if c.rect.Contains(pt) {
				walk(c)
			}
		}
	}
	walk(top)
	return found, ok
}

// SplitterSize converts a pointer position on owner's splitter into the
// size the owner would get. The pointer is centred on the splitter and the
// result is never below the splitter thickness.
func (f *Family) SplitterSize(owner ID, pt geom.Point) (int, error) {
	n := f.nodes[owner]
	if n == nil {
		return 0, fmt.Errorf("%w: %d", ErrUnknownNode, owner)
	}
	if n.parent == None {
		return 0, fmt.Errorf("%w: %d", ErrNotDocked, owner)
	}
	p := f.nodes[n.parent]
	bar := f.splitterWidth
	half := bar / 2
	r := n.rect

	var size int
	switch n.Side() {
	case SideLeft:
		size = max(pt.X, p.rect.Left+half) - r.Left - half
	case SideRight:
		size = r.Right - max(pt.X, p.rect.Left+half) - half
	case SideTop:
		size = max(pt.Y, p.rect.Top+half) - r.Top - half
	case SideBottom:
		size = r.Bottom - max(pt.Y, p.rect.Top+half) - half
	}
	return max(size, bar), nil
}

// ResizeFromSplitter resizes owner as if its splitter had been dragged to
// pt, then relayouts the whole tree.
func (f *Family) ResizeFromSplitter(owner ID, pt geom.Point) error {
	const op = "resize"
	if _, ok := f.Splitter(owner); !ok {
		return f.reject(op, owner, fmt.Errorf("%w: no resizable splitter", ErrNotDocked))
	}
	size, err := f.SplitterSize(owner, pt)
	if err != nil {
		return f.reject(op, owner, err)
	}
	return f.SetDockSize(owner, size)
}

package dock

import "github.com/matzehuels/dockpane/pkg/geom"

// View is the panel content hosted by a node. The engine never inspects a
// view; it only drives its lifecycle and hands it a rectangle.
type View interface {
	// Create is called once when the node joins a family.
	Create(id ID) error
	// Destroy is called once when the node leaves the family for good.
	Destroy()
	// Resize places the view. An empty rectangle means the view is hidden.
	Resize(r geom.Rect)
	// Focus moves input focus to the view.
	Focus()
}

// Kind distinguishes plain nodes from nodes hosting a tab group.
type Kind int

const (
	// Plain nodes show their own view.
	Plain Kind = iota
	// Grouped nodes host a Group and show its active member's view.
	Grouped
)

func (k Kind) String() string {
	if k == Grouped {
		return "grouped"
	}
	return "plain"
}

// Node is one dockable panel. Nodes are created with NewNode and become
// live once attached to a Family; all links to other nodes are IDs
// resolved through the family.
type Node struct {
	id      ID
	caption string
	view    View
	style   Style

	parent   ID
	children []ID
	ancestor ID
	group    *Group
	host     ID

	desired int
	ratio   float64
	outer   bool
	hidden  bool

	rect     geom.Rect
	content  geom.Rect
	viewRect geom.Rect
	splitter geom.Rect
}

// NewNode returns a detached node. The view may be nil for nodes that only
// structure the layout.
func NewNode(id ID, caption string, view View) *Node {
	return &Node{
		id:       id,
		caption:  caption,
		view:     view,
		parent:   None,
		ancestor: id,
		host:     None,
	}
}

func (n *Node) ID() ID          { return n.id }
func (n *Node) Caption() string { return n.caption }
func (n *Node) View() View      { return n.view }
func (n *Node) Style() Style    { return n.style }
func (n *Node) Side() Side      { return n.style.Side() }

// Parent returns the dock parent, or None for floating nodes, group
// members and the root.
func (n *Node) Parent() ID { return n.parent }

// Children returns a copy of the docked children in layout order.
func (n *Node) Children() []ID { return append([]ID(nil), n.children...) }

// Ancestor returns the top of the tree the node belongs to. For group
// members it is the ancestor of the group host.
func (n *Node) Ancestor() ID { return n.ancestor }

// Kind reports whether the node hosts a group.
func (n *Node) Kind() Kind {
	if n.group != nil {
		return Grouped
	}
	return Plain
}

// Group returns the hosted group, or nil for plain nodes.
func (n *Node) Group() *Group { return n.group }

// GroupHost returns the node whose group this node is a tab of, or None.
func (n *Node) GroupHost() ID { return n.host }

// Ratio returns the fraction of the parent's extent the node claims.
func (n *Node) Ratio() float64 { return n.ratio }

// DesiredSize returns the last explicit size request in pixels.
func (n *Node) DesiredSize() int { return n.desired }

// IsOuter reports whether the node was docked against the root's outer edge.
func (n *Node) IsOuter() bool { return n.outer }

// Hidden reports whether the node was hidden without being destroyed.
func (n *Node) Hidden() bool { return n.hidden }

// IsDocked reports whether the node has a dock parent or is a group member.
func (n *Node) IsDocked() bool { return n.parent != None || n.host != None }

// IsFloating reports whether the node is a visible top-level panel other
// than the root.
func (n *Node) IsFloating() bool {
	return n.id != RootID && !n.IsDocked() && !n.hidden
}

// Rect returns the region claimed by the node and its docked subtree.
func (n *Node) Rect() geom.Rect { return n.rect }

// ContentRect returns the node's own area: its rect minus docked children
// and their splitters. It includes the caption strip.
func (n *Node) ContentRect() geom.Rect { return n.content }

// ViewRect returns the area handed to the view, below the caption strip.
func (n *Node) ViewRect() geom.Rect { return n.viewRect }

// SplitterRect returns the node's splitter strip. Only docked nodes have one.
func (n *Node) SplitterRect() geom.Rect { return n.splitter }

// HasCaption reports whether the node draws a caption strip.
func (n *Node) HasCaption() bool { return n.style&NoCaption == 0 }

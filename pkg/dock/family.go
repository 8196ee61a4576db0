package dock

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockpane/pkg/geom"
)

// DefaultSplitterWidth is the splitter thickness used when none is configured.
const DefaultSplitterWidth = 4

// Host is the window-system collaborator. It owns the real surfaces; the
// engine only tells it which surfaces exist and where they go.
type Host interface {
	// CreateSurface allocates the content and splitter surfaces for a node.
	CreateSurface(id ID) error
	// DestroySurface releases them.
	DestroySurface(id ID)
	// ApplyLayout repositions every surface of one layout pass at once.
	ApplyLayout(placements []Placement)
	// SetCapture routes all pointer input to the node until ReleaseCapture.
	SetCapture(id ID)
	// ReleaseCapture ends a capture started with SetCapture.
	ReleaseCapture()
}

// NopHost is a Host that does nothing. It is the default for families
// created without one.
type NopHost struct{}

func (NopHost) CreateSurface(ID) error  { return nil }
func (NopHost) DestroySurface(ID)       {}
func (NopHost) ApplyLayout([]Placement) {}
func (NopHost) SetCapture(ID)           {}
func (NopHost) ReleaseCapture()         {}

var _ Host = NopHost{}

// Option configures a Family.
type Option func(*Family)

// WithHost sets the window-system collaborator.
func WithHost(h Host) Option { return func(f *Family) { f.host = h } }

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option { return func(f *Family) { f.logger = l } }

// WithSplitterWidth sets the splitter thickness in pixels.
func WithSplitterWidth(w int) Option { return func(f *Family) { f.splitterWidth = w } }

// WithCaptionHeight sets the height of the caption strip drawn above each
// view. Zero disables captions entirely.
func WithCaptionHeight(h int) Option { return func(f *Family) { f.captionHeight = h } }

// Family is the registry of every node sharing one root. It owns node
// lifetimes: a node is alive exactly while it is registered here.
//
// The zero value is not usable - use New.
type Family struct {
	nodes    map[ID]*Node
	root     *Node
	floating []ID // z-order, topmost last

	host          Host
	logger        *log.Logger
	splitterWidth int
	captionHeight int

	batch   int
	pending bool
	passes  int
}

// New creates a family whose root covers bounds.
func New(bounds geom.Rect, opts ...Option) *Family {
	f := &Family{
		nodes:         make(map[ID]*Node),
		host:          NopHost{},
		splitterWidth: DefaultSplitterWidth,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = log.Default()
	}
	if f.host == nil {
		f.host = NopHost{}
	}
	if f.splitterWidth < 0 {
		f.splitterWidth = 0
	}

	root := NewNode(RootID, "", nil)
	root.style = NoUndock | NoClose
	root.rect = bounds
	root.content = bounds
	root.viewRect = bounds
	f.root = root
	f.nodes[RootID] = root
	return f
}

// Root returns the family root.
func (f *Family) Root() *Node { return f.root }

// SplitterWidth returns the configured splitter thickness.
func (f *Family) SplitterWidth() int { return f.splitterWidth }

// CaptionHeight returns the configured caption strip height.
func (f *Family) CaptionHeight() int { return f.captionHeight }

// Host returns the window-system collaborator.
func (f *Family) Host() Host { return f.host }

// Logger returns the family's logger.
func (f *Family) Logger() *log.Logger { return f.logger }

// Len returns the number of live nodes, including the root.
func (f *Family) Len() int { return len(f.nodes) }

// GetDockFromID returns the live node with the given ID, or nil.
func (f *Family) GetDockFromID(id ID) *Node { return f.nodes[id] }

// GetDockFromView returns the node hosting v, or nil.
func (f *Family) GetDockFromView(v View) *Node {
	if v == nil {
		return nil
	}
	for _, n := range f.nodes {
		if n.view == v {
			return n
		}
	}
	return nil
}

// Nodes returns every live node ordered by ID.
func (f *Family) Nodes() []*Node {
	out := make([]*Node, 0, len(f.nodes))
	for _, n := range f.nodes {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b *Node) int { return int(a.id) - int(b.id) })
	return out
}

// Floating returns the visible floating panels, topmost first.
func (f *Family) Floating() []ID {
	out := slices.Clone(f.floating)
	slices.Reverse(out)
	return out
}

// TopLevels returns the roots of every independent tree in hit-test order:
// floating panels topmost first, then the family root.
func (f *Family) TopLevels() []ID {
	return append(f.Floating(), RootID)
}

// Topmost returns the top of the tree containing id, or None.
func (f *Family) Topmost(id ID) ID {
	if n := f.nodes[id]; n != nil {
		return n.ancestor
	}
	return None
}

// SetCaption changes a node's caption.
func (f *Family) SetCaption(id ID, caption string) error {
	n := f.nodes[id]
	if n == nil {
		return f.reject("set-caption", id, ErrUnknownNode)
	}
	n.caption = caption
	return nil
}

// Raise moves a floating panel to the top of the z-order.
func (f *Family) Raise(id ID) {
	if i := slices.Index(f.floating, id); i >= 0 {
		f.floating = append(slices.Delete(f.floating, i, i+1), id)
	}
}

// register adds n to the registry and creates its surfaces.
func (f *Family) register(n *Node) error {
	if n == nil {
		return ErrNilNode
	}
	if n.id <= RootID {
		return fmt.Errorf("%w: %d", ErrInvalidID, n.id)
	}
	if _, ok := f.nodes[n.id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, n.id)
	}
	if err := f.host.CreateSurface(n.id); err != nil {
		return fmt.Errorf("create surface %d: %w", n.id, err)
	}
	if n.view != nil {
		if err := n.view.Create(n.id); err != nil {
			f.host.DestroySurface(n.id)
			return fmt.Errorf("create view %d: %w", n.id, err)
		}
	}
	n.parent, n.host, n.ancestor = None, None, n.id
	n.children, n.group = nil, nil
	f.nodes[n.id] = n
	return nil
}

// unregister removes n from the registry exactly once.
func (f *Family) unregister(n *Node) {
	if _, ok := f.nodes[n.id]; !ok {
		return
	}
	delete(f.nodes, n.id)
	f.dropFloating(n.id)
	if n.view != nil {
		n.view.Destroy()
	}
	f.host.DestroySurface(n.id)
}

func (f *Family) float(n *Node, rect geom.Rect) {
	n.rect = rect
	n.content = rect
	n.hidden = false
	f.dropFloating(n.id)
	f.floating = append(f.floating, n.id)
}

func (f *Family) dropFloating(id ID) {
	if i := slices.Index(f.floating, id); i >= 0 {
		f.floating = slices.Delete(f.floating, i, i+1)
	}
}

// setAncestor stamps top as the ancestor of n, its docked subtree and the
// members of every group in it.
func (f *Family) setAncestor(n *Node, top ID) {
	n.ancestor = top
	if n.group != nil {
		for _, id := range n.group.members[1:] {
			if m := f.nodes[id]; m != nil {
				m.ancestor = top
			}
		}
	}
	for _, id := range n.children {
		if c := f.nodes[id]; c != nil {
			f.setAncestor(c, top)
		}
	}
}

// subtree returns n, its docked descendants and their group members.
func (f *Family) subtree(n *Node) []*Node {
	out := []*Node{n}
	if n.group != nil {
		for _, id := range n.group.members[1:] {
			if m := f.nodes[id]; m != nil {
				out = append(out, m)
			}
		}
	}
	for _, id := range n.children {
		if c := f.nodes[id]; c != nil {
			out = append(out, f.subtree(c)...)
		}
	}
	return out
}

// contains reports whether id lies in n's subtree or groups.
func (f *Family) contains(n *Node, id ID) bool {
	for _, m := range f.subtree(n) {
		if m.id == id {
			return true
		}
	}
	return false
}

func (f *Family) lookup(id ID) (*Node, error) {
	n := f.nodes[id]
	if n == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return n, nil
}

// reject logs a refused operation and returns err unchanged.
func (f *Family) reject(op string, id ID, err error) error {
	f.logger.Warn("dock operation rejected", "op", op, "node", int(id), "err", err)
	return err
}

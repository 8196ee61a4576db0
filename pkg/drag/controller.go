package drag

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/geom"
	"github.com/matzehuels/dockpane/pkg/observability"
)

var (
	// ErrBusy is returned when a gesture starts while another one holds
	// the pointer capture.
	ErrBusy = errors.New("another drag is in progress")

	// ErrNoSession is returned when a session that is not the controller's
	// active gesture is passed back to it.
	ErrNoSession = errors.New("no such drag session")

	// ErrNotDraggable is returned when a hidden panel is asked to drag.
	ErrNotDraggable = errors.New("panel cannot be dragged")
)

// State is the phase of a dock drag.
type State int

const (
	Idle State = iota
	Dragging
	Snapped
	Free
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Snapped:
		return "snapped"
	case Free:
		return "free"
	}
	return "unknown"
}

// Option configures a Controller.
type Option func(*Controller)

// WithPresenter sets the overlay presenter. The default shows nothing.
func WithPresenter(p Presenter) Option { return func(c *Controller) { c.presenter = p } }

// WithGeometry sets the drop indicator geometry.
func WithGeometry(g Geometry) Option { return func(c *Controller) { c.geometry = g } }

// WithAutoResize selects live splitter resizing. When false, splitter
// drags show a hash bar and resize once on release.
func WithAutoResize(on bool) Option { return func(c *Controller) { c.autoResize = on } }

// WithLogger sets the logger. The family's logger is used by default.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// Controller turns pointer events into dock operations on one family.
type Controller struct {
	family     *dock.Family
	presenter  Presenter
	geometry   Geometry
	autoResize bool
	logger     *log.Logger

	session  *Session
	splitter *SplitterSession
}

// NewController returns a controller for f.
func NewController(f *dock.Family, opts ...Option) *Controller {
	c := &Controller{
		family:     f,
		presenter:  NopPresenter{},
		geometry:   DefaultGeometry(),
		autoResize: true,
		logger:     f.Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Family returns the family the controller drives.
func (c *Controller) Family() *dock.Family { return c.family }

// Geometry returns the drop indicator geometry.
func (c *Controller) Geometry() Geometry { return c.geometry }

// Busy reports whether a gesture holds the pointer capture.
func (c *Controller) Busy() bool { return c.session != nil || c.splitter != nil }

// Active returns the running dock drag, or nil.
func (c *Controller) Active() *Session { return c.session }

// ActiveSplitter returns the running splitter drag, or nil.
func (c *Controller) ActiveSplitter() *SplitterSession { return c.splitter }

// Session is one dock drag, from press to release.
type Session struct {
	ID   uuid.UUID
	Node dock.ID

	state   State
	grab    geom.Point
	zone    Zone
	started time.Time

	hint       Overlay
	center     Overlay
	centerOver dock.ID
	outer      []Overlay
}

// State returns the session's current phase.
func (s *Session) State() State { return s.state }

// Zone returns the zone claimed at the last pointer position.
func (s *Session) Zone() Zone { return s.zone }

// Begin starts dragging id with the pointer at pt. A docked panel is
// undocked first and floats under the pointer.
func (c *Controller) Begin(id dock.ID, pt geom.Point) (*Session, error) {
	if c.Busy() {
		return nil, ErrBusy
	}
	f := c.family
	n := f.GetDockFromID(id)
	if n == nil {
		return nil, fmt.Errorf("%w: %d", dock.ErrUnknownNode, id)
	}
	if n.Hidden() {
		return nil, fmt.Errorf("%w: %d is hidden", ErrNotDraggable, id)
	}
	if n.IsDocked() {
		if err := f.Undock(id, pt, true); err != nil {
			return nil, err
		}
	} else if !n.IsFloating() {
		return nil, fmt.Errorf("%w: %d", ErrNotDraggable, id)
	}
	f.Raise(id)

	s := &Session{
		ID:         uuid.New(),
		Node:       id,
		state:      Dragging,
		grab:       pt.Sub(n.Rect().TopLeft()),
		started:    time.Now(),
		centerOver: dock.None,
	}
	c.session = s
	f.Host().SetCapture(id)
	c.logger.Debug("drag start", "session", s.ID, "node", int(id), "at", pt.String())
	observability.Drag().OnDragStart(s.ID.String(), int(id))
	return s, nil
}

// Move tracks the pointer at pt. While a zone is claimed the panel stays
// put and a hint previews the drop; otherwise the panel follows the
// pointer.
func (c *Controller) Move(s *Session, pt geom.Point) (Zone, error) {
	if s == nil || s != c.session {
		return Zone{}, ErrNoSession
	}
	f := c.family
	n := f.GetDockFromID(s.Node)
	if n == nil {
		return Zone{}, c.lost(s)
	}
	z := Detect(f, c.geometry, s.Node, pt)
	if z.Claimed() {
		s.state = Snapped
	} else {
		s.state = Free
		if err := f.MoveFloating(s.Node, n.Rect().MoveTo(pt.Sub(s.grab))); err != nil {
			return Zone{}, err
		}
	}
	c.showIndicators(s, pt)
	c.showHint(s, z)
	return z, nil
}

// End releases the drag at pt. A claimed zone docks the panel there;
// anything else leaves it floating. Overlays and capture are always
// released.
func (c *Controller) End(s *Session, pt geom.Point) (Zone, error) {
	if s == nil || s != c.session {
		return Zone{}, ErrNoSession
	}
	f := c.family
	if f.GetDockFromID(s.Node) == nil {
		return Zone{}, c.lost(s)
	}
	z := Detect(f, c.geometry, s.Node, pt)
	c.finish(s)

	var err error
	if z.Claimed() {
		err = c.drop(s.Node, z)
	}
	if err != nil {
		c.logger.Warn("drop failed", "session", s.ID, "node", int(s.Node), "zone", z.String(), "err", err)
		z = Zone{}
	}
	c.logger.Debug("drag end", "session", s.ID, "node", int(s.Node), "zone", z.String())
	observability.Drag().OnDragEnd(s.ID.String(), int(s.Node), z.String(), time.Since(s.started))
	return z, err
}

// Cancel abandons the drag. The panel stays floating where it is.
func (c *Controller) Cancel(s *Session) error {
	if s == nil || s != c.session {
		return ErrNoSession
	}
	c.finish(s)
	observability.Drag().OnDragEnd(s.ID.String(), int(s.Node), Zone{}.String(), time.Since(s.started))
	return nil
}

// lost ends a session whose panel was destroyed mid-drag.
func (c *Controller) lost(s *Session) error {
	c.finish(s)
	c.logger.Warn("drag target gone", "session", s.ID, "node", int(s.Node))
	observability.Drag().OnDragEnd(s.ID.String(), int(s.Node), Zone{}.String(), time.Since(s.started))
	return fmt.Errorf("%w: %d", dock.ErrUnknownNode, s.Node)
}

func (c *Controller) drop(id dock.ID, z Zone) error {
	f := c.family
	if z.Kind == ZoneCenter {
		if err := f.DockInContainer(z.Target, id); err != nil {
			return err
		}
		return f.SelectNode(id)
	}

	r := f.GetDockFromID(id).Rect()
	size := r.Height()
	if z.Side.Horizontal() {
		size = r.Width()
	}
	if err := f.SetDockSize(id, size); err != nil {
		return err
	}
	if z.Kind == ZoneOuter {
		return f.DockOuter(id, z.Side)
	}
	return f.Dock(z.Target, id, z.Side)
}

func (c *Controller) finish(s *Session) {
	closeOverlay(&s.hint)
	closeOverlay(&s.center)
	for i := range s.outer {
		closeOverlay(&s.outer[i])
	}
	s.outer = nil
	s.centerOver = dock.None
	s.state = Idle
	c.session = nil
	c.family.Host().ReleaseCapture()
}

// showHint recreates the preview overlay whenever the zone changes.
func (c *Controller) showHint(s *Session, z Zone) {
	if z.same(s.zone) && (s.hint != nil) == z.Claimed() {
		return
	}
	closeOverlay(&s.hint)
	s.zone = z
	if z.Claimed() {
		s.hint = c.presenter.ShowOverlay(OverlayHint, z.Hint)
	}
}

// showIndicators keeps the center indicator over the panel under the
// pointer and the outer indicators up while the root is topmost.
func (c *Controller) showIndicators(s *Session, pt geom.Point) {
	f := c.family
	over := dock.None
	if t := f.GetDockFromPoint(pt, s.Node); t != nil {
		over = t.ID()
	}
	if over != s.centerOver {
		closeOverlay(&s.center)
		s.centerOver = over
		if over != dock.None {
			content := f.GetDockFromID(over).ContentRect()
			s.center = c.presenter.ShowOverlay(OverlayIndicator, c.geometry.CenterIndicator(content))
		}
	}

	top := f.TopmostAt(pt, s.Node)
	onRoot := top != nil && top.ID() == dock.RootID
	switch {
	case onRoot && s.outer == nil:
		root := f.Root()
		for _, side := range dock.Sides {
			if root.Style().Forbids(side) {
				continue
			}
			s.outer = append(s.outer, c.presenter.ShowOverlay(OverlayIndicator, c.geometry.OuterRect(root.Rect(), side)))
		}
	case !onRoot && s.outer != nil:
		for i := range s.outer {
			closeOverlay(&s.outer[i])
		}
		s.outer = nil
	}
}

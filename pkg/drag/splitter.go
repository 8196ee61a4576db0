package drag

import (
	"fmt"

	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/geom"
	"github.com/matzehuels/dockpane/pkg/observability"
)

// SplitterSession is one splitter drag. With auto-resize the owner is
// resized on every move; otherwise a hash bar tracks the pointer and the
// resize happens on release.
type SplitterSession struct {
	Splitter dock.Splitter

	live    bool
	preview geom.Rect
	bar     Overlay
}

// Preview returns the hash bar rectangle of a deferred drag. It is empty
// for live drags.
func (s *SplitterSession) Preview() geom.Rect { return s.preview }

// BeginSplitter starts dragging the splitter under pt.
func (c *Controller) BeginSplitter(pt geom.Point) (*SplitterSession, error) {
	if c.Busy() {
		return nil, ErrBusy
	}
	sp, ok := c.family.SplitterAt(pt)
	if !ok {
		return nil, fmt.Errorf("%w: no splitter at %s", ErrNotDraggable, pt)
	}
	s := &SplitterSession{Splitter: sp, live: c.autoResize}
	c.splitter = s
	c.family.Host().SetCapture(sp.Owner)
	c.logger.Debug("splitter start", "node", int(sp.Owner), "side", sp.Side.String(), "live", s.live)
	if !s.live {
		c.trackBar(s, pt)
	}
	return s, nil
}

// MoveSplitter tracks the pointer at pt.
func (c *Controller) MoveSplitter(s *SplitterSession, pt geom.Point) error {
	if s == nil || s != c.splitter {
		return ErrNoSession
	}
	if !s.live {
		c.trackBar(s, pt)
		return nil
	}
	return c.resize(s, pt)
}

// EndSplitter releases the splitter at pt and applies the final size.
func (c *Controller) EndSplitter(s *SplitterSession, pt geom.Point) error {
	if s == nil || s != c.splitter {
		return ErrNoSession
	}
	closeOverlay(&s.bar)
	s.preview = geom.Rect{}
	c.splitter = nil
	c.family.Host().ReleaseCapture()
	return c.resize(s, pt)
}

// CancelSplitter abandons a splitter drag. Live resizes already applied
// are kept.
func (c *Controller) CancelSplitter(s *SplitterSession) error {
	if s == nil || s != c.splitter {
		return ErrNoSession
	}
	closeOverlay(&s.bar)
	s.preview = geom.Rect{}
	c.splitter = nil
	c.family.Host().ReleaseCapture()
	return nil
}

func (c *Controller) resize(s *SplitterSession, pt geom.Point) error {
	owner := s.Splitter.Owner
	if err := c.family.ResizeFromSplitter(owner, pt); err != nil {
		return err
	}
	observability.Drag().OnSplitterDrag(int(owner), c.family.DockSize(owner))
	return nil
}

// trackBar moves the hash bar so it is centred on pt along the
// splitter's axis.
func (c *Controller) trackBar(s *SplitterSession, pt geom.Point) {
	r := s.Splitter.Rect
	half := s.Splitter.Thickness / 2
	if s.Splitter.Side.Horizontal() {
		r = r.MoveTo(geom.Pt(pt.X-half, r.Top))
	} else {
		r = r.MoveTo(geom.Pt(r.Left, pt.Y-half))
	}
	if r == s.preview && s.bar != nil {
		return
	}
	closeOverlay(&s.bar)
	s.preview = r
	s.bar = c.presenter.ShowOverlay(OverlayHashBar, r)
}

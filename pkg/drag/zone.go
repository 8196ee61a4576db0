package drag

import (
	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/geom"
)

// ZoneKind classifies a drop zone.
type ZoneKind int

const (
	// ZoneNone means no zone claims the pointer; a release leaves the
	// panel floating.
	ZoneNone ZoneKind = iota
	// ZoneCenter merges the panel into the target's tab group.
	ZoneCenter
	// ZoneInner docks the panel beside the target's content.
	ZoneInner
	// ZoneOuter docks the panel against the family root's edge.
	ZoneOuter
)

// Zone is the outcome of hit-testing the drop zones at one pointer
// position.
type Zone struct {
	Kind   ZoneKind
	Side   dock.Side
	Target dock.ID
	// Hint is the rectangle the panel would occupy if dropped now.
	Hint geom.Rect
}

// Claimed reports whether the zone would dock the panel on release.
func (z Zone) Claimed() bool { return z.Kind != ZoneNone }

func (z Zone) String() string {
	switch z.Kind {
	case ZoneCenter:
		return "center"
	case ZoneInner:
		return "inner-" + z.Side.String()
	case ZoneOuter:
		return "outer-" + z.Side.String()
	}
	return "none"
}

// same reports whether two zones need the same preview overlay.
func (z Zone) same(o Zone) bool {
	return z.Kind == o.Kind && z.Side == o.Side && z.Target == o.Target && z.Hint == o.Hint
}

// baseIndicator is the edge length the sub-zone proportions are given in.
const baseIndicator = 88

// Geometry sizes the drop indicators.
type Geometry struct {
	// Indicator is the edge length of the square center indicator.
	Indicator int
	// OuterIndicator is the edge length of each outer indicator.
	OuterIndicator int
	// OuterInset is the gap between an outer indicator and the root's edge.
	OuterInset int
}

// DefaultGeometry returns the pixel geometry used by graphical hosts.
func DefaultGeometry() Geometry {
	return Geometry{Indicator: 88, OuterIndicator: 32, OuterInset: 10}
}

// sub-zones of the center indicator, in baseIndicator units.
var (
	centerSides = map[dock.Side]geom.Rect{
		dock.SideLeft:   geom.R(0, 29, 31, 58),
		dock.SideTop:    geom.R(29, 0, 58, 31),
		dock.SideRight:  geom.R(55, 29, 87, 58),
		dock.SideBottom: geom.R(29, 55, 58, 87),
	}
	centerMiddle = geom.R(31, 31, 56, 57)
)

func (g Geometry) scale(r geom.Rect) geom.Rect {
	s := func(v int) int { return v * g.Indicator / baseIndicator }
	return geom.R(s(r.Left), s(r.Top), s(r.Right), s(r.Bottom))
}

// CenterIndicator returns the square center indicator placed over a
// target's content rectangle.
func (g Geometry) CenterIndicator(content geom.Rect) geom.Rect {
	x := content.Left + (content.Width()-g.Indicator)/2
	y := content.Top + (content.Height()-g.Indicator)/2
	return geom.XYWH(x, y, g.Indicator, g.Indicator)
}

// centerZone returns the sub-zone of the center indicator at content for
// side, or the middle sub-zone for dock.SideNone.
func (g Geometry) centerZone(content geom.Rect, side dock.Side) geom.Rect {
	r := centerMiddle
	if side != dock.SideNone {
		r = centerSides[side]
	}
	tl := g.CenterIndicator(content).TopLeft()
	return g.scale(r).Offset(tl.X, tl.Y)
}

// OuterRect returns the indicator for docking against side of the
// root rectangle rc.
func (g Geometry) OuterRect(rc geom.Rect, side dock.Side) geom.Rect {
	s := g.OuterIndicator
	xMid := rc.Left + (rc.Width()-s)/2
	yMid := rc.Top + (rc.Height()-s)/2
	switch side {
	case dock.SideLeft:
		return geom.XYWH(rc.Left+g.OuterInset, yMid, s, s)
	case dock.SideRight:
		return geom.XYWH(rc.Right-g.OuterInset-s, yMid, s, s)
	case dock.SideTop:
		return geom.XYWH(xMid, rc.Top+g.OuterInset, s, s)
	case dock.SideBottom:
		return geom.XYWH(xMid, rc.Bottom-g.OuterInset-s, s, s)
	}
	return geom.Rect{}
}

// Detect hit-tests the drop zones for the panel drag at pt. Detectors run
// in priority order and the first claim wins.
func Detect(f *dock.Family, g Geometry, drag dock.ID, pt geom.Point) Zone {
	n := f.GetDockFromID(drag)
	if n == nil {
		return Zone{}
	}
	size := n.Rect()
	if t := f.GetDockFromPoint(pt, drag); t != nil && t.ID() != drag {
		content := t.ContentRect()
		if acceptsMerge(t) && g.centerZone(content, dock.SideNone).Contains(pt) {
			return Zone{Kind: ZoneCenter, Target: t.ID(), Hint: content}
		}
		for _, side := range dock.Sides {
			if t.Style().Forbids(side) {
				continue
			}
			if g.centerZone(content, side).Contains(pt) {
				return Zone{
					Kind:   ZoneInner,
					Side:   side,
					Target: t.ID(),
					Hint:   hintRect(content, content, size, side, f.SplitterWidth()),
				}
			}
		}
	}
	root := f.Root()
	if top := f.TopmostAt(pt, drag); top == nil || top.ID() != root.ID() {
		return Zone{}
	}
	for _, side := range dock.Sides {
		if root.Style().Forbids(side) {
			continue
		}
		if g.OuterRect(root.Rect(), side).Contains(pt) {
			return Zone{
				Kind:   ZoneOuter,
				Side:   side,
				Target: root.ID(),
				Hint:   hintRect(root.Rect(), root.ContentRect(), size, side, f.SplitterWidth()),
			}
		}
	}
	return Zone{}
}

// acceptsMerge reports whether t can take the dragged panel as a tab.
func acceptsMerge(t *dock.Node) bool {
	return t.Kind() == dock.Grouped || t.Style().Has(dock.Tabbed)
}

// hintRect slices area to the dragged panel's extent along side. When the
// panel would not fit into limit, the slice falls back to half of limit.
func hintRect(area, limit, panel geom.Rect, side dock.Side, bar int) geom.Rect {
	size, whole := panel.Width(), limit.Width()
	if !side.Horizontal() {
		size, whole = panel.Height(), limit.Height()
	}
	if size >= whole-bar {
		size = max(whole/2-bar, bar)
	}
	r := area
	switch side {
	case dock.SideLeft:
		r.Right = r.Left + size
	case dock.SideRight:
		r.Left = r.Right - size
	case dock.SideTop:
		r.Bottom = r.Top + size
	case dock.SideBottom:
		r.Top = r.Bottom - size
	}
	return r
}

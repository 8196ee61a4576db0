package tui

import (
	"slices"

	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/drag"
	"github.com/matzehuels/dockpane/pkg/geom"
)

// screen is the terminal side of the engine. Surfaces are cell regions
// painted on every frame, so it only keeps bookkeeping: which nodes exist,
// who holds the pointer and which drag overlays are up.
type screen struct {
	surfaces map[dock.ID]bool
	captured dock.ID
	passes   int
	overlays []*overlay
}

func newScreen() *screen {
	return &screen{surfaces: make(map[dock.ID]bool), captured: dock.None}
}

func (s *screen) CreateSurface(id dock.ID) error {
	s.surfaces[id] = true
	return nil
}

func (s *screen) DestroySurface(id dock.ID) { delete(s.surfaces, id) }

func (s *screen) ApplyLayout([]dock.Placement) { s.passes++ }

func (s *screen) SetCapture(id dock.ID) { s.captured = id }

func (s *screen) ReleaseCapture() { s.captured = dock.None }

func (s *screen) ShowOverlay(kind drag.OverlayKind, rect geom.Rect) drag.Overlay {
	o := &overlay{screen: s, kind: kind, rect: rect}
	s.overlays = append(s.overlays, o)
	return o
}

type overlay struct {
	screen *screen
	kind   drag.OverlayKind
	rect   geom.Rect
}

func (o *overlay) Close() {
	o.screen.overlays = slices.DeleteFunc(o.screen.overlays, func(x *overlay) bool { return x == o })
}

var (
	_ dock.Host      = (*screen)(nil)
	_ drag.Presenter = (*screen)(nil)
)

package drag

import "github.com/matzehuels/dockpane/pkg/geom"

// OverlayKind says what a transient overlay represents.
type OverlayKind int

const (
	// OverlayHint previews the rectangle a dropped panel would occupy.
	OverlayHint OverlayKind = iota
	// OverlayIndicator marks a target's center or outer drop indicator.
	OverlayIndicator
	// OverlayHashBar previews a splitter position during a deferred resize.
	OverlayHashBar
)

func (k OverlayKind) String() string {
	switch k {
	case OverlayHint:
		return "hint"
	case OverlayIndicator:
		return "indicator"
	case OverlayHashBar:
		return "hashbar"
	}
	return "unknown"
}

// Overlay is a transient surface shown during a gesture.
type Overlay interface {
	Close()
}

// Presenter creates overlays. Hosts implement it to draw hints and
// indicators; overlays are never resized, only closed and recreated.
type Presenter interface {
	ShowOverlay(kind OverlayKind, rect geom.Rect) Overlay
}

// NopPresenter shows nothing.
type NopPresenter struct{}

// ShowOverlay returns an overlay whose Close does nothing.
func (NopPresenter) ShowOverlay(OverlayKind, geom.Rect) Overlay { return nopOverlay{} }

type nopOverlay struct{}

func (nopOverlay) Close() {}

func closeOverlay(o *Overlay) {
	if *o != nil {
		(*o).Close()
		*o = nil
	}
}

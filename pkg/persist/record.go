// Package persist flattens a dock family into records and rebuilds it.
//
// [Save] walks a family parents first and emits one [Record] per visible
// node plus the active member of every tab group. [Load] rebuilds the
// family from records in any order: top-level records first, then any
// record whose parent already exists, until nothing more resolves. A
// record whose parent never appears fails the whole load and leaves the
// family empty, so callers can fall back to a default layout.
//
// Snapshots travel through a [store.Store] via [Adapter], or as TOML/JSON
// files via [ReadFile] and [WriteFile].
package persist

import (
	"errors"

	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/geom"
)

var (
	// ErrOrphanRecord is returned by Load when a record's parent is never
	// found.
	ErrOrphanRecord = errors.New("record references a missing parent")

	// ErrNotFound is returned when no layout is saved under a name.
	ErrNotFound = errors.New("layout not found")
)

// Record is one persisted node.
type Record struct {
	ID dock.ID `json:"id" toml:"id"`
	// ParentID is the node's dock parent or tab group host. Zero means
	// the node hangs off the root: docked to it when Style carries a
	// side, floating otherwise.
	ParentID dock.ID    `json:"parent" toml:"parent"`
	Style    dock.Style `json:"style" toml:"style"`
	// Size is the absolute dock size at save time.
	Size    int       `json:"size" toml:"size"`
	Rect    geom.Rect `json:"rect,omitzero" toml:"rect,omitempty"`
	Caption string    `json:"caption,omitempty" toml:"caption,omitempty"`
}

// Floating reports whether the record restores a floating panel.
func (r Record) Floating() bool {
	return r.ParentID == dock.RootID && r.Style.Side() == dock.SideNone && r.Style.OuterSide() == dock.SideNone
}

// Active records which member of a tab group is shown.
type Active struct {
	Host  dock.ID `json:"host" toml:"host"`
	Index int     `json:"index" toml:"index"`
}

// Snapshot is a saved layout.
type Snapshot struct {
	// Revision changes on every save.
	Revision string    `json:"revision" toml:"revision"`
	Bounds   geom.Rect `json:"bounds" toml:"bounds"`
	Records  []Record  `json:"records" toml:"records"`
	Active   []Active  `json:"active,omitempty" toml:"active,omitempty"`
}

package persist

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/dockpane/pkg/dock"
	perrors "github.com/matzehuels/dockpane/pkg/errors"
)

// ViewFactory supplies the content view for a restored node. It may return
// nil for nodes without content.
type ViewFactory func(rec Record) dock.View

// Load rebuilds snap's nodes into f, which should hold only its root. The
// work runs as one layout batch. Records whose parent never resolves make
// the load fail: everything restored so far is closed and the returned
// error wraps ErrOrphanRecord.
func Load(f *dock.Family, snap *Snapshot, views ViewFactory) error {
	if snap == nil {
		return perrors.New(perrors.ErrCodeInvalidLayout, "nil snapshot")
	}
	var err error
	f.Batch(func() {
		err = load(f, snap, views)
		if err != nil {
			f.CloseAll()
		}
	})
	if err != nil {
		f.Logger().Warn("layout load failed", "records", len(snap.Records), "err", err)
	}
	return err
}

func load(f *dock.Family, snap *Snapshot, views ViewFactory) error {
	pending := slices.Clone(snap.Records)
	for len(pending) > 0 {
		var ready, rest []Record
		for _, r := range pending {
			if r.ParentID == dock.RootID || f.GetDockFromID(r.ParentID) != nil {
				ready = append(ready, r)
			} else {
				rest = append(rest, r)
			}
		}
		if len(ready) == 0 {
			return orphans(rest)
		}
		for _, r := range order(ready) {
			if err := restore(f, r, views); err != nil {
				return perrors.Wrap(perrors.ErrCodeInvalidLayout, err, "restore node %d", r.ID)
			}
		}
		pending = rest
	}

	for _, a := range snap.Active {
		if err := f.SelectGroupMember(a.Host, a.Index); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidLayout, err, "select tab %d of %d", a.Index, a.Host)
		}
	}
	return nil
}

// order puts outer-docked records in reverse. Outer docking inserts at the
// front of the root's children, so the last one restored ends up first.
func order(rs []Record) []Record {
	var outer []int
	for i, r := range rs {
		if r.ParentID == dock.RootID && r.Style.OuterSide() != dock.SideNone {
			outer = append(outer, i)
		}
	}
	out := slices.Clone(rs)
	for i, j := 0, len(outer)-1; i < j; i, j = i+1, j-1 {
		out[outer[i]], out[outer[j]] = out[outer[j]], out[outer[i]]
	}
	return out
}

func restore(f *dock.Family, r Record, views ViewFactory) error {
	var view dock.View
	if views != nil {
		view = views(r)
	}
	n := dock.NewNode(r.ID, r.Caption, view)
	if r.Floating() {
		return f.AddUndockedChild(n, r.Style, r.Size, r.Rect)
	}
	if err := f.AddDockedChild(r.ParentID, n, r.Style, r.Size); err != nil {
		return err
	}
	if r.Style.Has(dock.Container) {
		return nil
	}
	return f.SetDockSize(r.ID, r.Size)
}

func orphans(rs []Record) error {
	errs := make([]error, 0, len(rs))
	for _, r := range rs {
		errs = append(errs, fmt.Errorf("node %d: parent %d", r.ID, r.ParentID))
	}
	return perrors.Wrap(perrors.ErrCodeOrphanRecord,
		fmt.Errorf("%w: %w", ErrOrphanRecord, errors.Join(errs...)),
		"%d unresolved records", len(rs))
}

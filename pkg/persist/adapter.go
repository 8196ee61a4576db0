package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/dockpane/pkg/errors"
	"github.com/matzehuels/dockpane/pkg/geom"
	"github.com/matzehuels/dockpane/pkg/store"
)

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithTTL expires saved layouts after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) AdapterOption { return func(a *Adapter) { a.ttl = ttl } }

// WithAdapterLogger sets the adapter's logger.
func WithAdapterLogger(l *log.Logger) AdapterOption { return func(a *Adapter) { a.logger = l } }

// Adapter keeps snapshots in a flat key/value store. A layout named n
// occupies these keys:
//
//	n/dock/meta        revision and bounds
//	n/dock/child/<i>   one record per node, i counting from 0
//	n/dock/active/<i>  one active tab selection per group
//
// Numbered keys are read until the first miss.
type Adapter struct {
	store  store.Store
	ttl    time.Duration
	logger *log.Logger
}

// NewAdapter returns an adapter over s.
func NewAdapter(s store.Store, opts ...AdapterOption) *Adapter {
	a := &Adapter{store: s, logger: log.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type meta struct {
	Revision string    `json:"revision"`
	Bounds   geom.Rect `json:"bounds"`
}

func metaKey(name string) string          { return name + "/dock/meta" }
func childKey(name string, i int) string  { return fmt.Sprintf("%s/dock/child/%d", name, i) }
func activeKey(name string, i int) string { return fmt.Sprintf("%s/dock/active/%d", name, i) }
func validName(name string) error         { return perrors.ValidateLayoutName(name) }

func storeErr(err error, op, name string) error {
	return perrors.Wrap(perrors.ErrCodeStoreUnavailable, err, "%s layout %q", op, name)
}

// Save replaces the layout stored under name with snap.
func (a *Adapter) Save(ctx context.Context, name string, snap *Snapshot) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := a.Delete(ctx, name); err != nil {
		return err
	}
	for i, r := range snap.Records {
		if err := a.put(ctx, childKey(name, i), r); err != nil {
			return storeErr(err, "save", name)
		}
	}
	for i, act := range snap.Active {
		if err := a.put(ctx, activeKey(name, i), act); err != nil {
			return storeErr(err, "save", name)
		}
	}
	m := meta{Revision: snap.Revision, Bounds: snap.Bounds}
	if err := a.put(ctx, metaKey(name), m); err != nil {
		return storeErr(err, "save", name)
	}
	a.logger.Debug("layout saved", "name", name, "records", len(snap.Records), "revision", snap.Revision)
	return nil
}

// Load reads the layout stored under name. A missing layout returns an
// error wrapping ErrNotFound.
func (a *Adapter) Load(ctx context.Context, name string) (*Snapshot, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	var m meta
	ok, err := a.get(ctx, metaKey(name), &m)
	if err != nil {
		return nil, storeErr(err, "load", name)
	}
	if !ok {
		return nil, perrors.Wrap(perrors.ErrCodeLayoutNotFound, ErrNotFound, "layout %q", name)
	}

	snap := &Snapshot{Revision: m.Revision, Bounds: m.Bounds}
	for i := 0; ; i++ {
		var r Record
		ok, err := a.get(ctx, childKey(name, i), &r)
		if err != nil {
			return nil, storeErr(err, "load", name)
		}
		if !ok {
			break
		}
		snap.Records = append(snap.Records, r)
	}
	for i := 0; ; i++ {
		var act Active
		ok, err := a.get(ctx, activeKey(name, i), &act)
		if err != nil {
			return nil, storeErr(err, "load", name)
		}
		if !ok {
			break
		}
		snap.Active = append(snap.Active, act)
	}
	return snap, nil
}

// Delete removes the layout stored under name. Deleting a missing layout
// is not an error.
func (a *Adapter) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	for _, key := range []func(string, int) string{childKey, activeKey} {
		for i := 0; ; i++ {
			k := key(name, i)
			_, hit, err := a.store.Get(ctx, k)
			if err != nil {
				return storeErr(err, "delete", name)
			}
			if !hit {
				break
			}
			if err := a.store.Delete(ctx, k); err != nil {
				return storeErr(err, "delete", name)
			}
		}
	}
	if err := a.store.Delete(ctx, metaKey(name)); err != nil {
		return storeErr(err, "delete", name)
	}
	return nil
}

// Exists reports whether a layout is stored under name.
func (a *Adapter) Exists(ctx context.Context, name string) (bool, error) {
	if err := validName(name); err != nil {
		return false, err
	}
	_, hit, err := a.store.Get(ctx, metaKey(name))
	if err != nil {
		return false, storeErr(err, "load", name)
	}
	return hit, nil
}

func (a *Adapter) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, key, data, a.ttl)
}

func (a *Adapter) get(ctx context.Context, key string, v any) (bool, error) {
	data, hit, err := a.store.Get(ctx, key)
	if err != nil || !hit {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

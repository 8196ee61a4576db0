package store

import (
	"context"
	"time"

	"github.com/matzehuels/dockpane/pkg/observability"
)

// Clearer is implemented by stores that can drop all their values.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Instrumented reports every read and write of the wrapped store to
// observability.Store().
type Instrumented struct {
	Store
	backend string
}

// Instrument wraps s, labelling its events with backend.
func Instrument(s Store, backend string) *Instrumented {
	return &Instrumented{Store: s, backend: backend}
}

// Get reads through to the wrapped store.
func (s *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	data, hit, err := s.Store.Get(ctx, key)
	observability.Store().OnStoreGet(ctx, s.backend, hit, time.Since(start), err)
	return data, hit, err
}

// Set writes through to the wrapped store.
func (s *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	start := time.Now()
	err := s.Store.Set(ctx, key, data, ttl)
	observability.Store().OnStoreSet(ctx, s.backend, len(data), time.Since(start), err)
	return err
}

// Clear clears the wrapped store if it supports it.
func (s *Instrumented) Clear(ctx context.Context) error {
	c, ok := s.Store.(Clearer)
	if !ok {
		return ErrNotClearable
	}
	return c.Clear(ctx)
}

// Unwrap returns the wrapped store.
func (s *Instrumented) Unwrap() Store { return s.Store }

var _ Store = (*Instrumented)(nil)

// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about dock mutations, layout passes, drag gestures, layout
// store I/O, and API requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Dock and drag hooks carry no context: they fire from the single goroutine
// that owns a dock family and must not block.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDockHooks(&myDockHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Dock().OnDock(id, target, "left")
//	observability.Store().OnStoreGet(ctx, "redis", hit, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Dock Hooks
// =============================================================================

// DockHooks receives events from dock tree mutations.
type DockHooks interface {
	// OnDock records a node docked under target on side ("outer" docks use
	// the root as target).
	OnDock(node, target int, side string)

	// OnUndock records a node leaving the tree. Floating is false when the
	// node was hidden instead of shown as a floating panel.
	OnUndock(node int, floating bool)

	// OnMerge records a node merged into host's tab group.
	OnMerge(host, node int)

	// OnClose records a node destroyed.
	OnClose(node int)

	// OnLayout records a completed layout pass.
	OnLayout(nodes int, duration time.Duration)
}

// =============================================================================
// Drag Hooks
// =============================================================================

// DragHooks receives events from interactive drag gestures.
type DragHooks interface {
	// OnDragStart records the start of a dock drag.
	OnDragStart(session string, node int)

	// OnDragEnd records the outcome. Zone is "none" when the node was
	// left floating.
	OnDragEnd(session string, node int, zone string, duration time.Duration)

	// OnSplitterDrag records a finished splitter drag.
	OnSplitterDrag(node, size int)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from layout store backends.
type StoreHooks interface {
	// OnStoreGet records a read. Hit is false for misses.
	OnStoreGet(ctx context.Context, backend string, hit bool, duration time.Duration, err error)

	// OnStoreSet records a write.
	OnStoreSet(ctx context.Context, backend string, size int, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the layout API server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response written for it.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDockHooks is a no-op implementation of DockHooks.
type NoopDockHooks struct{}

func (NoopDockHooks) OnDock(int, int, string)     {}
func (NoopDockHooks) OnUndock(int, bool)          {}
func (NoopDockHooks) OnMerge(int, int)            {}
func (NoopDockHooks) OnClose(int)                 {}
func (NoopDockHooks) OnLayout(int, time.Duration) {}

// NoopDragHooks is a no-op implementation of DragHooks.
type NoopDragHooks struct{}

func (NoopDragHooks) OnDragStart(string, int)                      {}
func (NoopDragHooks) OnDragEnd(string, int, string, time.Duration) {}
func (NoopDragHooks) OnSplitterDrag(int, int)                      {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreGet(context.Context, string, bool, time.Duration, error) {}
func (NoopStoreHooks) OnStoreSet(context.Context, string, int, time.Duration, error)  {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	dockHooks  DockHooks  = NoopDockHooks{}
	dragHooks  DragHooks  = NoopDragHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetDockHooks registers custom dock hooks.
// This should be called once at application startup before any family is built.
func SetDockHooks(h DockHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dockHooks = h
	}
}

// SetDragHooks registers custom drag hooks.
func SetDragHooks(h DragHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dragHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store is opened.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Dock returns the registered dock hooks.
func Dock() DockHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dockHooks
}

// Drag returns the registered drag hooks.
func Drag() DragHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dragHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	dockHooks = NoopDockHooks{}
	dragHooks = NoopDragHooks{}
	storeHooks = NoopStoreHooks{}
	httpHooks = NoopHTTPHooks{}
}

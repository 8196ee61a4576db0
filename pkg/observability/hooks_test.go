package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Dock hooks
	d := NoopDockHooks{}
	d.OnDock(1, 0, "left")
	d.OnUndock(1, true)
	d.OnMerge(2, 3)
	d.OnClose(3)
	d.OnLayout(4, time.Millisecond)

	// Drag hooks
	g := NoopDragHooks{}
	g.OnDragStart("session", 1)
	g.OnDragEnd("session", 1, "inner-left", time.Second)
	g.OnSplitterDrag(1, 120)

	// Store hooks
	s := NoopStoreHooks{}
	s.OnStoreGet(ctx, "file", true, time.Millisecond, nil)
	s.OnStoreSet(ctx, "redis", 1024, time.Millisecond, nil)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/api/layouts/main")
	h.OnResponse(ctx, "GET", "/api/layouts/main", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Dock().(NoopDockHooks); !ok {
		t.Error("Dock() should return NoopDockHooks by default")
	}
	if _, ok := Drag().(NoopDragHooks); !ok {
		t.Error("Drag() should return NoopDragHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customDock := &testDockHooks{}
	SetDockHooks(customDock)
	if Dock() != customDock {
		t.Error("SetDockHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Dock().(NoopDockHooks); !ok {
		t.Error("Reset() should restore NoopDockHooks")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Reset() should restore NoopStoreHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testDockHooks{}
	SetDockHooks(custom)
	SetDockHooks(nil)

	if Dock() != custom {
		t.Error("SetDockHooks(nil) should not replace existing hooks")
	}
	Reset()
}

func TestCustomDockHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testDockHooks{}
	SetDockHooks(custom)
	Dock().OnDock(7, 0, "top")
	Dock().OnLayout(3, time.Millisecond)

	if custom.docks != 1 || custom.layouts != 1 {
		t.Errorf("docks=%d layouts=%d, want 1 and 1", custom.docks, custom.layouts)
	}
}

type testDockHooks struct {
	NoopDockHooks
	docks, layouts int
}

func (h *testDockHooks) OnDock(int, int, string)     { h.docks++ }
func (h *testDockHooks) OnLayout(int, time.Duration) { h.layouts++ }

type testStoreHooks struct{ NoopStoreHooks }

package dock

import (
	"errors"
	"testing"

	"github.com/matzehuels/dockpane/pkg/geom"
)

func TestGroupMembership(t *testing.T) {
	g := newGroup(1)
	g.addMember(2)
	g.addMember(3)
	g.addMember(2)
	if got := g.Members(); len(got) != 3 {
		t.Fatalf("members = %v, want 3 entries", got)
	}

	tests := []struct {
		name       string
		op         func() bool
		wantOK     bool
		wantActive int
	}{
		{"select out of range", func() bool { return g.selectMember(7) }, false, 0},
		{"select negative", func() bool { return g.selectMember(-1) }, false, 0},
		{"select last", func() bool { return g.selectMember(2) }, true, 2},
		{"remove absent", func() bool { return g.removeMember(9) }, false, 2},
		{"remove before active", func() bool { return g.removeMember(2) }, true, 1},
		{"remove active", func() bool { return g.removeMember(3) }, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ok := tt.op(); ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if g.Active() != tt.wantActive {
				t.Errorf("active = %d, want %d", g.Active(), tt.wantActive)
			}
		})
	}
}

func groupOf(t *testing.T, f *Family, host ID, members ...ID) {
	t.Helper()
	for _, id := range members {
		n := NewNode(id, "tab", &fakeView{})
		if err := f.AddDockedChild(host, n, Container, 0); err != nil {
			t.Fatalf("merge %d into %d: %v", id, host, err)
		}
	}
}

func TestDockInContainerCreatesGroup(t *testing.T) {
	f, _ := newFamily(t, 800, 600)
	h := addDocked(t, f, RootID, 1, SideLeft, 300)
	groupOf(t, f, 1, 2)

	if h.Kind() != Grouped {
		t.Fatalf("host kind = %v, want grouped", h.Kind())
	}
	m := f.GetDockFromID(2)
	if m.GroupHost() != 1 || m.Parent() != None || !m.IsDocked() {
		t.Errorf("member host=%d parent=%d docked=%v", m.GroupHost(), m.Parent(), m.IsDocked())
	}
	if m.Ancestor() != RootID {
		t.Errorf("member ancestor = %d", m.Ancestor())
	}
	if f.DockSize(2) != 0 {
		t.Errorf("tab DockSize = %d, want 0", f.DockSize(2))
	}
	mustVerify(t, f)
}

func TestDockInContainerTransfersGroup(t *testing.T) {
	f, _ := newFamily(t, 800, 600)
	host := addDocked(t, f, RootID, 1, SideLeft, 300)

	src := addFloating(t, f, 5, geom.XYWH(400, 100, 200, 200))
	groupOf(t, f, 5, 6)
	child := addDocked(t, f, 5, 7, SideTop, 50)

	if err := f.DockInContainer(host.ID(), src.ID()); err != nil {
		t.Fatal(err)
	}
	mustVerify(t, f)

	if got, want := host.Group().Members(), []ID{1, 6, 5}; !equalIDs(got, want) {
		t.Errorf("members = %v, want %v", got, want)
	}
	if src.Parent() != None || src.Group() != nil || len(src.Children()) != 0 {
		t.Errorf("source still a tree node: parent=%d group=%v children=%v", src.Parent(), src.Group(), src.Children())
	}
	if child.Parent() != host.ID() {
		t.Errorf("source child parent = %d, want %d", child.Parent(), host.ID())
	}
	if len(f.Floating()) != 0 {
		t.Errorf("floating = %v, want none", f.Floating())
	}
}

func TestDockInContainerRedirectsToHost(t *testing.T) {
	f, _ := newFamily(t, 800, 600)
	addDocked(t, f, RootID, 1, SideLeft, 300)
	groupOf(t, f, 1, 2)
	addFloating(t, f, 3, geom.XYWH(0, 0, 50, 50))

	if err := f.DockInContainer(2, 3); err != nil {
		t.Fatal(err)
	}
	if got := f.GetDockFromID(3).GroupHost(); got != 1 {
		t.Errorf("host = %d, want 1", got)
	}
	mustVerify(t, f)
}

func TestDockInContainerRejections(t *testing.T) {
	f, _ := newFamily(t, 800, 600)
	a := addDocked(t, f, RootID, 1, SideLeft, 300)
	fl := addFloating(t, f, 2, geom.XYWH(0, 0, 100, 100))
	addDocked(t, f, 2, 3, SideLeft, 20)

	tests := []struct {
		name   string
		target ID
		id     ID
		err    error
	}{
		{"root target", RootID, fl.ID(), ErrRootNode},
		{"docked source", fl.ID(), a.ID(), ErrAlreadyDocked},
		{"into own subtree", 3, fl.ID(), ErrWouldCycle},
		{"unknown", 1, 42, ErrUnknownNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := snapshot(f)
			if err := f.DockInContainer(tt.target, tt.id); !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if snapshot(f) != before {
				t.Error("tree changed")
			}
		})
	}
}

func TestUndockContainerMember(t *testing.T) {
	f, _ := newFamily(t, 800, 600)
	h := addDocked(t, f, RootID, 1, SideLeft, 300)
	groupOf(t, f, 1, 2, 3)

	if err := f.UndockContainer(1, 3, geom.Pt(500, 300), true); err != nil {
		t.Fatal(err)
	}
	m := f.GetDockFromID(3)
	if !m.IsFloating() || m.GroupHost() != None || m.Style()&Container != 0 {
		t.Errorf("member floating=%v host=%d style=%#x", m.IsFloating(), m.GroupHost(), uint32(m.Style()))
	}
	if got := h.Group().Members(); !equalIDs(got, []ID{1, 2}) {
		t.Errorf("members = %v", got)
	}

	if err := f.UndockContainer(1, 2, geom.Pt(500, 300), true); err != nil {
		t.Fatal(err)
	}
	if h.Kind() != Plain {
		t.Errorf("group with only its host was not demoted")
	}
	mustVerify(t, f)
}

func TestUndockContainerHostPromotesMember(t *testing.T) {
	f, _ := newFamily(t, 800, 600)
	h := addDocked(t, f, RootID, 1, SideLeft, 300)
	sib := addDocked(t, f, RootID, 9, SideTop, 100)
	groupOf(t, f, 1, 2, 3)
	child := addDocked(t, f, 1, 4, SideBottom, 100)
	if err := f.SelectGroupMember(1, 2); err != nil {
		t.Fatal(err)
	}
	ratio := h.Ratio()

	if err := f.UndockContainer(1, 1, geom.Pt(500, 300), true); err != nil {
		t.Fatal(err)
	}
	mustVerify(t, f)

	nw := f.GetDockFromID(2)
	if got := f.Root().Children(); !equalIDs(got, []ID{2, sib.ID()}) {
		t.Errorf("root children = %v, want [2 9]", got)
	}
	if nw.Side() != SideLeft || nw.Ratio() != ratio || nw.Parent() != RootID {
		t.Errorf("new host side=%v ratio=%v parent=%d", nw.Side(), nw.Ratio(), nw.Parent())
	}
	if got := nw.Group().Members(); !equalIDs(got, []ID{2, 3}) {
		t.Errorf("new members = %v, want [2 3]", got)
	}
	if nw.Group().ActiveMember() != 3 {
		t.Errorf("active = %d, want 3 kept selected", nw.Group().ActiveMember())
	}
	if child.Parent() != 2 {
		t.Errorf("child parent = %d, want 2", child.Parent())
	}
	if !h.IsFloating() || h.Kind() != Plain {
		t.Errorf("old host floating=%v kind=%v", h.IsFloating(), h.Kind())
	}
}

func TestUndockTabRoutesThroughContainer(t *testing.T) {
	f, _ := newFamily(t, 800, 600)
	addDocked(t, f, RootID, 1, SideLeft, 300)
	groupOf(t, f, 1, 2)

	if err := f.Undock(2, geom.Pt(10, 10), true); err != nil {
		t.Fatal(err)
	}
	if !f.GetDockFromID(2).IsFloating() {
		t.Error("tab not floating")
	}
	if err := f.UndockContainer(1, 2, geom.Pt(10, 10), true); !errors.Is(err, ErrNotMember) {
		t.Errorf("second undock err = %v, want ErrNotMember", err)
	}
	mustVerify(t, f)
}

func TestHideGroupHostKeepsGroup(t *testing.T) {
	f, _ := newFamily(t, 800, 600)
	addDocked(t, f, RootID, 1, SideLeft, 300)
	groupOf(t, f, 1, 2, 3)

	if err := f.Close(1); err != nil {
		t.Fatal(err)
	}
	if f.GetDockFromID(1) != nil {
		t.Error("closed host still registered")
	}
	nw := f.GetDockFromID(2)
	if nw.Parent() != RootID || nw.Group() == nil || nw.Group().Len() != 2 {
		t.Errorf("group lost: parent=%d group=%v", nw.Parent(), nw.Group())
	}
	mustVerify(t, f)
}

func TestSelectedTabGetsView(t *testing.T) {
	f := New(geom.R(0, 0, 800, 600), WithLogger(quiet()), WithCaptionHeight(20))
	h := addDocked(t, f, RootID, 1, SideLeft, 300)
	groupOf(t, f, 1, 2)
	h.caption = "host"
	f.GetDockFromID(2).caption = "second"

	host := &fakeHost{}
	f.host = host
	if err := f.SelectGroupMember(1, 1); err != nil {
		t.Fatal(err)
	}
	hv := h.View().(*fakeView)
	mv := f.GetDockFromID(2).View().(*fakeView)
	if !hv.rect.Empty() {
		t.Errorf("inactive host view placed at %v", hv.rect)
	}
	if mv.rect != geom.R(0, 20, 300, 600) {
		t.Errorf("active tab view = %v", mv.rect)
	}
	for _, p := range host.last {
		if p.ID == 1 && p.Caption != "second" {
			t.Errorf("host caption = %q, want active tab caption", p.Caption)
		}
	}
	if err := f.SelectGroupMember(1, 5); err != nil || h.Group().Active() != 1 {
		t.Errorf("out-of-range select changed state: err=%v active=%d", err, h.Group().Active())
	}
}

func TestMergeGroupedNodeMovesAllMembers(t *testing.T) {
	f, _ := newFamily(t, 800, 600)
	host := addDocked(t, f, RootID, 1, SideRight, 200)
	groupOf(t, f, 1, 2)

	node := addFloating(t, f, 10, geom.XYWH(100, 100, 200, 200))
	groupOf(t, f, 10, 11)
	addDocked(t, f, 10, 12, SideLeft, 50)
	addDocked(t, f, 10, 13, SideTop, 50)
	before := f.Len()

	if err := f.DockInContainer(host.ID(), node.ID()); err != nil {
		t.Fatal(err)
	}
	mustVerify(t, f)
	if got, want := host.Group().Members(), []ID{1, 2, 11, 10}; !equalIDs(got, want) {
		t.Errorf("members = %v, want %v", got, want)
	}
	if f.Len() != before {
		t.Errorf("family size changed %d -> %d", before, f.Len())
	}
	if node.Parent() != None || node.Kind() != Plain {
		t.Errorf("merged node still a tree node")
	}
	if got := host.Children(); !equalIDs(got, []ID{12, 13}) {
		t.Errorf("host children = %v, want [12 13]", got)
	}
}

func equalIDs(a, b []ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

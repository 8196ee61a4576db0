package nodelink

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/geom"
)

func testFamily(t *testing.T) *dock.Family {
	t.Helper()
	f := dock.New(geom.R(0, 0, 800, 600), dock.WithLogger(log.New(io.Discard)))
	add := func(parent, id dock.ID, caption string, style dock.Style, size int) {
		if err := f.AddDockedChild(parent, dock.NewNode(id, caption, nil), style, size); err != nil {
			t.Fatalf("AddDockedChild(%d): %v", id, err)
		}
	}
	add(dock.RootID, 1, "files", dock.DockedLeft, 200)
	add(dock.RootID, 2, "", dock.DockedBottommost, 100)
	add(1, 3, "", dock.Container, 0)
	if err := f.AddUndockedChild(dock.NewNode(4, "", nil), 0, 100, geom.R(10, 10, 110, 110)); err != nil {
		t.Fatalf("AddUndockedChild: %v", err)
	}
	return f
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testFamily(t), Options{})

	for _, want := range []string{
		"digraph G {",
		`n0 [label="root", fillcolor=lightblue];`,
		`n1 [label="1 files", penwidth=2];`,
		`n4 [label="4", fillcolor=lightyellow];`,
		`n0 -> n1 [label="left"];`,
		`n0 -> n2 [label="outer bottom"];`,
		`n1 -> n3 [style=dashed, label="tab"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "-> n4") {
		t.Error("floating node should have no incoming edge")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testFamily(t), Options{Detailed: true})
	if !strings.Contains(dot, `"1 files\n(0,0)-(200,496)\nsize: 200"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOTActiveTab(t *testing.T) {
	f := testFamily(t)
	if err := f.SelectNode(3); err != nil {
		t.Fatalf("SelectNode: %v", err)
	}
	dot := ToDOT(f, Options{})
	if !strings.Contains(dot, `n1 -> n3 [style=dashed, label="tab", penwidth=2];`) {
		t.Errorf("active tab edge not bold:\n%s", dot)
	}
	if strings.Contains(dot, `n1 [label="1 files", penwidth=2]`) {
		t.Error("host should not be bold when a tab is active")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 200.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 200.00" width="100" height="200">`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
}

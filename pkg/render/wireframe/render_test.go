package wireframe

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/geom"
)

func newFamily(t *testing.T) *dock.Family {
	t.Helper()
	f := dock.New(geom.R(0, 0, 800, 600), dock.WithLogger(log.New(io.Discard)), dock.WithCaptionHeight(20))
	if err := f.AddDockedChild(dock.RootID, dock.NewNode(1, "files", nil), dock.DockedLeft, 200); err != nil {
		t.Fatalf("AddDockedChild: %v", err)
	}
	if err := f.AddDockedChild(1, dock.NewNode(2, "outline", nil), dock.Container, 0); err != nil {
		t.Fatalf("AddDockedChild: %v", err)
	}
	if err := f.AddUndockedChild(dock.NewNode(3, "tools", nil), 0, 100, geom.R(700, 500, 900, 700)); err != nil {
		t.Fatalf("AddUndockedChild: %v", err)
	}
	return f
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(newFamily(t)))

	for _, want := range []string{
		`viewBox="0 0 900 700"`,
		`id="panel-0"`,
		`id="panel-1" class="panel" x="0.00" y="0.00" width="200.00" height="600.00"`,
		`id="splitter-1" class="splitter" x="200.00" y="0.00" width="4.00" height="600.00"`,
		`>files</text>`,
		`fill="#fffbe6"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q\n%s", want, svg)
		}
	}
	if strings.Contains(svg, `id="panel-2"`) {
		t.Error("group member drawn as its own panel")
	}
	if strings.Index(svg, `id="panel-3"`) < strings.Index(svg, `id="panel-1"`) {
		t.Error("floating panel painted below the root tree")
	}
}

func TestRenderSVGActiveTab(t *testing.T) {
	f := newFamily(t)
	if err := f.SelectNode(2); err != nil {
		t.Fatalf("SelectNode: %v", err)
	}
	svg := string(RenderSVG(f, WithTabs(), WithHighlight(2)))
	if !strings.Contains(svg, `>outline (+1)</text>`) {
		t.Errorf("active tab caption missing\n%s", svg)
	}
	if !strings.Contains(svg, `stroke="#d9480f"`) {
		t.Error("highlighted tab did not outline its host")
	}
}

func TestSimpleEscapesCaption(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderPanel(&buf, Panel{ID: 1, Label: "<x>", W: 200, H: 100, CaptionH: 20})
	if !strings.Contains(buf.String(), "&lt;x&gt;") {
		t.Errorf("caption not escaped: %s", buf.String())
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		label string
		width float64
		want  string
	}{
		{"short", 200, "short"},
		{"a-rather-long-caption", 60, "a-rather-long-caption"[:4] + ".."},
		{"abcdef", 1, "a.."},
	}
	for _, tt := range tests {
		if got := truncateLabel(tt.label, tt.width); got != tt.want {
			t.Errorf("truncateLabel(%q, %v) = %q, want %q", tt.label, tt.width, got, tt.want)
		}
	}
}

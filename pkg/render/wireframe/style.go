package wireframe

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Style defines the visual appearance of a wireframe.
type Style interface {
	// RenderDefs writes SVG <defs> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderPanel writes the SVG for one panel box and its caption strip.
	RenderPanel(buf *bytes.Buffer, p Panel)
	// RenderSplitter writes the SVG for one splitter bar.
	RenderSplitter(buf *bytes.Buffer, s Bar)
}

// Panel contains the data needed to draw one visible node.
type Panel struct {
	ID         int
	Label      string   // caption shown in the strip
	Tabs       []string // captions of every group member, active first; nil when not grouped
	X, Y, W, H float64
	CaptionH   float64 // height of the caption strip; 0 when the node has none
	Root       bool
	Floating   bool
	Highlight  bool
}

// Bar contains the data needed to draw one splitter.
type Bar struct {
	Owner      int
	X, Y, W, H float64
	Vertical   bool // true when the bar separates left/right neighbours
}

// Simple draws flat boxes with a grey caption strip.
type Simple struct{}

func (Simple) RenderDefs(*bytes.Buffer) {}

func (Simple) RenderPanel(buf *bytes.Buffer, p Panel) {
	fill, stroke := "white", "#333"
	switch {
	case p.Root:
		fill = "#f4f6f8"
	case p.Floating:
		fill = "#fffbe6"
	}
	width := 1.0
	if p.Highlight {
		stroke, width = "#d9480f", 3
	}
	fmt.Fprintf(buf, `  <rect id="panel-%d" class="panel" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		p.ID, p.X, p.Y, p.W, p.H, fill, stroke, width)
	if p.CaptionH <= 0 {
		return
	}
	fmt.Fprintf(buf, `  <rect class="caption" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#dde2e7"/>`+"\n",
		p.X, p.Y, p.W, p.CaptionH)
	label := truncateLabel(p.Label, p.W)
	if len(p.Tabs) > 1 {
		label = truncateLabel(fmt.Sprintf("%s (+%d)", p.Label, len(p.Tabs)-1), p.W)
	}
	if label == "" {
		return
	}
	size := fontSize(p.CaptionH)
	fmt.Fprintf(buf, `  <text class="caption-text" x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" dominant-baseline="middle">%s</text>`+"\n",
		p.X+size/2, p.Y+p.CaptionH/2, size, escapeXML(label))
}

func (Simple) RenderSplitter(buf *bytes.Buffer, s Bar) {
	fmt.Fprintf(buf, `  <rect id="splitter-%d" class="splitter" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#9aa5b1"/>`+"\n",
		s.Owner, s.X, s.Y, s.W, s.H)
}

const (
	fontHeightRatio = 0.6
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
	fontSizeMax     = 16.0
)

func fontSize(strip float64) float64 {
	return max(fontSizeMin, min(fontSizeMax, strip*fontHeightRatio))
}

// truncateLabel shortens label to fit a strip of the given width at the
// default caption font size.
func truncateLabel(label string, width float64) string {
	maxChars := max(int(width/(fontSizeMax*fontCharWidth)), 3)
	if len(label) <= maxChars {
		return label
	}
	return label[:maxChars-2] + ".."
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

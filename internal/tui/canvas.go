package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/dockpane/pkg/geom"
)

type paint int

const (
	paintBackground paint = iota
	paintPanel
	paintFloating
	paintCaption
	paintCaptionFocused
	paintSplitter
	paintHint
	paintIndicator
	paintHashBar
	paintCount
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")
	colorBg   = lipgloss.Color("235")
	colorAmb  = lipgloss.Color("220")
)

var paints = [paintCount]lipgloss.Style{
	paintBackground:     lipgloss.NewStyle().Foreground(colorDim).Background(colorBg),
	paintPanel:          lipgloss.NewStyle().Foreground(colorGray),
	paintFloating:       lipgloss.NewStyle().Foreground(colorGray).Background(lipgloss.Color("236")),
	paintCaption:        lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(colorDim),
	paintCaptionFocused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(colorCyan),
	paintSplitter:       lipgloss.NewStyle().Foreground(colorDim),
	paintHint:           lipgloss.NewStyle().Foreground(colorCyan),
	paintIndicator:      lipgloss.NewStyle().Foreground(colorAmb),
	paintHashBar:        lipgloss.NewStyle().Foreground(colorAmb),
}

type cell struct {
	r rune
	p paint
}

// canvas is a grid of styled cells; rectangles are clipped to it.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([]cell, c.w*c.h)
	c.fill(geom.R(0, 0, c.w, c.h), ' ', paintBackground)
	return c
}

func (c *canvas) fill(r geom.Rect, ch rune, p paint) {
	r = r.Intersect(geom.R(0, 0, c.w, c.h))
	for y := r.Top; y < r.Bottom; y++ {
		for x := r.Left; x < r.Right; x++ {
			c.cells[y*c.w+x] = cell{ch, p}
		}
	}
}

// text writes s at (x, y), cut at limit columns.
func (c *canvas) text(x, y int, s string, limit int, p paint) {
	if y < 0 || y >= c.h {
		return
	}
	for _, r := range s {
		if limit <= 0 || x >= c.w {
			return
		}
		if x >= 0 {
			c.cells[y*c.w+x] = cell{r, p}
		}
		x++
		limit--
	}
}

// lines returns the rows as plain text, for tests.
func (c *canvas) lines() []string {
	out := make([]string, c.h)
	for y := range c.h {
		var b strings.Builder
		for _, cl := range c.cells[y*c.w : (y+1)*c.w] {
			b.WriteRune(cl.r)
		}
		out[y] = b.String()
	}
	return out
}

// String renders the canvas, styling runs of equally painted cells.
func (c *canvas) String() string {
	var b strings.Builder
	for y := range c.h {
		row := c.cells[y*c.w : (y+1)*c.w]
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].p == row[start].p {
				continue
			}
			var run strings.Builder
			for _, cl := range row[start:x] {
				run.WriteRune(cl.r)
			}
			b.WriteString(paints[row[start].p].Render(run.String()))
			start = x
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

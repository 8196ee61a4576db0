package tui

import (
	"fmt"

	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/geom"
)

// panel is the content of one demo node: a caption and a size readout.
type panel struct {
	id      dock.ID
	title   string
	rect    geom.Rect
	focus   *dock.ID
	created bool
}

func (p *panel) Create(id dock.ID) error {
	p.id = id
	p.created = true
	return nil
}

func (p *panel) Destroy() { p.created = false }

func (p *panel) Resize(r geom.Rect) { p.rect = r }

func (p *panel) Focus() {
	if p.focus != nil {
		*p.focus = p.id
	}
}

// lines returns the body text shown inside the view rectangle.
func (p *panel) lines() []string {
	if p.rect.Empty() {
		return nil
	}
	return []string{
		p.title,
		fmt.Sprintf("%dx%d", p.rect.Width(), p.rect.Height()),
	}
}

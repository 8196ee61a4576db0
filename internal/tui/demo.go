package tui

import (
	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/geom"
)

// buildDemo fills the family with an editor-like arrangement: a file tree
// with a second tab on the left, a properties panel on the right, an output
// strip along the whole bottom and one floating tool window.
func (m *Model) buildDemo() error {
	f := m.family
	var err error
	f.Batch(func() {
		err = m.demo(f)
	})
	return err
}

func (m *Model) demo(f *dock.Family) error {
	b := m.bounds()

	files := m.newNode("Files")
	if err := f.AddDockedChild(dock.RootID, files, dock.DockedLeft|dock.Tabbed, b.Width()/5); err != nil {
		return err
	}
	if err := f.AddDockedChild(files.ID(), m.newNode("Outline"), dock.Container, 0); err != nil {
		return err
	}
	if err := f.AddDockedChild(dock.RootID, m.newNode("Properties"), dock.DockedRight|dock.Tabbed, b.Width()/4); err != nil {
		return err
	}
	if err := f.AddDockedChild(dock.RootID, m.newNode("Output"), dock.DockedBottommost|dock.NoClose, b.Height()/4); err != nil {
		return err
	}
	tools := geom.XYWH(b.Width()/3, b.Height()/4, 24, 8)
	if err := f.AddUndockedChild(m.newNode("Tools"), 0, 24, tools); err != nil {
		return err
	}
	return f.SelectGroupMember(files.ID(), 0)
}

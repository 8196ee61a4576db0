package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/persist"
	"github.com/matzehuels/dockpane/pkg/store"
)

// Demo node IDs in creation order.
const (
	filesID dock.ID = iota + 1
	outlineID
	propertiesID
	outputID
	toolsID
)

func newModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	opts = append([]Option{WithLogger(log.New(io.Discard)), WithSize(100, 30)}, opts...)
	m, err := New(opts...)
	require.NoError(t, err)
	require.NoError(t, m.Family().VerifyDockers())
	return m
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestDemoLayout(t *testing.T) {
	m := newModel(t)
	f := m.Family()

	assert.Equal(t, 6, f.Len())
	assert.Equal(t, []dock.ID{outputID, filesID, propertiesID}, f.Root().Children())
	assert.Equal(t, []dock.ID{filesID, outlineID}, f.GetDockFromID(filesID).Group().Members())
	assert.True(t, f.GetDockFromID(toolsID).IsFloating())

	lines := m.paint().lines()
	require.Len(t, lines, 29)
	assert.Contains(t, lines[0], "Files [1/2]")
	assert.Contains(t, lines[0], "Properties")
	assert.Contains(t, lines[7], "Tools")
}

func TestDragFloatingPanelDocksLeft(t *testing.T) {
	m := newModel(t)
	f := m.Family()

	m.Update(mouse(tea.MouseActionPress, 40, 7))
	require.NotNil(t, m.drag, "caption press should start a drag")

	m.Update(mouse(tea.MouseActionMotion, 43, 10))
	assert.Equal(t, "inner-left", m.status)
	assert.NotEmpty(t, m.screen.overlays)
	assert.Contains(t, strings.Join(m.paint().lines(), "\n"), "░")

	m.Update(mouse(tea.MouseActionRelease, 43, 10))
	assert.Nil(t, m.drag)
	assert.Empty(t, m.screen.overlays)
	assert.Equal(t, dock.None, m.screen.captured)

	tools := f.GetDockFromID(toolsID)
	assert.Equal(t, dock.RootID, tools.Parent())
	assert.Equal(t, dock.SideLeft, tools.Side())
	assert.NoError(t, f.VerifyDockers())
}

func TestSplitterDragResizes(t *testing.T) {
	m := newModel(t)
	f := m.Family()

	m.Update(mouse(tea.MouseActionPress, 20, 5))
	require.NotNil(t, m.split, "splitter press should start a resize")
	m.Update(mouse(tea.MouseActionMotion, 30, 5))
	m.Update(mouse(tea.MouseActionRelease, 30, 5))

	assert.Nil(t, m.split)
	assert.Equal(t, 30, f.DockSize(filesID))
}

func TestDeferredSplitterDrag(t *testing.T) {
	m := newModel(t, WithAutoResize(false))
	f := m.Family()

	m.Update(mouse(tea.MouseActionPress, 20, 5))
	require.NotNil(t, m.split)
	m.Update(mouse(tea.MouseActionMotion, 30, 5))
	assert.Equal(t, 20, f.DockSize(filesID), "size must not change before release")
	assert.Contains(t, strings.Join(m.paint().lines(), "\n"), "▓")

	m.Update(mouse(tea.MouseActionRelease, 30, 5))
	assert.Equal(t, 30, f.DockSize(filesID))
}

func TestNextTab(t *testing.T) {
	m := newModel(t)
	f := m.Family()

	m.Update(mouse(tea.MouseActionPress, 5, 10))
	m.Update(mouse(tea.MouseActionRelease, 5, 10))
	assert.Equal(t, filesID, m.focus)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, outlineID, f.GetDockFromID(filesID).Group().ActiveMember())
	assert.Equal(t, outlineID, m.focus)
	assert.Contains(t, m.paint().lines()[0], "Outline [2/2]")
}

func TestCloseFocused(t *testing.T) {
	m := newModel(t)
	f := m.Family()

	m.Update(mouse(tea.MouseActionPress, 40, 10))
	m.Update(mouse(tea.MouseActionRelease, 40, 10))
	require.Equal(t, toolsID, m.focus)

	m.Update(keyRune('x'))
	assert.Nil(t, f.GetDockFromID(toolsID))
	assert.Equal(t, dock.None, m.focus)
}

func TestCloseRefusedWhileDragging(t *testing.T) {
	m := newModel(t)
	f := m.Family()

	m.Update(mouse(tea.MouseActionPress, 40, 7))
	require.NotNil(t, m.drag)
	require.Equal(t, toolsID, m.focus)

	m.Update(keyRune('x'))
	assert.NotNil(t, f.GetDockFromID(toolsID))
	assert.True(t, strings.HasPrefix(m.status, "close:"))

	m.Update(mouse(tea.MouseActionMotion, 60, 12))
	m.Update(mouse(tea.MouseActionRelease, 60, 12))
	assert.Nil(t, m.drag)
	assert.NoError(t, f.VerifyDockers())
}

func TestCloseRefusedForNoClose(t *testing.T) {
	m := newModel(t)
	f := m.Family()

	m.Update(mouse(tea.MouseActionPress, 50, 26))
	m.Update(mouse(tea.MouseActionRelease, 50, 26))
	require.Equal(t, outputID, m.focus)

	m.Update(keyRune('x'))
	assert.NotNil(t, f.GetDockFromID(outputID))
	assert.True(t, strings.HasPrefix(m.status, "close:"))
}

func TestSaveAndRestore(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	a := persist.NewAdapter(fs, persist.WithAdapterLogger(log.New(io.Discard)))

	m := newModel(t, WithLayout(a, "work"))
	assert.Equal(t, `new layout "work"`, m.status)
	m.Update(keyRune('s'))
	assert.Equal(t, `saved "work" (5 panels)`, m.status)

	again := newModel(t, WithLayout(a, "work"))
	assert.Equal(t, `loaded "work"`, again.status)
	assert.Equal(t, m.Family().Len(), again.Family().Len())
	assert.Equal(t, m.Family().Root().Children(), again.Family().Root().Children())
	assert.Equal(t, 20, again.Family().DockSize(filesID))
}

func TestSaveWithoutStore(t *testing.T) {
	m := newModel(t)
	m.Update(keyRune('s'))
	assert.Equal(t, "no layout store configured", m.status)
}

func TestQuitCancelsDrag(t *testing.T) {
	m := newModel(t)
	m.Update(mouse(tea.MouseActionPress, 40, 7))
	require.NotNil(t, m.drag)

	_, cmd := m.Update(keyRune('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, m.drag)
	assert.False(t, m.ctrl.Busy())
}

func TestWindowResizeRelayouts(t *testing.T) {
	m := newModel(t)
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 61})

	f := m.Family()
	assert.Equal(t, 200, f.Root().Rect().Width())
	assert.Equal(t, 60, f.Root().Rect().Height())
	assert.Equal(t, 40, f.DockSize(filesID))
	assert.Contains(t, m.View(), "quit")
}

// Package tui hosts a dock family in the terminal. Cells are the screen
// coordinates: every panel gets a one-row caption and one-cell splitters,
// and the drop indicators are scaled down to fit.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/drag"
	"github.com/matzehuels/dockpane/pkg/geom"
	"github.com/matzehuels/dockpane/pkg/persist"
)

// Geometry is the drop indicator geometry used in cell units.
var Geometry = drag.Geometry{Indicator: 11, OuterIndicator: 3, OuterInset: 1}

const (
	defaultWidth  = 100
	defaultHeight = 30
)

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. Log output must not go to the terminal the
// program draws on.
func WithLogger(l *log.Logger) Option { return func(m *Model) { m.logger = l } }

// WithAutoResize selects live splitter resizing (true) or the deferred
// hashed bar (false).
func WithAutoResize(on bool) Option { return func(m *Model) { m.autoResize = on } }

// WithLayout loads the named layout from a at startup and saves back to it.
func WithLayout(a *persist.Adapter, name string) Option {
	return func(m *Model) { m.adapter, m.name = a, name }
}

// WithContext sets the context used for store I/O.
func WithContext(ctx context.Context) Option { return func(m *Model) { m.ctx = ctx } }

// WithSize sets the initial terminal size, before the first resize event.
func WithSize(w, h int) Option { return func(m *Model) { m.width, m.height = w, h } }

// Model is the bubbletea model of the terminal host.
type Model struct {
	ctx        context.Context
	logger     *log.Logger
	autoResize bool
	adapter    *persist.Adapter
	name       string

	family *dock.Family
	ctrl   *drag.Controller
	screen *screen
	keys   keyMap
	help   help.Model

	drag   *drag.Session
	split  *drag.SplitterSession
	focus  dock.ID
	nextID dock.ID
	status string

	width, height int
}

// New builds the model and its family. A stored layout is restored when
// one was configured and exists; otherwise the demo layout is built.
func New(opts ...Option) (*Model, error) {
	m := &Model{
		ctx:        context.Background(),
		logger:     log.Default(),
		autoResize: true,
		keys:       defaultKeyMap(),
		help:       help.New(),
		focus:      dock.None,
		nextID:     1,
		width:      defaultWidth,
		height:     defaultHeight,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.screen = newScreen()
	m.family = dock.New(m.bounds(),
		dock.WithHost(m.screen),
		dock.WithLogger(m.logger),
		dock.WithSplitterWidth(1),
		dock.WithCaptionHeight(1),
	)
	m.ctrl = drag.NewController(m.family,
		drag.WithPresenter(m.screen),
		drag.WithGeometry(Geometry),
		drag.WithAutoResize(m.autoResize),
		drag.WithLogger(m.logger),
	)

	restored, err := m.restore()
	if err != nil {
		return nil, err
	}
	if !restored {
		if err := m.buildDemo(); err != nil {
			return nil, fmt.Errorf("build demo layout: %w", err)
		}
	}
	return m, nil
}

// Family returns the hosted family.
func (m *Model) Family() *dock.Family { return m.family }

func (m *Model) bounds() geom.Rect {
	// last row is the help line
	return geom.R(0, 0, m.width, max(m.height-1, 1))
}

func (m *Model) restore() (bool, error) {
	if m.adapter == nil {
		return false, nil
	}
	snap, err := m.adapter.Load(m.ctx, m.name)
	if errors.Is(err, persist.ErrNotFound) {
		m.status = fmt.Sprintf("new layout %q", m.name)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	m.family.Resize(snap.Bounds)
	if err := persist.Load(m.family, snap, m.viewFor); err != nil {
		m.family.Resize(m.bounds())
		m.status = "stored layout unusable, using demo"
		return false, nil
	}
	for _, r := range snap.Records {
		m.nextID = max(m.nextID, r.ID+1)
	}
	m.family.Resize(m.bounds())
	m.status = fmt.Sprintf("loaded %q", m.name)
	return true, nil
}

func (m *Model) viewFor(rec persist.Record) dock.View {
	return &panel{title: rec.Caption, focus: &m.focus}
}

func (m *Model) newNode(caption string) *dock.Node {
	id := m.nextID
	m.nextID++
	return dock.NewNode(id, caption, &panel{title: caption, focus: &m.focus})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.family.Resize(m.bounds())
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.cancel()
	case key.Matches(msg, m.keys.NextTab):
		m.nextTab()
	case key.Matches(msg, m.keys.Close):
		m.closeFocused()
	case key.Matches(msg, m.keys.Save):
		m.save()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	pt := geom.Pt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.press(pt)
		}
	case tea.MouseActionMotion:
		m.motion(pt)
	case tea.MouseActionRelease:
		m.release(pt)
	}
}

func (m *Model) press(pt geom.Point) {
	if m.ctrl.Busy() {
		return
	}
	f := m.family
	if _, ok := f.SplitterAt(pt); ok {
		s, err := m.ctrl.BeginSplitter(pt)
		if err != nil {
			m.fail("resize", err)
			return
		}
		m.split = s
		return
	}
	if n := f.CaptionAt(pt); n != nil {
		m.setFocus(n)
		s, err := m.ctrl.Begin(n.ID(), pt)
		if err != nil {
			m.fail("drag", err)
			return
		}
		m.drag = s
		m.status = ""
		return
	}
	if n := f.GetDockFromPoint(pt, dock.None); n != nil && n.ID() != dock.RootID {
		m.setFocus(n)
		if n.IsFloating() {
			f.Raise(n.ID())
		}
	}
}

func (m *Model) motion(pt geom.Point) {
	switch {
	case m.drag != nil:
		z, err := m.ctrl.Move(m.drag, pt)
		if err != nil {
			if m.ctrl.Active() == nil {
				m.drag = nil
			}
			m.fail("drag", err)
			return
		}
		m.status = z.String()
	case m.split != nil:
		if err := m.ctrl.MoveSplitter(m.split, pt); err != nil {
			m.fail("resize", err)
		}
	}
}

func (m *Model) release(pt geom.Point) {
	switch {
	case m.drag != nil:
		s := m.drag
		m.drag = nil
		z, err := m.ctrl.End(s, pt)
		if err != nil {
			m.fail("dock", err)
			return
		}
		m.status = "dropped: " + z.String()
	case m.split != nil:
		s := m.split
		m.split = nil
		if err := m.ctrl.EndSplitter(s, pt); err != nil {
			m.fail("resize", err)
		}
	}
}

func (m *Model) cancel() {
	if m.drag != nil {
		_ = m.ctrl.Cancel(m.drag)
		m.drag = nil
	}
	if m.split != nil {
		_ = m.ctrl.CancelSplitter(m.split)
		m.split = nil
	}
}

// setFocus focuses n, or the tab it shows when n hosts a group.
func (m *Model) setFocus(n *dock.Node) {
	m.focus = n.ID()
	if g := n.Group(); g != nil {
		m.focus = g.ActiveMember()
	}
}

func (m *Model) nextTab() {
	f := m.family
	n := f.GetDockFromID(m.focus)
	if n == nil {
		return
	}
	host := n
	if h := n.GroupHost(); h != dock.None {
		host = f.GetDockFromID(h)
	}
	g := host.Group()
	if g == nil {
		m.status = "no tabs"
		return
	}
	if err := f.SelectGroupMember(host.ID(), (g.Active()+1)%g.Len()); err != nil {
		m.fail("select", err)
		return
	}
	m.focus = g.ActiveMember()
}

func (m *Model) closeFocused() {
	if m.focus == dock.None {
		return
	}
	if m.ctrl.Busy() {
		m.status = "close: finish the drag first"
		return
	}
	id := m.focus
	if err := m.family.Close(id); err != nil {
		m.fail("close", err)
		return
	}
	m.focus = dock.None
	m.status = fmt.Sprintf("closed %d", id)
}

func (m *Model) save() {
	if m.adapter == nil {
		m.status = "no layout store configured"
		return
	}
	snap := persist.Save(m.family)
	if err := m.adapter.Save(m.ctx, m.name, snap); err != nil {
		m.fail("save", err)
		return
	}
	m.status = fmt.Sprintf("saved %q (%d panels)", m.name, len(snap.Records))
}

func (m *Model) fail(op string, err error) {
	m.logger.Warn("tui", "op", op, "err", err)
	m.status = fmt.Sprintf("%s: %v", op, err)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.paint().String())
	b.WriteByte('\n')
	line := m.help.View(m.keys)
	if m.status != "" {
		line += "  " + paints[paintHint].Render(m.status)
	}
	b.WriteString(line)
	return b.String()
}

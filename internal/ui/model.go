package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/nui-context-menu/internal/lifecycle"
	"github.com/atomicstack/nui-context-menu/internal/menu"
	"github.com/atomicstack/nui-context-menu/internal/nav"
	"github.com/atomicstack/nui-context-menu/internal/placement"
	"github.com/atomicstack/nui-context-menu/internal/session"
	"github.com/atomicstack/nui-context-menu/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	// Commands delivers decoded host commands. Nil disables the transport.
	Commands <-chan menu.Command
	// ExitOnClose quits the program once a close animation finishes.
	ExitOnClose bool
}

// Model implements the Bubble Tea model for the context menu.
type Model struct {
	s    *session.Session
	nav  *nav.Machine
	ctl  *lifecycle.Controller
	opts Options
	keys keyMap

	width  int
	height int

	pointer pointerState

	start  time.Time
	now    func() time.Time
	wake   func(time.Duration, time.Duration) tea.Cmd
	armed  bool
	wakeAt time.Duration

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps s in a Bubble Tea model.
func NewModel(s *session.Session, opts Options) *Model {
	m := &Model{
		s:       s,
		nav:     nav.New(s),
		ctl:     lifecycle.New(s),
		opts:    opts,
		keys:    defaultKeyMap(),
		pointer: noPointer,
		now:     time.Now,
		wake:    tickAt,
	}
	m.start = m.now()
	m.width = s.Viewport.W
	m.height = s.Viewport.H
	m.registerHandlers()
	return m
}

// Session exposes the menu state.
func (m *Model) Session() *session.Session {
	return m.s
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.opts.Commands == nil {
		return nil
	}
	return waitForCommand(m.opts.Commands)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	wasShown := m.s.IsOpen || m.s.IsClosing
	m.pump()

	cmds := make([]tea.Cmd, 0, 3)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.syncPointer()

	if m.opts.ExitOnClose && wasShown && !m.s.IsOpen && !m.s.IsClosing {
		cmds = append(cmds, tea.Quit)
	}
	if cmd := m.armWake(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, finish(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(commandMsg{}):        m.handleCommandMsg,
		reflect.TypeOf(commandsDoneMsg{}):   m.handleCommandsDoneMsg,
		reflect.TypeOf(wakeMsg{}):           m.handleWakeMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = size.Width
	m.height = size.Height
	m.s.Resize(placement.Viewport{W: size.Width, H: size.Height})
	return nil
}

func finish(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

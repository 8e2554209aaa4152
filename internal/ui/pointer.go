package ui

import (
	"github.com/atomicstack/nui-context-menu/internal/panel"
	tea "github.com/charmbracelet/bubbletea"
)

// pointerState is the panel and row last seen under the mouse.
type pointerState struct {
	level int
	index int
}

var noPointer = pointerState{level: -1, index: -1}

// hit returns the top-most open panel under (x, y) and the row there. Deeper
// panels are drawn last, so they win when rectangles overlap.
func (m *Model) hit(x, y int) pointerState {
	g := m.s.Geometry()
	for level := panel.Levels - 1; level >= panel.Root; level-- {
		p := m.s.Panels[level]
		if !p.Open || !p.Rect.Contains(x, y) {
			continue
		}
		return pointerState{level: level, index: p.RowAt(y, g)}
	}
	return noPointer
}

// movePointer turns a pointer position into leave, enter and entry events,
// in that order.
func (m *Model) movePointer(x, y int) pointerState {
	next := m.hit(x, y)
	prev := m.pointer
	if next.level != prev.level {
		if prev.level >= 0 {
			m.nav.LeavePanel(prev.level)
		}
		if next.level >= 0 {
			m.nav.EnterPanel(next.level)
		}
	}
	if next.level >= 0 && next.index >= 0 && next != prev {
		m.nav.EnterEntry(next.level, next.index)
	}
	m.pointer = next
	return next
}

// syncPointer forgets a panel that closed underneath the pointer so the next
// motion produces a fresh enter.
func (m *Model) syncPointer() {
	if m.pointer.level < 0 {
		return
	}
	if !m.s.Active() || !m.s.Panels[m.pointer.level].Open {
		m.pointer = noPointer
	}
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch mouse.Action {
	case tea.MouseActionMotion:
		m.movePointer(mouse.X, mouse.Y)
	case tea.MouseActionPress:
		switch mouse.Button {
		case tea.MouseButtonLeft:
			at := m.movePointer(mouse.X, mouse.Y)
			switch {
			case at.level < 0:
				m.ctl.ClickOutside()
			case at.index >= 0:
				m.nav.Click(at.level, at.index)
			}
		case tea.MouseButtonRight:
			m.ctl.RightClick()
		}
	}
	return nil
}

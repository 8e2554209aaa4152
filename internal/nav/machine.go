// Package nav is the hover-driven navigation state machine. It turns pointer
// enter/leave/click events on the three panels into submenu transitions and
// host notifications, coordinating the open and close timers so that moving
// between a parent entry and its child panel never collapses the chain.
//
// Every timer is re-validated when it fires: an open only happens when the
// triggering entry is still hovered, and a close only happens when the pointer
// is outside the panel being closed and everything below it.
package nav

import (
	"github.com/atomicstack/nui-context-menu/internal/logging/events"
	"github.com/atomicstack/nui-context-menu/internal/menu"
	"github.com/atomicstack/nui-context-menu/internal/panel"
	"github.com/atomicstack/nui-context-menu/internal/session"
	"github.com/atomicstack/nui-context-menu/internal/timer"
)

// Machine consumes pointer events for a session.
type Machine struct {
	s *session.Session
}

// New returns a machine driving s.
func New(s *session.Session) *Machine {
	return &Machine{s: s}
}

func (m *Machine) panelAt(level int) (*panel.Panel, bool) {
	if !m.s.Active() || level < panel.Root || level >= panel.Levels {
		return nil, false
	}
	p := m.s.Panels[level]
	if !p.Open {
		return nil, false
	}
	return p, true
}

// EnterPanel records that the pointer is inside the panel at level. Entering
// either submenu cancels pending closes for the whole chain.
func (m *Machine) EnterPanel(level int) {
	if _, ok := m.panelAt(level); !ok {
		return
	}
	m.s.Hover[level].Inside = true
	events.Nav.Pointer(level, true)
	if level > panel.Root {
		m.s.Timers.CancelAll(timer.CloseLevel1, timer.CloseLevel2)
	}
}

// LeavePanel records that the pointer left the panel at level and schedules
// the closes that apply unless the pointer turns up in a deeper panel.
func (m *Machine) LeavePanel(level int) {
	if _, ok := m.panelAt(level); !ok {
		return
	}
	m.s.Hover[level].Inside = false
	events.Nav.Pointer(level, false)

	inside1 := m.s.Hover[panel.Level1].Inside
	inside2 := m.s.Hover[panel.Level2].Inside
	switch level {
	case panel.Root:
		m.s.Timers.Cancel(timer.OpenLevel1)
		if m.s.Panels[panel.Level1].Open && !inside1 && !inside2 {
			m.scheduleClose(panel.Level1)
		}
	case panel.Level1:
		m.s.Timers.Cancel(timer.OpenLevel2)
		if !inside2 {
			if m.s.Panels[panel.Level2].Open {
				m.scheduleClose(panel.Level2)
			}
			m.scheduleClose(panel.Level1)
		}
	case panel.Level2:
		m.scheduleClose(panel.Level2)
		if !inside1 {
			m.scheduleClose(panel.Level1)
		}
	}
}

// EnterEntry handles the pointer moving onto entry index of the panel at
// level. Checkbox entries start no submenu timers, but hovering one still
// drops a pending open so it cannot fire under the checkbox.
func (m *Machine) EnterEntry(level, index int) {
	p, ok := m.panelAt(level)
	if !ok {
		return
	}
	entry, ok := p.Entry(index)
	if !ok {
		return
	}
	m.s.Hover[level].Inside = true
	m.s.Hover[level].Hovered = index
	events.Nav.Hover(level, index)
	if level >= menu.MaxDepth {
		return
	}
	if entry.Checkbox {
		m.s.Timers.Cancel(timer.Open(level + 1))
		return
	}

	child := level + 1
	m.s.Timers.CancelAll(timer.Open(child), timer.Close(child))
	expandable := entry.Expandable(level)
	if p.Anchor >= 0 && p.Anchor != index {
		if expandable {
			m.s.CloseSubmenu(child)
		} else {
			m.scheduleClose(child)
		}
	}
	if expandable && p.Anchor != index {
		m.s.Timers.Schedule(timer.Open(child), m.s.Timings.HoverOpen, func() {
			m.openIfHovered(level, index)
		})
	}
}

func (m *Machine) openIfHovered(level, index int) {
	p, ok := m.panelAt(level)
	if !ok || m.s.Hover[level].Hovered != index {
		events.Nav.Stale(timer.Open(level + 1).String())
		return
	}
	if entry, ok := p.Entry(index); !ok || !entry.Expandable(level) {
		events.Nav.Stale(timer.Open(level + 1).String())
		return
	}
	m.s.OpenSubmenu(level+1, index)
}

func (m *Machine) scheduleClose(level int) {
	m.s.Timers.Schedule(timer.Close(level), m.s.Timings.HoverClose, func() {
		m.closeIfOutside(level)
	})
}

func (m *Machine) closeIfOutside(level int) {
	if !m.s.Active() {
		return
	}
	inside := m.s.Hover[level].Inside
	if level+1 < panel.Levels {
		inside = inside || m.s.Hover[level+1].Inside
	}
	if inside {
		events.Nav.Stale(timer.Close(level).String())
		return
	}
	m.s.CloseSubmenu(level)
}

// Click handles a primary click on entry index of the panel at level.
func (m *Machine) Click(level, index int) {
	p, ok := m.panelAt(level)
	if !ok {
		return
	}
	entry, ok := p.Entry(index)
	if !ok {
		return
	}
	row, _ := p.Row(index)

	switch {
	case entry.Checkbox:
		entry.Checked = !entry.Checked
		if row != nil {
			row.Checked = entry.Checked
		}
		events.Nav.Click(level, index, "check")
		m.s.Emit(menu.CheckNotification(*entry))
	case entry.Expandable(level):
		events.Nav.Click(level, index, "expand")
	default:
		events.Nav.Click(level, index, "select")
		if row != nil {
			row.Clicked = true
		}
		// a second click before the feedback delay must not swallow the first
		m.s.Timers.Flush(timer.SelectFeedback)
		selected := *entry
		m.s.Timers.Schedule(timer.SelectFeedback, m.s.Timings.SelectFeedback, func() {
			if row != nil {
				row.Clicked = false
			}
			m.s.Emit(menu.SelectNotification(selected))
		})
	}
}

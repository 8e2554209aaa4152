package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// wakeMsg asks the model to fire timers due at or before at.
type wakeMsg struct {
	at time.Duration
}

func tickAt(at, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return wakeMsg{at: at}
	})
}

func (m *Model) elapsed() time.Duration {
	return m.now().Sub(m.start)
}

// pump fires every timer due by the current wall-clock offset.
func (m *Model) pump() {
	m.s.Timers.AdvanceTo(m.elapsed())
}

// armWake schedules one wake-up for the earliest pending timer unless an
// earlier or equal one is already in flight.
func (m *Model) armWake() tea.Cmd {
	delay, ok := m.s.Timers.Next()
	if !ok {
		return nil
	}
	now := m.s.Timers.Now()
	deadline := now + delay
	if m.armed && m.wakeAt > now && m.wakeAt <= deadline {
		return nil
	}
	m.armed = true
	m.wakeAt = deadline
	return m.wake(deadline, delay)
}

func (m *Model) handleWakeMsg(msg tea.Msg) tea.Cmd {
	wake, ok := msg.(wakeMsg)
	if !ok {
		return nil
	}
	if wake.at >= m.wakeAt {
		m.armed = false
	}
	return nil
}

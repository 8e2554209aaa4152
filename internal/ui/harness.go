package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests. It
// replaces the wall clock with a manual one and never sleeps: wake-ups are
// recorded instead of armed.
type Harness struct {
	model *Model
	now   time.Time
	wakes []time.Duration
	quit  bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	h := &Harness{model: model, now: time.Unix(0, 0)}
	if model != nil {
		model.now = func() time.Time { return h.now }
		model.start = h.now
		model.wake = func(at, _ time.Duration) tea.Cmd {
			h.wakes = append(h.wakes, at)
			return nil
		}
	}
	return h
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Advance moves the clock forward and delivers a wake-up.
func (h *Harness) Advance(d time.Duration) {
	h.now = h.now.Add(d)
	h.Send(wakeMsg{at: h.now.Sub(h.model.start)})
}

// Wakes returns the timer deadlines the model asked to be woken at.
func (h *Harness) Wakes() []time.Duration {
	return append([]time.Duration(nil), h.wakes...)
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			h.processCmd(c)
		}
		return
	}
	if msg == nil {
		return
	}
	if _, ok := msg.(tea.QuitMsg); ok {
		h.quit = true
		return
	}
	mdl, next := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(next)
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

// Package lifecycle handles the host's open, close and refresh commands and
// the global dismiss gestures (Escape, right-click, click outside).
package lifecycle

import (
	"github.com/atomicstack/nui-context-menu/internal/logging/events"
	"github.com/atomicstack/nui-context-menu/internal/menu"
	"github.com/atomicstack/nui-context-menu/internal/panel"
	"github.com/atomicstack/nui-context-menu/internal/session"
	"github.com/atomicstack/nui-context-menu/internal/timer"
)

var navTimers = []timer.Name{
	timer.OpenLevel1,
	timer.OpenLevel2,
	timer.CloseLevel1,
	timer.CloseLevel2,
}

// Controller owns the open/closing/closed states of the widget.
type Controller struct {
	s *session.Session
}

// New returns a controller for s.
func New(s *session.Session) *Controller {
	return &Controller{s: s}
}

// Apply dispatches a decoded host command. Host-issued closes do not notify
// the host back.
func (c *Controller) Apply(cmd menu.Command) bool {
	switch cmd.Action {
	case menu.ActionOpen:
		return c.Open(cmd.Options, cmd.Position, cmd.Scale)
	case menu.ActionClose:
		return c.Close(false)
	case menu.ActionRefresh:
		return c.Refresh(cmd.Options)
	}
	return false
}

// Open shows entries anchored at pos. It is ignored when entries is empty or
// a close is still animating.
func (c *Controller) Open(entries []menu.Entry, pos menu.Position, scale float64) bool {
	s := c.s
	if len(entries) == 0 {
		events.Menu.Rejected(string(menu.ActionOpen), "no entries")
		return false
	}
	if s.IsClosing {
		events.Menu.Rejected(string(menu.ActionOpen), "closing")
		return false
	}
	if s.IsOpen {
		s.CloseSubmenu(panel.Level1)
	}
	s.Timers.CancelAll(navTimers...)
	s.Hover[panel.Root].Hovered = -1

	if scale <= 0 {
		scale = 1
	}
	s.IsOpen = true
	s.Exiting = false
	s.X, s.Y = pos.Cell()
	s.Scale = scale
	s.Options = entries

	root := s.Panels[panel.Root]
	root.Render(entries)
	root.Open = true
	root.Visible = false
	s.Place(panel.Root)
	s.ScheduleReveal()

	events.Menu.Open(len(entries), s.X, s.Y, scale)
	return true
}

// Close starts the exit animation. Submenus close immediately, deepest
// first; the root is cleared once the teardown delay elapses. New commands
// are refused until then.
func (c *Controller) Close(notifyHost bool) bool {
	s := c.s
	if !s.IsOpen || s.IsClosing {
		return false
	}
	s.IsOpen = false
	s.IsClosing = true

	s.Timers.CancelAll(navTimers...)
	s.Timers.Cancel(timer.Reveal)
	s.CloseSubmenu(panel.Level2)
	s.CloseSubmenu(panel.Level1)

	s.Exiting = true
	s.Timers.Schedule(timer.Teardown, s.Timings.Teardown, c.teardown)

	events.Menu.Close(notifyHost)
	if notifyHost {
		s.Emit(menu.CloseNotification())
	}
	return true
}

func (c *Controller) teardown() {
	c.s.Reset()
	events.Menu.Teardown()
}

// Refresh replaces the entry tree while open. With a submenu active only
// checkbox and label state is patched so hover and timers are undisturbed;
// otherwise the root is rebuilt. An empty list closes the menu.
func (c *Controller) Refresh(entries []menu.Entry) bool {
	s := c.s
	if !s.IsOpen || s.IsClosing {
		events.Menu.Rejected(string(menu.ActionRefresh), "not open")
		return false
	}
	if len(entries) == 0 {
		return c.Close(true)
	}
	s.Options = entries

	if s.SubmenuActive() {
		c.patchOpenPanels()
		events.Menu.Refresh(len(entries), true)
		return true
	}
	s.Panels[panel.Root].Render(s.Options)
	s.Place(panel.Root)
	events.Menu.Refresh(len(entries), false)
	return true
}

// patchOpenPanels walks root → level 2. When a level had to be rebuilt, or
// its anchor no longer expands, the levels below it no longer belong to the
// same entry and are closed.
func (c *Controller) patchOpenPanels() {
	s := c.s
	children := s.Options
	for level := panel.Root; level < panel.Levels; level++ {
		p := s.Panels[level]
		if level > panel.Root {
			if !p.Open {
				return
			}
			parent, ok := s.Panels[level-1].AnchorEntry()
			if !ok || !parent.Expandable(level-1) {
				s.CloseSubmenu(level)
				return
			}
			children = parent.Children
		}
		if p.Patch(children) {
			s.Place(level)
			s.CloseSubmenu(level + 1)
			return
		}
	}
}

// Escape closes the menu and tells the host.
func (c *Controller) Escape() bool {
	return c.Close(true)
}

// RightClick closes the menu and tells the host. The click is consumed.
func (c *Controller) RightClick() bool {
	return c.Close(true)
}

// ClickOutside closes the menu and tells the host.
func (c *Controller) ClickOutside() bool {
	return c.Close(true)
}

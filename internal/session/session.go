// Package session holds the single owned state object shared by the
// navigation state machine and the lifecycle controller.
package session

import (
	"time"

	"github.com/atomicstack/nui-context-menu/internal/logging/events"
	"github.com/atomicstack/nui-context-menu/internal/menu"
	"github.com/atomicstack/nui-context-menu/internal/notify"
	"github.com/atomicstack/nui-context-menu/internal/panel"
	"github.com/atomicstack/nui-context-menu/internal/placement"
	"github.com/atomicstack/nui-context-menu/internal/timer"
)

// Timings are the delays used by the menu.
type Timings struct {
	HoverOpen      time.Duration
	HoverClose     time.Duration
	Teardown       time.Duration
	SelectFeedback time.Duration
	Frame          time.Duration
}

// DefaultTimings returns one consistent delay set for both submenu levels.
func DefaultTimings() Timings {
	return Timings{
		HoverOpen:      100 * time.Millisecond,
		HoverClose:     100 * time.Millisecond,
		Teardown:       120 * time.Millisecond,
		SelectFeedback: 50 * time.Millisecond,
		Frame:          16 * time.Millisecond,
	}
}

// Hover is the transient pointer state for one panel level.
type Hover struct {
	Hovered int
	Inside  bool
}

// Config configures a new session.
type Config struct {
	Timings  Timings
	Geometry placement.Geometry
	Viewport placement.Viewport
}

// Session is the menu widget state. It is owned by one goroutine.
type Session struct {
	IsOpen    bool
	IsClosing bool
	Exiting   bool
	X, Y      int
	Scale     float64
	Options   []menu.Entry

	Panels   panel.Stack
	Hover    [panel.Levels]Hover
	Timers   *timer.Registry
	Notifier notify.Notifier

	Timings  Timings
	Base     placement.Geometry
	Viewport placement.Viewport
}

// New returns a closed session. A nil notifier discards notifications.
func New(cfg Config, n notify.Notifier) *Session {
	if n == nil {
		n = notify.Discard
	}
	if cfg.Timings == (Timings{}) {
		cfg.Timings = DefaultTimings()
	}
	if cfg.Geometry == (placement.Geometry{}) {
		cfg.Geometry = placement.DefaultGeometry()
	}
	s := &Session{
		Panels:   panel.NewStack(),
		Timers:   timer.New(),
		Notifier: n,
		Timings:  cfg.Timings,
		Base:     cfg.Geometry,
		Viewport: cfg.Viewport,
		Scale:    1,
	}
	for i := range s.Hover {
		s.Hover[i].Hovered = -1
	}
	return s
}

// Active reports whether the menu accepts interaction.
func (s *Session) Active() bool {
	return s.IsOpen && !s.IsClosing
}

// Geometry returns the panel geometry adjusted for the session scale.
func (s *Session) Geometry() placement.Geometry {
	return s.Base.Scaled(s.Scale)
}

// Emit traces and forwards a notification to the host.
func (s *Session) Emit(n menu.Notification) {
	events.Notify.Emit(string(n.Kind))
	s.Notifier.Notify(n)
}

// SubmenuActive reports whether any deeper level is open or holds the pointer.
func (s *Session) SubmenuActive() bool {
	return s.Panels[panel.Level1].Open ||
		s.Panels[panel.Level2].Open ||
		s.Panels[panel.Root].Anchor >= 0 ||
		s.Hover[panel.Level1].Inside ||
		s.Hover[panel.Level2].Inside
}

// ResetHover clears the pointer state of one level.
func (s *Session) ResetHover(level int) {
	s.Hover[level] = Hover{Hovered: -1}
}

// Place positions the panel at level against its anchor.
func (s *Session) Place(level int) {
	g := s.Geometry()
	p := s.Panels[level]
	var anchor placement.Anchor
	if level == panel.Root {
		anchor = placement.AtPoint(s.X, s.Y)
	} else {
		parent := s.Panels[level-1]
		anchor = placement.BesideRow(parent.Rect, parent.RowTop(parent.Anchor, g))
	}
	res := placement.Place(anchor, p.Len(), g, s.Viewport)
	p.Rect = res.Rect
	p.Flipped = res.Flipped
}

// Resize stores a new viewport and re-places every open panel root first.
func (s *Session) Resize(vp placement.Viewport) {
	s.Viewport = vp
	for level, p := range s.Panels {
		if p.Open {
			s.Place(level)
		}
	}
}

// ScheduleReveal makes every open panel visible one frame later. Panels
// open hidden so the enter transition is never skipped.
func (s *Session) ScheduleReveal() {
	s.Timers.Schedule(timer.Reveal, s.Timings.Frame, func() {
		for _, p := range s.Panels {
			if p.Open {
				p.Visible = true
			}
		}
	})
}

// OpenSubmenu shows the children of the parent level's entry at anchor in
// panel level (1 or 2). Any deeper panel closes first.
func (s *Session) OpenSubmenu(level, anchor int) bool {
	if level <= panel.Root || level >= panel.Levels {
		return false
	}
	parent := s.Panels[level-1]
	entry, ok := parent.Entry(anchor)
	if !ok || !entry.Expandable(level-1) {
		return false
	}
	if s.Panels[level].Open && parent.Anchor != anchor {
		s.CloseSubmenu(level)
	} else if level+1 < panel.Levels {
		s.CloseSubmenu(level + 1)
	}

	parent.Anchor = anchor
	p := s.Panels[level]
	p.Render(entry.Children)
	p.Open = true
	p.Visible = false
	s.Place(level)
	s.ScheduleReveal()

	events.Nav.SubmenuOpen(level, anchor)
	if level == panel.Level1 {
		s.Emit(menu.SubmenuOpenNotification())
	}
	return true
}

// CloseSubmenu closes panel level (1 or 2) immediately, deepest level first.
// Closing level 1 notifies the host when it was open.
func (s *Session) CloseSubmenu(level int) {
	if level <= panel.Root || level >= panel.Levels {
		return
	}
	if level+1 < panel.Levels {
		s.CloseSubmenu(level + 1)
	}
	s.Timers.CancelAll(timer.Open(level), timer.Close(level))

	p := s.Panels[level]
	wasOpen := p.Open
	p.Close()
	s.Panels[level-1].Anchor = -1
	s.ResetHover(level)

	if !wasOpen {
		return
	}
	events.Nav.SubmenuClose(level)
	if level == panel.Level1 {
		s.Emit(menu.SubmenuCloseNotification())
	}
}

// Reset returns the session to its closed state once teardown completes.
func (s *Session) Reset() {
	for _, p := range s.Panels {
		p.Close()
	}
	for i := range s.Hover {
		s.ResetHover(i)
	}
	s.IsOpen = false
	s.IsClosing = false
	s.Exiting = false
	s.X, s.Y = 0, 0
	s.Scale = 1
	s.Options = nil
}

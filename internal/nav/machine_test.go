package nav

import (
	"testing"
	"time"

	"github.com/atomicstack/nui-context-menu/internal/lifecycle"
	"github.com/atomicstack/nui-context-menu/internal/menu"
	"github.com/atomicstack/nui-context-menu/internal/notify"
	"github.com/atomicstack/nui-context-menu/internal/panel"
	"github.com/atomicstack/nui-context-menu/internal/placement"
	"github.com/atomicstack/nui-context-menu/internal/session"
	"github.com/atomicstack/nui-context-menu/internal/timer"
	"github.com/google/go-cmp/cmp"
)

const ms = time.Millisecond

type fixture struct {
	s    *session.Session
	nav  *Machine
	ctrl *lifecycle.Controller
	rec  *notify.Recorder
}

// vehicleMenu:
//
//	0 Talk
//	1 Options → 0 Lock, 1 Doors → (0 Front, 1 Rear), 2 Lights [checkbox]
//	2 Engine [checkbox]
func vehicleMenu() []menu.Entry {
	return []menu.Entry{
		{ID: menu.NumberID(1), Name: "talk", Label: "Talk"},
		{ID: menu.NumberID(2), Name: "options", Label: "Options", Children: []menu.Entry{
			{ID: menu.NumberID(3), Name: "lock", Label: "Lock"},
			{ID: menu.NumberID(4), Name: "doors", Label: "Doors", Children: []menu.Entry{
				{ID: menu.NumberID(5), Name: "front", Label: "Front"},
				{ID: menu.NumberID(6), Name: "rear", Label: "Rear"},
			}},
			{ID: menu.NumberID(7), Name: "lights", Label: "Lights", Checkbox: true},
		}},
		{ID: menu.NumberID(8), Name: "engine", Label: "Engine", Checkbox: true},
	}
}

func newFixture(t *testing.T, entries []menu.Entry) *fixture {
	t.Helper()
	rec := &notify.Recorder{}
	s := session.New(session.Config{
		Geometry: placement.PixelGeometry(),
		Viewport: placement.Viewport{W: 1920, H: 1080},
	}, rec)
	f := &fixture{s: s, nav: New(s), ctrl: lifecycle.New(s), rec: rec}
	if !f.ctrl.Open(entries, menu.Position{X: 500, Y: 500}, 1) {
		t.Fatalf("expected open to succeed")
	}
	s.Timers.Advance(s.Timings.Frame)
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.s.Timers.Advance(d)
}

// openLevel1 hovers the Options entry long enough to open its submenu and
// moves the pointer into it.
func (f *fixture) openLevel1(t *testing.T) {
	t.Helper()
	f.nav.EnterPanel(panel.Root)
	f.nav.EnterEntry(panel.Root, 1)
	f.advance(100 * ms)
	if !f.s.Panels[panel.Level1].Open {
		t.Fatalf("expected level 1 open after hover delay")
	}
	f.nav.LeavePanel(panel.Root)
	f.nav.EnterPanel(panel.Level1)
}

func (f *fixture) openLevel2(t *testing.T) {
	t.Helper()
	f.openLevel1(t)
	f.nav.EnterEntry(panel.Level1, 1)
	f.advance(100 * ms)
	if !f.s.Panels[panel.Level2].Open {
		t.Fatalf("expected level 2 open after hover delay")
	}
	f.nav.LeavePanel(panel.Level1)
	f.nav.EnterPanel(panel.Level2)
}

func TestShortHoverNeverOpensSubmenu(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.nav.EnterPanel(panel.Root)
	f.nav.EnterEntry(panel.Root, 1)
	f.advance(60 * ms)
	f.nav.LeavePanel(panel.Root)
	f.advance(time.Second)

	if f.s.Panels[panel.Level1].Open {
		t.Fatalf("expected level 1 to stay closed")
	}
	if f.rec.Count(menu.KindSubmenuOpen) != 0 {
		t.Fatalf("expected no submenuOpen, got %v", f.rec.Kinds())
	}
}

func TestSweepingPastExpandableEntryCancelsOpen(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.nav.EnterPanel(panel.Root)
	f.nav.EnterEntry(panel.Root, 1)
	f.advance(50 * ms)
	f.nav.EnterEntry(panel.Root, 0)
	f.advance(time.Second)
	if f.s.Panels[panel.Level1].Open {
		t.Fatalf("expected hover moving to a leaf to cancel the pending open")
	}
}

func TestHoverOpensSubmenuRightOfRoot(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.nav.EnterPanel(panel.Root)
	f.nav.EnterEntry(panel.Root, 1)
	f.advance(99 * ms)
	if f.s.Panels[panel.Level1].Open {
		t.Fatalf("expected level 1 to wait for the hover delay")
	}
	f.advance(1 * ms)

	root := f.s.Panels[panel.Root]
	lvl1 := f.s.Panels[panel.Level1]
	if !lvl1.Open || root.Anchor != 1 {
		t.Fatalf("expected level 1 open anchored at 1, open=%v anchor=%d", lvl1.Open, root.Anchor)
	}
	if lvl1.Len() != 3 {
		t.Fatalf("expected 3 child rows, got %d", lvl1.Len())
	}
	if lvl1.Rect.X != root.Rect.Right()+5 {
		t.Fatalf("expected submenu right of root, root=%+v submenu=%+v", root.Rect, lvl1.Rect)
	}
	if lvl1.Visible {
		t.Fatalf("expected submenu hidden until the next frame")
	}
	f.advance(f.s.Timings.Frame)
	if !lvl1.Visible {
		t.Fatalf("expected submenu visible after reveal")
	}
	if diff := cmp.Diff([]menu.Kind{menu.KindSubmenuOpen}, f.rec.Kinds()); diff != "" {
		t.Fatalf("unexpected notifications (-want +got):\n%s", diff)
	}
}

func TestSwitchingAnchorClosesPreviousSubmenuFirst(t *testing.T) {
	entries := []menu.Entry{
		{ID: menu.NumberID(1), Label: "A", Children: []menu.Entry{{ID: menu.NumberID(10), Label: "a1"}}},
		{ID: menu.NumberID(2), Label: "B", Children: []menu.Entry{{ID: menu.NumberID(20), Label: "b1"}, {ID: menu.NumberID(21), Label: "b2"}}},
	}
	f := newFixture(t, entries)
	f.nav.EnterPanel(panel.Root)
	f.nav.EnterEntry(panel.Root, 0)
	f.advance(100 * ms)
	if f.s.Panels[panel.Root].Anchor != 0 {
		t.Fatalf("expected A to anchor level 1")
	}

	f.nav.EnterEntry(panel.Root, 1)
	if f.s.Panels[panel.Level1].Open {
		t.Fatalf("expected the previous submenu to close immediately")
	}
	f.advance(100 * ms)

	lvl1 := f.s.Panels[panel.Level1]
	if !lvl1.Open || f.s.Panels[panel.Root].Anchor != 1 || lvl1.Len() != 2 {
		t.Fatalf("expected B's submenu open with 2 rows, got open=%v anchor=%d len=%d", lvl1.Open, f.s.Panels[panel.Root].Anchor, lvl1.Len())
	}
	want := []menu.Kind{menu.KindSubmenuOpen, menu.KindSubmenuClose, menu.KindSubmenuOpen}
	if diff := cmp.Diff(want, f.rec.Kinds()); diff != "" {
		t.Fatalf("unexpected notifications (-want +got):\n%s", diff)
	}
}

func TestMovingIntoChildPanelKeepsItOpen(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.nav.EnterPanel(panel.Root)
	f.nav.EnterEntry(panel.Root, 1)
	f.advance(100 * ms)

	f.nav.LeavePanel(panel.Root)
	if !f.s.Timers.Pending(timer.CloseLevel1) {
		t.Fatalf("expected a close to be scheduled when leaving the root")
	}
	f.advance(60 * ms)
	f.nav.EnterPanel(panel.Level1)
	f.nav.EnterEntry(panel.Level1, 0)
	f.advance(time.Second)

	if !f.s.Panels[panel.Level1].Open {
		t.Fatalf("expected level 1 to survive the move into it")
	}
	if f.rec.Count(menu.KindSubmenuClose) != 0 {
		t.Fatalf("expected no submenuClose, got %v", f.rec.Kinds())
	}
}

func TestLeavingRootToNowhereClosesSubmenu(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.nav.EnterPanel(panel.Root)
	f.nav.EnterEntry(panel.Root, 1)
	f.advance(100 * ms)
	f.nav.LeavePanel(panel.Root)
	f.advance(100 * ms)

	if f.s.Panels[panel.Level1].Open || f.s.Panels[panel.Root].Anchor != -1 {
		t.Fatalf("expected level 1 closed and anchor cleared")
	}
	if !f.s.Panels[panel.Root].Open {
		t.Fatalf("expected the root to stay open")
	}
}

func TestLeavingDeepestPanelTearsDownLeafFirst(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.openLevel2(t)
	f.nav.EnterEntry(panel.Level2, 0)
	f.nav.LeavePanel(panel.Level2)
	f.advance(100 * ms)

	for _, level := range []int{panel.Level1, panel.Level2} {
		if f.s.Panels[level].Open {
			t.Fatalf("expected level %d closed", level)
		}
	}
	if f.s.Panels[panel.Level1].Anchor != -1 || f.s.Panels[panel.Root].Anchor != -1 {
		t.Fatalf("expected anchors cleared")
	}
	if f.s.Hover[panel.Level2].Hovered != -1 {
		t.Fatalf("expected level 2 hover state reset")
	}
	want := []menu.Kind{menu.KindSubmenuOpen, menu.KindSubmenuClose}
	if diff := cmp.Diff(want, f.rec.Kinds()); diff != "" {
		t.Fatalf("unexpected notifications (-want +got):\n%s", diff)
	}
}

func TestReturningToLevel1KeepsChainOpen(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.openLevel2(t)
	f.nav.LeavePanel(panel.Level2)
	f.nav.EnterPanel(panel.Level1)
	f.advance(time.Second)

	if !f.s.Panels[panel.Level1].Open || !f.s.Panels[panel.Level2].Open {
		t.Fatalf("expected both submenus to stay open while inside level 1")
	}
}

func TestHoveringSiblingLeafSchedulesClose(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.openLevel1(t)
	f.nav.LeavePanel(panel.Level1)
	f.nav.EnterPanel(panel.Root)
	f.nav.EnterEntry(panel.Root, 0)

	f.advance(50 * ms)
	if !f.s.Panels[panel.Level1].Open {
		t.Fatalf("expected level 1 to wait for the close delay")
	}
	f.advance(50 * ms)
	if f.s.Panels[panel.Level1].Open {
		t.Fatalf("expected level 1 closed after hovering a sibling leaf")
	}
}

func TestReturningToAnchorCancelsClose(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.openLevel1(t)
	f.nav.LeavePanel(panel.Level1)
	f.nav.EnterPanel(panel.Root)
	f.nav.EnterEntry(panel.Root, 1)
	f.advance(time.Second)
	if !f.s.Panels[panel.Level1].Open {
		t.Fatalf("expected level 1 to stay open when the pointer returns to its anchor")
	}
}

func TestCheckboxEntriesStartNoSubmenuTimers(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.openLevel1(t)
	f.nav.LeavePanel(panel.Level1)
	f.nav.EnterPanel(panel.Root)
	f.nav.EnterEntry(panel.Root, 1)
	f.nav.EnterEntry(panel.Root, 2)

	if f.s.Timers.Pending(timer.CloseLevel1) || f.s.Timers.Pending(timer.OpenLevel1) {
		t.Fatalf("expected checkbox hover to schedule no submenu timers")
	}
	if f.s.Hover[panel.Root].Hovered != 2 {
		t.Fatalf("expected hover on the checkbox, got %d", f.s.Hover[panel.Root].Hovered)
	}
	if !f.s.Panels[panel.Level1].Open {
		t.Fatalf("expected the open submenu to stay open")
	}
}

func TestCheckboxHoverCancelsPendingOpen(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.nav.EnterPanel(panel.Root)
	f.nav.EnterEntry(panel.Root, 1)
	f.s.Timers.Advance(50 * ms)
	f.nav.EnterEntry(panel.Root, 2)

	if f.s.Timers.Pending(timer.OpenLevel1) {
		t.Fatalf("expected the pending open to be cancelled on the checkbox")
	}
	f.s.Timers.Advance(f.s.Timings.HoverOpen + f.s.Timings.Frame)
	if f.s.Panels[panel.Level1].Open {
		t.Fatalf("submenu opened while the pointer rested on a checkbox")
	}
	if f.rec.Count(menu.KindSubmenuOpen) != 0 {
		t.Fatalf("unexpected submenuOpen notification")
	}
}

func TestCheckboxClickTogglesSharedEntry(t *testing.T) {
	entries := vehicleMenu()
	f := newFixture(t, entries)
	f.nav.Click(panel.Root, 2)

	if !entries[2].Checked {
		t.Fatalf("expected the host tree entry to be checked")
	}
	if !f.s.Panels[panel.Root].Rows[2].Checked {
		t.Fatalf("expected the row to show the checked state")
	}
	want := []menu.Notification{menu.CheckNotification(entries[2])}
	if diff := cmp.Diff(want, f.rec.Notifications()); diff != "" {
		t.Fatalf("unexpected notifications (-want +got):\n%s", diff)
	}

	f.nav.Click(panel.Root, 2)
	if entries[2].Checked {
		t.Fatalf("expected a second click to uncheck")
	}
	if f.rec.Count(menu.KindCheck) != 2 {
		t.Fatalf("expected two check notifications")
	}
}

func TestSelectEmitsAfterFeedbackDelayWithoutClosing(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.openLevel1(t)
	f.nav.EnterEntry(panel.Level1, 0)
	f.nav.Click(panel.Level1, 0)

	row := f.s.Panels[panel.Level1].Rows[0]
	if !row.Clicked {
		t.Fatalf("expected click feedback on the row")
	}
	if f.rec.Count(menu.KindSelect) != 0 {
		t.Fatalf("expected select to wait for the feedback delay")
	}
	f.advance(50 * ms)

	notes := f.rec.Notifications()
	last := notes[len(notes)-1]
	want := menu.Notification{Kind: menu.KindSelect, Payload: menu.SelectPayload{ID: menu.NumberID(3), Name: "lock", Label: "Lock"}}
	if diff := cmp.Diff(want, last); diff != "" {
		t.Fatalf("unexpected select (-want +got):\n%s", diff)
	}
	if !f.s.IsOpen || !f.s.Panels[panel.Level1].Open {
		t.Fatalf("expected the menu to stay open after select")
	}
	if f.rec.Count(menu.KindClose) != 0 {
		t.Fatalf("expected no close notification")
	}
}

func TestRapidClicksEmitEverySelect(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.nav.Click(panel.Root, 0)
	f.advance(10 * ms)
	f.nav.Click(panel.Root, 0)
	f.advance(50 * ms)
	if got := f.rec.Count(menu.KindSelect); got != 2 {
		t.Fatalf("expected 2 selects, got %d", got)
	}
}

func TestClickingExpandableEntryDoesNothing(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.nav.Click(panel.Root, 1)
	f.advance(time.Second)
	if len(f.rec.Notifications()) != 0 {
		t.Fatalf("expected no notifications, got %v", f.rec.Kinds())
	}
}

func TestDeepestLevelEntriesWithChildrenAreLeaves(t *testing.T) {
	entries := vehicleMenu()
	entries[1].Children[1].Children[0].Children = []menu.Entry{{ID: menu.NumberID(99), Label: "too deep"}}
	f := newFixture(t, entries)
	f.openLevel2(t)
	f.nav.EnterEntry(panel.Level2, 0)
	f.nav.Click(panel.Level2, 0)
	f.advance(50 * ms)
	if f.rec.Count(menu.KindSelect) != 1 {
		t.Fatalf("expected the level 2 entry to select, got %v", f.rec.Kinds())
	}
}

func TestEventsIgnoredWhileClosing(t *testing.T) {
	f := newFixture(t, vehicleMenu())
	f.ctrl.Close(false)
	f.nav.EnterPanel(panel.Root)
	f.nav.EnterEntry(panel.Root, 1)
	f.nav.Click(panel.Root, 2)
	f.advance(time.Second)
	if len(f.rec.Notifications()) != 0 {
		t.Fatalf("expected no notifications while closing, got %v", f.rec.Kinds())
	}
}

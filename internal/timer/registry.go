// Package timer provides the named, cancel-and-replace delayed actions that
// drive submenu hover intent, close intent, animation and click feedback.
//
// Time is virtual. The owner advances the registry to the current monotonic
// offset and due actions run in order on the caller's goroutine, so the
// registry needs no locking and tests can step time deterministically.
package timer

import (
	"fmt"
	"time"
)

// Name identifies a timer slot. At most one timer per name is pending.
type Name int

const (
	OpenLevel1 Name = iota
	OpenLevel2
	CloseLevel1
	CloseLevel2
	Reveal
	Teardown
	SelectFeedback
)

var names = map[Name]string{
	OpenLevel1:     "open-submenu-1",
	OpenLevel2:     "open-submenu-2",
	CloseLevel1:    "close-submenu-1",
	CloseLevel2:    "close-submenu-2",
	Reveal:         "reveal",
	Teardown:       "teardown",
	SelectFeedback: "select-feedback",
}

func (n Name) String() string {
	if s, ok := names[n]; ok {
		return s
	}
	return fmt.Sprintf("timer(%d)", int(n))
}

// Open returns the open timer for submenu level 1 or 2.
func Open(level int) Name {
	if level == 2 {
		return OpenLevel2
	}
	return OpenLevel1
}

// Close returns the close timer for submenu level 1 or 2.
func Close(level int) Name {
	if level == 2 {
		return CloseLevel2
	}
	return CloseLevel1
}

type pending struct {
	seq    uint64
	due    time.Duration
	action func()
}

// Registry owns the pending timers.
type Registry struct {
	now     time.Duration
	seq     uint64
	pending map[Name]pending
}

// New returns an empty registry at virtual time zero.
func New() *Registry {
	return &Registry{pending: make(map[Name]pending)}
}

// Now reports the registry's virtual time.
func (r *Registry) Now() time.Duration {
	return r.now
}

// Schedule replaces any timer under name with one firing after delay.
func (r *Registry) Schedule(name Name, delay time.Duration, action func()) {
	if delay < 0 {
		delay = 0
	}
	r.seq++
	r.pending[name] = pending{seq: r.seq, due: r.now + delay, action: action}
}

// Cancel drops the timer under name, if any.
func (r *Registry) Cancel(name Name) {
	delete(r.pending, name)
}

// CancelAll drops every named timer.
func (r *Registry) CancelAll(names ...Name) {
	for _, name := range names {
		delete(r.pending, name)
	}
}

// Pending reports whether a timer is scheduled under name.
func (r *Registry) Pending(name Name) bool {
	_, ok := r.pending[name]
	return ok
}

// Flush runs the timer under name immediately.
func (r *Registry) Flush(name Name) bool {
	p, ok := r.pending[name]
	if !ok {
		return false
	}
	delete(r.pending, name)
	if p.action != nil {
		p.action()
	}
	return true
}

// Next reports the delay until the earliest pending timer.
func (r *Registry) Next() (time.Duration, bool) {
	_, p, ok := r.earliest()
	if !ok {
		return 0, false
	}
	if wait := p.due - r.now; wait > 0 {
		return wait, true
	}
	return 0, true
}

// Advance moves virtual time forward by d.
func (r *Registry) Advance(d time.Duration) int {
	return r.AdvanceTo(r.now + d)
}

// AdvanceTo fires every timer due at or before t, earliest first, and returns
// how many fired. Timers scheduled by a firing action are honoured when they
// fall due before t. Time never moves backwards.
func (r *Registry) AdvanceTo(t time.Duration) int {
	if t < r.now {
		t = r.now
	}
	fired := 0
	for {
		name, p, ok := r.earliest()
		if !ok || p.due > t {
			break
		}
		delete(r.pending, name)
		if p.due > r.now {
			r.now = p.due
		}
		fired++
		if p.action != nil {
			p.action()
		}
	}
	r.now = t
	return fired
}

func (r *Registry) earliest() (Name, pending, bool) {
	var (
		bestName Name
		best     pending
		found    bool
	)
	for name, p := range r.pending {
		if !found || p.due < best.due || (p.due == best.due && p.seq < best.seq) {
			bestName, best, found = name, p, true
		}
	}
	return bestName, best, found
}

// Package notify delivers widget notifications to the host. Delivery is
// fire-and-forget: nothing waits for a response and failures are only logged.
package notify

import (
	"sync"

	"github.com/atomicstack/nui-context-menu/internal/menu"
)

// Notifier accepts notifications without blocking the caller.
type Notifier interface {
	Notify(menu.Notification)
}

// Func adapts a function to Notifier. A nil Func drops everything.
type Func func(menu.Notification)

func (f Func) Notify(n menu.Notification) {
	if f != nil {
		f(n)
	}
}

// Discard drops every notification.
var Discard Notifier = Func(nil)

// Recorder keeps every notification in order. It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	sent []menu.Notification
}

func (r *Recorder) Notify(n menu.Notification) {
	r.mu.Lock()
	r.sent = append(r.sent, n)
	r.mu.Unlock()
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []menu.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]menu.Notification(nil), r.sent...)
}

// Kinds returns the recorded notification kinds in order.
func (r *Recorder) Kinds() []menu.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]menu.Kind, len(r.sent))
	for i, n := range r.sent {
		kinds[i] = n.Kind
	}
	return kinds
}

// Count returns how many notifications of kind were recorded.
func (r *Recorder) Count(kind menu.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, sent := range r.sent {
		if sent.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.sent = nil
	r.mu.Unlock()
}

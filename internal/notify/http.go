package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/nui-context-menu/internal/logging/events"
	"github.com/atomicstack/nui-context-menu/internal/menu"
	"github.com/hashicorp/go-cleanhttp"
)

const defaultTimeout = 2 * time.Second

// HTTP posts each notification as JSON to <base>/<kind>. Requests run in
// their own goroutine and are never retried.
type HTTP struct {
	base    string
	timeout time.Duration
	client  *http.Client

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHTTP returns a notifier rooted at base, e.g. "https://resource-name".
func NewHTTP(base string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &HTTP{
		base:    strings.TrimRight(base, "/"),
		timeout: timeout,
		client:  cleanhttp.DefaultPooledClient(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Endpoint returns the URL a notification of kind is posted to.
func (h *HTTP) Endpoint(kind menu.Kind) string {
	return h.base + "/" + string(kind)
}

func (h *HTTP) Notify(n menu.Notification) {
	body, err := n.Body()
	if err != nil {
		events.Notify.Failed(string(n.Kind), err)
		return
	}
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if err := h.post(n.Kind, body); err != nil {
			events.Notify.Failed(string(n.Kind), err)
		}
	}()
}

func (h *HTTP) post(kind menu.Kind, body []byte) error {
	ctx, cancel := context.WithTimeout(h.ctx, h.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint(kind), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", kind, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", kind, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("post %s: unexpected status %s", kind, resp.Status)
	}
	return nil
}

// Wait blocks until in-flight requests finish.
func (h *HTTP) Wait() {
	h.wg.Wait()
}

// Close aborts in-flight requests and waits for their goroutines.
func (h *HTTP) Close() {
	h.cancel()
	h.wg.Wait()
}

package host

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/atomicstack/nui-context-menu/internal/logging"
	"github.com/atomicstack/nui-context-menu/internal/menu"
	"github.com/coder/websocket"
)

// CommandPath is where the WebSocket endpoint is mounted.
const CommandPath = "/commands"

// Server accepts WebSocket connections carrying one command per message.
type Server struct {
	out     chan<- menu.Command
	origins []string
}

// NewServer returns a server feeding out. origins lists host patterns allowed
// to connect from a browser; an empty list only admits same-origin clients.
func NewServer(out chan<- menu.Command, origins ...string) *Server {
	return &Server{out: out, origins: origins}
}

// Handler returns the HTTP handler serving CommandPath.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(CommandPath, s.serveCommands)
	return mux
}

func (s *Server) serveCommands(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.origins})
	if err != nil {
		logging.Error(fmt.Errorf("accept websocket: %w", err))
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(maxLineBytes)

	ctx := r.Context()
	source := "ws:" + r.RemoteAddr
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				logging.Error(fmt.Errorf("read websocket: %w", err))
			}
			return
		}
		if typ != websocket.MessageText {
			continue
		}
		if !deliver(ctx, source, data, s.out) {
			conn.Close(websocket.StatusGoingAway, "shutting down")
			return
		}
	}
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve commands: %w", err)
	}
}

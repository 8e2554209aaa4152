package host

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/atomicstack/nui-context-menu/internal/logging/events"
	"github.com/atomicstack/nui-context-menu/internal/menu"
)

const maxLineBytes = 1 << 20

// ReadLines decodes one JSON command per line from r until EOF or ctx ends.
func ReadLines(ctx context.Context, r io.Reader, out chan<- menu.Command) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		if !deliver(ctx, "stdin", scanner.Bytes(), out) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}

// deliver decodes data and forwards it. It reports false once ctx is done.
func deliver(ctx context.Context, source string, data []byte, out chan<- menu.Command) bool {
	cmd, err := menu.DecodeCommand(data)
	if err != nil {
		events.Command.Invalid(source, err)
		return ctx.Err() == nil
	}
	events.Command.Received(source, string(cmd.Action))
	select {
	case <-ctx.Done():
		return false
	case out <- cmd:
		return true
	}
}

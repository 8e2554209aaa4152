package menu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Action names an inbound host command.
type Action string

const (
	ActionOpen    Action = "open"
	ActionClose   Action = "close"
	ActionRefresh Action = "refresh"
)

var (
	ErrEmptyPayload  = errors.New("empty command payload")
	ErrUnknownAction = errors.New("unknown command action")
)

// Position is the anchor point supplied by the host.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Cell rounds the position to whole cells.
func (p Position) Cell() (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// Command is a decoded host message.
type Command struct {
	Action   Action   `json:"action"`
	Options  []Entry  `json:"options,omitempty"`
	Position Position `json:"position"`
	Scale    float64  `json:"scale,omitempty"`
}

// DecodeCommand parses one host message. Scale defaults to 1 when absent or
// non-positive.
func DecodeCommand(data []byte) (Command, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Command{}, ErrEmptyPayload
	}
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}
	switch cmd.Action {
	case ActionOpen, ActionClose, ActionRefresh:
	default:
		return Command{}, fmt.Errorf("%w %q", ErrUnknownAction, cmd.Action)
	}
	if cmd.Scale <= 0 || math.IsNaN(cmd.Scale) || math.IsInf(cmd.Scale, 0) {
		cmd.Scale = 1
	}
	return cmd, nil
}

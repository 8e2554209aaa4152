package menu

import (
	"bytes"
	"encoding/json"
	"strconv"
)

const (
	// MaxDepth is the deepest panel level; entries shown there never expand.
	MaxDepth = 2

	defaultLabel = "Interact"
)

// ID is an entry identifier exactly as the host sent it. Numbers and strings
// are both accepted and re-encoded in their original form.
type ID string

// NumberID builds an ID from an integer.
func NumberID(n int) ID {
	return ID(strconv.Itoa(n))
}

// StringID builds an ID from a string value.
func StringID(s string) ID {
	return ID(strconv.Quote(s))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	*id = ID(trimmed)
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return []byte(id), nil
}

// String returns the identifier without JSON quoting.
func (id ID) String() string {
	if s, err := strconv.Unquote(string(id)); err == nil {
		return s
	}
	return string(id)
}

// Entry is one row definition in a menu. Children are shared by reference
// with whichever panel shows them; only Checked is ever mutated.
type Entry struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name,omitempty"`
	Label       string  `json:"label,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	Checkbox    bool    `json:"checkbox,omitempty"`
	Checked     bool    `json:"checked,omitempty"`
	ShouldClose bool    `json:"shouldClose,omitempty"`
	Children    []Entry `json:"items,omitempty"`
}

// UnmarshalJSON accepts "children" as an alias for the "items" child list.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	aux := struct {
		*plain
		Alias []Entry `json:"children"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(e.Children) == 0 && len(aux.Alias) > 0 {
		e.Children = aux.Alias
	}
	return nil
}

// Expandable reports whether hovering the entry on the given level opens a
// deeper panel.
func (e Entry) Expandable(level int) bool {
	return len(e.Children) > 0 && !e.Checkbox && level < MaxDepth
}

// DisplayLabel returns the label to draw, falling back to a generic verb.
func (e Entry) DisplayLabel() string {
	if e.Label == "" {
		return defaultLabel
	}
	return e.Label
}

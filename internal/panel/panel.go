package panel

import (
	"github.com/atomicstack/nui-context-menu/internal/menu"
	"github.com/atomicstack/nui-context-menu/internal/placement"
)

const (
	Root   = 0
	Level1 = 1
	Level2 = 2

	// Levels is the number of panels in a stack.
	Levels = 3
)

// Row is the render node for one entry. Patch keeps the same *Row values so
// callers can rely on node identity across refreshes; Render replaces them.
type Row struct {
	Label      string
	Icon       string
	Checkbox   bool
	Checked    bool
	Expandable bool
	Clicked    bool
}

// Panel is one level of the menu. Entries is the slice the host supplied
// (or a child list inside it); it is never copied.
type Panel struct {
	Level   int
	Entries []menu.Entry
	Rows    []*Row
	Anchor  int
	Open    bool
	Visible bool
	Flipped bool
	Rect    placement.Rect
}

// New returns a closed panel for the given level.
func New(level int) *Panel {
	return &Panel{Level: level, Anchor: -1}
}

// Len returns the number of entries shown.
func (p *Panel) Len() int {
	return len(p.Entries)
}

// Render rebuilds every row from entries.
func (p *Panel) Render(entries []menu.Entry) {
	p.Entries = entries
	p.Rows = make([]*Row, len(entries))
	for i := range entries {
		p.Rows[i] = p.newRow(entries[i])
	}
}

// Patch updates checkbox and label state in place. When the entry count
// differs from the current rows it falls back to Render and reports true.
func (p *Panel) Patch(entries []menu.Entry) bool {
	if len(entries) != len(p.Rows) {
		p.Render(entries)
		return true
	}
	p.Entries = entries
	for i, row := range p.Rows {
		e := entries[i]
		if row.Checkbox && e.Checkbox {
			row.Checked = e.Checked
		}
		if label := e.DisplayLabel(); row.Label != label {
			row.Label = label
		}
	}
	return false
}

func (p *Panel) newRow(e menu.Entry) *Row {
	return &Row{
		Label:      e.DisplayLabel(),
		Icon:       e.Icon,
		Checkbox:   e.Checkbox,
		Checked:    e.Checked,
		Expandable: e.Expandable(p.Level),
	}
}

// Close hides the panel and drops its content.
func (p *Panel) Close() {
	p.Entries = nil
	p.Rows = nil
	p.Anchor = -1
	p.Open = false
	p.Visible = false
	p.Flipped = false
	p.Rect = placement.Rect{}
}

// Entry returns a pointer into the shared entry slice.
func (p *Panel) Entry(i int) (*menu.Entry, bool) {
	if i < 0 || i >= len(p.Entries) {
		return nil, false
	}
	return &p.Entries[i], true
}

// Row returns the render node at i.
func (p *Panel) Row(i int) (*Row, bool) {
	if i < 0 || i >= len(p.Rows) {
		return nil, false
	}
	return p.Rows[i], true
}

// AnchorEntry returns the entry whose children the next panel shows.
func (p *Panel) AnchorEntry() (*menu.Entry, bool) {
	return p.Entry(p.Anchor)
}

// VisibleRows is how many rows fit inside the placed rectangle.
func (p *Panel) VisibleRows(g placement.Geometry) int {
	if g.RowHeight <= 0 {
		return 0
	}
	n := (p.Rect.H - g.Padding) / g.RowHeight
	if n > len(p.Rows) {
		n = len(p.Rows)
	}
	if n < 0 {
		return 0
	}
	return n
}

// RowTop is the y coordinate of row i's top edge.
func (p *Panel) RowTop(i int, g placement.Geometry) int {
	return p.Rect.Y + g.Padding/2 + i*g.RowHeight
}

// RowAt maps a y coordinate inside the panel to a row index, or -1 when the
// point falls on padding or past the last visible row.
func (p *Panel) RowAt(y int, g placement.Geometry) int {
	if g.RowHeight <= 0 {
		return -1
	}
	offset := y - p.Rect.Y - g.Padding/2
	if offset < 0 {
		return -1
	}
	idx := offset / g.RowHeight
	if idx >= p.VisibleRows(g) {
		return -1
	}
	return idx
}

// Stack holds the root, level-1 and level-2 panels.
type Stack [Levels]*Panel

// NewStack returns three closed panels.
func NewStack() Stack {
	var s Stack
	for i := range s {
		s[i] = New(i)
	}
	return s
}

package ui

import (
	"strings"

	"github.com/atomicstack/nui-context-menu/internal/panel"
	"github.com/atomicstack/nui-context-menu/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

var glyphs = theme.DefaultGlyphs()

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	blank := strings.Repeat(" ", m.width)
	canvas := make([]string, m.height)
	for i := range canvas {
		canvas[i] = blank
	}
	for level, p := range m.s.Panels {
		if !p.Open || !p.Visible || p.Rect.Empty() {
			continue
		}
		overlay(canvas, m.renderPanel(level, p), p.Rect.X, p.Rect.Y, m.width)
	}
	return strings.Join(canvas, "\n")
}

// overlay draws box onto canvas with its top-left corner at (x, y).
func overlay(canvas []string, box string, x, y, width int) {
	for i, line := range strings.Split(box, "\n") {
		row := y + i
		if row < 0 || row >= len(canvas) {
			continue
		}
		base := canvas[row]
		left := ansi.Truncate(base, x, "")
		right := ansi.TruncateLeft(base, x+ansi.StringWidth(line), "")
		canvas[row] = ansi.Truncate(left+line+right, width, "")
	}
}

func (m *Model) renderPanel(level int, p *panel.Panel) string {
	g := m.s.Geometry()
	inner := p.Rect.W - 2
	if inner < 1 {
		inner = 1
	}
	hover := m.s.Hover[level]
	n := p.VisibleRows(g)
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		highlighted := i == p.Anchor || (hover.Inside && hover.Hovered == i)
		lines = append(lines, renderRow(p.Rows[i], inner, highlighted, m.s.Exiting))
	}

	frame := *styles.Panel
	if p.Flipped {
		frame = *styles.FlippedPanel
	}
	if m.s.Exiting {
		frame = frame.Faint(true)
	}
	return frame.Width(inner).Render(strings.Join(lines, "\n"))
}

func renderRow(row *panel.Row, width int, highlighted, exiting bool) string {
	glyph := glyphs.DefaultIcon
	switch {
	case row.Checkbox && row.Checked:
		glyph = glyphs.Checked
	case row.Checkbox:
		glyph = glyphs.Unchecked
	case row.Icon != "":
		glyph = glyphs.CustomIcon
	}
	arrow := " "
	if row.Expandable {
		arrow = glyphs.Arrow
	}
	prefix := " " + glyph + " "
	suffix := " " + arrow
	labelWidth := width - ansi.StringWidth(prefix) - ansi.StringWidth(suffix)
	label := ""
	if labelWidth > 0 {
		label = truncate.StringWithTail(row.Label, uint(labelWidth), glyphs.Ellipsis)
		if pad := labelWidth - ansi.StringWidth(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
	}
	style := rowStyle(row, highlighted, exiting)
	if !plainRow(row, highlighted, exiting) {
		return style.Render(prefix + label + suffix)
	}
	return styles.Icon.Render(prefix) + style.Render(label) + styles.Arrow.Render(suffix)
}

// plainRow reports whether the row has no full-width highlight, so the glyph
// and arrow can carry their own colours.
func plainRow(row *panel.Row, highlighted, exiting bool) bool {
	return !exiting && !row.Clicked && !highlighted && !(row.Checkbox && row.Checked)
}

func rowStyle(row *panel.Row, highlighted, exiting bool) lipgloss.Style {
	switch {
	case exiting:
		return *styles.Exiting
	case row.Clicked:
		return *styles.Clicked
	case highlighted:
		return *styles.Hovered
	case row.Checkbox && row.Checked:
		return *styles.Checked
	}
	return *styles.Item
}

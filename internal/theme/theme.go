package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Panel        *lipgloss.Style
	FlippedPanel *lipgloss.Style
	Item         *lipgloss.Style
	Hovered      *lipgloss.Style
	Clicked      *lipgloss.Style
	Checked      *lipgloss.Style
	Icon         *lipgloss.Style
	Arrow        *lipgloss.Style
	Exiting      *lipgloss.Style
}

// Glyphs are the characters drawn around a row label.
type Glyphs struct {
	DefaultIcon string
	CustomIcon  string
	Arrow       string
	Checked     string
	Unchecked   string
	Ellipsis    string
}

var defaultStyles = Styles{
	Panel: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
	),
	FlippedPanel: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Hovered: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Clicked: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Bold(true),
	),
	Checked: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Icon: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Arrow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Exiting: ptr(
		lipgloss.NewStyle().Faint(true),
	),
}

var defaultGlyphs = Glyphs{
	DefaultIcon: "•",
	CustomIcon:  "◆",
	Arrow:       "›",
	Checked:     "[x]",
	Unchecked:   "[ ]",
	Ellipsis:    "…",
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// DefaultGlyphs returns the row decorations.
func DefaultGlyphs() Glyphs {
	return defaultGlyphs
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

package theme

import (
	"runtime"

	"github.com/charmbracelet/lipgloss"
)

// Styles groups the lipgloss styles the renderer draws with.
type Styles struct {
	Bar          *lipgloss.Style
	Label        *lipgloss.Style
	LabelFocused *lipgloss.Style
	LabelOpen    *lipgloss.Style
	Mnemonic     *lipgloss.Style
	Box          *lipgloss.Style
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	DisabledItem *lipgloss.Style
	BouncedItem  *lipgloss.Style
	Keystroke    *lipgloss.Style
	Separator    *lipgloss.Style
	Arrow        *lipgloss.Style

	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Header            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
}

var defaultStyles = Styles{
	Bar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
	),
	LabelFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("240")),
	),
	LabelOpen: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
	Mnemonic: ptr(
		lipgloss.NewStyle().Underline(true),
	),
	Box: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	DisabledItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	BouncedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	Keystroke: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	),
	Separator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Arrow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

// Control is one window-control glyph drawn at the right end of the bar.
type Control struct {
	Glyph string
	Style lipgloss.Style
}

// Controls returns the window-control set for a theme name. The empty name
// picks the platform's native look.
func Controls(name string) []Control {
	if name == "" {
		name = "Windows 11"
		if runtime.GOOS == "darwin" {
			name = "Yosemite"
		}
	}
	switch name {
	case "Yosemite":
		dot := func(c string) Control {
			return Control{Glyph: "●", Style: lipgloss.NewStyle().Foreground(lipgloss.Color(c))}
		}
		return []Control{dot("203"), dot("221"), dot("77")}
	default:
		plain := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		return []Control{
			{Glyph: "─", Style: plain},
			{Glyph: "□", Style: plain},
			{Glyph: "✕", Style: lipgloss.NewStyle().Foreground(lipgloss.Color("203"))},
		}
	}
}

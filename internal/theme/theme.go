package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header       *lipgloss.Style
	TabActive    *lipgloss.Style
	TabInactive  *lipgloss.Style
	Label        *lipgloss.Style
	Field        *lipgloss.Style
	FieldFocused *lipgloss.Style
	Placeholder  *lipgloss.Style

	Option         *lipgloss.Style
	OptionFocused  *lipgloss.Style
	OptionSelected *lipgloss.Style
	OptionDisabled *lipgloss.Style

	OverlayBorder *lipgloss.Style
	DialogTitle   *lipgloss.Style
	DialogBody    *lipgloss.Style

	SearchPrompt      *lipgloss.Style
	SearchPlaceholder *lipgloss.Style

	Error  *lipgloss.Style
	Info   *lipgloss.Style
	Trace  *lipgloss.Style
	Footer *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	TabActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	TabInactive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Field: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FieldFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Option: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	OptionFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	OptionSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	OptionDisabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	OverlayBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	DialogTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	DialogBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	SearchPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	SearchPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Trace: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

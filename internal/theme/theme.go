package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes the Lip Gloss styles used for terminal output: widget
// listings, action results and the interactive picker.
type Styles struct {
	Header *lipgloss.Style
	Class  *lipgloss.Style
	ID     *lipgloss.Style
	Label  *lipgloss.Style
	Value  *lipgloss.Style
	Action *lipgloss.Style

	Success *lipgloss.Style
	Error   *lipgloss.Style
	Info    *lipgloss.Style
	Hint    *lipgloss.Style

	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItem          *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Footer                *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Class: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	ID: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Value: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Action: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Success: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Hint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Default exposes the standard style set.
func Default() *Styles {
	return &defaultStyles
}

// Plain returns a style set that renders text unchanged, for output that is
// not a terminal.
func Plain() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Header: ptr(plain), Class: ptr(plain), ID: ptr(plain), Label: ptr(plain),
		Value: ptr(plain), Action: ptr(plain), Success: ptr(plain), Error: ptr(plain),
		Info: ptr(plain), Hint: ptr(plain), Item: ptr(plain), ItemIndicator: ptr(plain),
		SelectedItem: ptr(plain), SelectedItemIndicator: ptr(plain), FilterPrompt: ptr(plain),
		FilterPlaceholder: ptr(plain), Footer: ptr(plain),
	}
}

// ForStatus picks the style for an action outcome.
func (s *Styles) ForStatus(status int) *lipgloss.Style {
	if status >= 200 && status < 300 {
		return s.Success
	}
	return s.Error
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

package listing

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	entry      lipgloss.Style
	selected   lipgloss.Style
	detail     lipgloss.Style
	warning    lipgloss.Style
	pending    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	match      lipgloss.Style
	tag        lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		entry:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		selected:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		pending:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		match:      lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("220")),
		tag:        lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

package ui

import "github.com/charmbracelet/lipgloss"

// Style holds the lipgloss styles of the session screen.
type Style struct {
	Base      lipgloss.Style
	Title     lipgloss.Style
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Prompt    lipgloss.Style
	Warning   lipgloss.Style
	Paused    lipgloss.Style
}

// NewStyle returns the session screen styles for a light or dark terminal.
func NewStyle(dark bool) Style {
	main := lipgloss.Color("#1F6F3F")
	secondary := lipgloss.Color("#555555")
	hint := lipgloss.Color("#808080")
	accent := lipgloss.Color("#B0DB43")
	warning := lipgloss.Color("#C0392B")

	if dark {
		main = lipgloss.Color("#98C379")
		secondary = lipgloss.Color("#ABB2BF")
		hint = lipgloss.Color("#636B78")
		warning = lipgloss.Color("#E06C75")
	}

	return Style{
		Base: lipgloss.NewStyle().Padding(1, 1),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(accent).
			Padding(0, 1).
			MarginRight(1).
			Bold(true),
		Main:      lipgloss.NewStyle().Foreground(main).Bold(true),
		Secondary: lipgloss.NewStyle().Foreground(secondary),
		Hint:      lipgloss.NewStyle().Foreground(hint),
		Prompt:    lipgloss.NewStyle().Foreground(secondary).Italic(true),
		Warning:   lipgloss.NewStyle().Foreground(warning),
		Paused:    lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")).Bold(true),
	}
}
